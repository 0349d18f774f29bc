package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/onecode/onecode/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listThemes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

// listThemes prints each built-in theme with a sample of its syntax colors.
func listThemes(w io.Writer) error {
	for _, t := range theme.Builtins() {
		sample := lipgloss.NewStyle().Background(t.Lip(theme.RoleBackground)).Render(
			lipgloss.NewStyle().Foreground(t.Lip(theme.RoleKeyword)).Bold(true).Render("func") + " " +
				lipgloss.NewStyle().Foreground(t.Lip(theme.RoleFunction)).Render("main") +
				lipgloss.NewStyle().Foreground(t.Lip(theme.RoleForeground)).Render("() ") +
				lipgloss.NewStyle().Foreground(t.Lip(theme.RoleComment)).Italic(true).Render("// comment"),
		)
		if _, err := fmt.Fprintf(w, "%-6s %s\n", t.Name(), sample); err != nil {
			return err
		}
	}
	return nil
}
