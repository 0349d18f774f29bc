// Package theme holds the editor color themes, the per-theme token style
// map and the process-wide active theme.
package theme

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Role is a semantic color key.
type Role string

const (
	RoleBackground  Role = "background"
	RoleForeground  Role = "foreground"
	RoleSelection   Role = "selection"
	RoleCurrentLine Role = "current_line"
	RoleSidebar     Role = "sidebar"
	RoleBorder      Role = "border"
	RoleLineNumber  Role = "line_number"
	RoleMatch       Role = "match"

	RoleKeyword  Role = "keyword"
	RoleFunction Role = "function"
	RoleComment  Role = "comment"
	RoleString   Role = "string"
	RoleNumber   Role = "number"
	RoleOperator Role = "operator"

	RoleError   Role = "error"
	RoleWarning Role = "warning"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleBackground, RoleForeground, RoleSelection, RoleCurrentLine,
	RoleSidebar, RoleBorder, RoleLineNumber, RoleMatch,
	RoleKeyword, RoleFunction, RoleComment, RoleString, RoleNumber, RoleOperator,
	RoleError, RoleWarning,
}

const fallbackForeground = "#D4D4D4"

// Theme is an immutable named set of role colors.
type Theme struct {
	name   string
	colors map[Role]string
}

// Name returns the theme name.
func (t Theme) Name() string {
	return t.name
}

// Color returns the hex color for role. A missing role falls back to the
// foreground color.
func (t Theme) Color(role Role) string {
	if c, ok := t.colors[role]; ok {
		return c
	}
	if c, ok := t.colors[RoleForeground]; ok {
		return c
	}
	return fallbackForeground
}

// Lip returns the role color as a lipgloss color.
func (t Theme) Lip(role Role) lipgloss.Color {
	return lipgloss.Color(t.Color(role))
}

// WithOverrides returns a copy of t with the given role colors replaced.
// Keys must be known roles and values hex colors.
func (t Theme) WithOverrides(overrides map[string]string) (Theme, error) {
	colors := maps.Clone(t.colors)
	for key, value := range overrides {
		role := Role(key)
		if !slices.Contains(Roles, role) {
			return Theme{}, fmt.Errorf("unknown color role: %s", key)
		}
		if !isValidHexColor(value) {
			return Theme{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[role] = value
	}
	return Theme{name: t.name, colors: colors}, nil
}

// Dark is the default theme.
var Dark = Theme{
	name: "dark",
	colors: map[Role]string{
		RoleBackground:  "#1E1E1E",
		RoleForeground:  "#D4D4D4",
		RoleSelection:   "#264F78",
		RoleCurrentLine: "#2A2A2A",
		RoleSidebar:     "#252526",
		RoleBorder:      "#333333",
		RoleLineNumber:  "#858585",
		RoleMatch:       "#6A9955",
		RoleKeyword:     "#C586C0",
		RoleFunction:    "#DCDCAA",
		RoleComment:     "#6A9955",
		RoleString:      "#CE9178",
		RoleNumber:      "#B5CEA8",
		RoleOperator:    "#D4D4D4",
		RoleError:       "#F48771",
		RoleWarning:     "#CCA700",
	},
}

// Light is the light variant.
var Light = Theme{
	name: "light",
	colors: map[Role]string{
		RoleBackground:  "#FFFFFF",
		RoleForeground:  "#000000",
		RoleSelection:   "#ADD6FF",
		RoleCurrentLine: "#F0F0F0",
		RoleSidebar:     "#F3F3F3",
		RoleBorder:      "#E0E0E0",
		RoleLineNumber:  "#858585",
		RoleMatch:       "#6A9955",
		RoleKeyword:     "#0000FF",
		RoleFunction:    "#795E26",
		RoleComment:     "#008000",
		RoleString:      "#A31515",
		RoleNumber:      "#098658",
		RoleOperator:    "#000000",
		RoleError:       "#E51400",
		RoleWarning:     "#BF8803",
	},
}

// Builtins returns the built-in themes.
func Builtins() []Theme {
	return []Theme{Dark, Light}
}

// ByName looks up a built-in theme. Unknown names return Dark and false.
func ByName(name string) (Theme, bool) {
	for _, t := range Builtins() {
		if strings.EqualFold(t.name, name) {
			return t, true
		}
	}
	return Dark, false
}

func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
