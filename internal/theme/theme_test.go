package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltins_DefineEveryRole(t *testing.T) {
	for _, th := range Builtins() {
		for _, role := range Roles {
			_, ok := th.colors[role]
			require.True(t, ok, "%s misses %s", th.Name(), role)
			require.True(t, isValidHexColor(th.Color(role)))
		}
	}
}

func TestColor_FallsBackToForeground(t *testing.T) {
	th := Theme{name: "sparse", colors: map[Role]string{RoleForeground: "#123456"}}

	require.Equal(t, "#123456", th.Color(RoleKeyword))
	require.Equal(t, fallbackForeground, Theme{}.Color(RoleKeyword))
}

func TestByName(t *testing.T) {
	th, ok := ByName("LIGHT")
	require.True(t, ok)
	require.Equal(t, "light", th.Name())

	th, ok = ByName("solarized")
	require.False(t, ok)
	require.Equal(t, "dark", th.Name())
}

func TestWithOverrides(t *testing.T) {
	th, err := Dark.WithOverrides(map[string]string{"keyword": "#FF0000"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", th.Color(RoleKeyword))
	require.Equal(t, "#C586C0", Dark.Color(RoleKeyword), "original is unchanged")

	_, err = Dark.WithOverrides(map[string]string{"nope": "#FF0000"})
	require.ErrorContains(t, err, "unknown color role")

	_, err = Dark.WithOverrides(map[string]string{"keyword": "red"})
	require.ErrorContains(t, err, "invalid hex color")
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, isValidHexColor("#fff"))
	require.True(t, isValidHexColor("#1E1E1E"))
	require.False(t, isValidHexColor("1E1E1E"))
	require.False(t, isValidHexColor("#1E1E1"))
	require.False(t, isValidHexColor("#GGGGGG"))
}
