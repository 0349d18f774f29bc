package theme

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onecode/onecode/internal/syntax"
)

func TestManager_SetNotifiesSubscribersInOrder(t *testing.T) {
	m := NewManager(Dark)
	var calls []string
	m.Subscribe(func(th Theme) { calls = append(calls, "a:"+th.Name()) })
	m.Subscribe(func(th Theme) { calls = append(calls, "b:"+th.Name()) })

	m.Set(Light)

	require.Equal(t, []string{"a:light", "b:light"}, calls)
	require.Equal(t, "light", m.Active().Name())
}

func TestManager_Unsubscribe(t *testing.T) {
	m := NewManager(Dark)
	count := 0
	stop := m.Subscribe(func(Theme) { count++ })

	m.Set(Light)
	stop()
	m.Set(Dark)

	require.Equal(t, 1, count)
}

func TestManager_SubscriberSeesNewActiveTheme(t *testing.T) {
	m := NewManager(Dark)
	var seen string
	m.Subscribe(func(Theme) { seen = m.Active().Name() })

	m.Set(Light)

	require.Equal(t, "light", seen)
}

func TestManager_Toggle(t *testing.T) {
	m := NewManager(Dark)

	require.Equal(t, "light", m.Toggle().Name())
	require.Equal(t, "dark", m.Toggle().Name())
}

func TestManager_ToggleUsesVariants(t *testing.T) {
	custom, err := Light.WithOverrides(map[string]string{"keyword": "#111111"})
	require.NoError(t, err)
	m := NewManager(Dark).WithVariants(Dark, custom)

	require.Equal(t, "#111111", m.Toggle().Color(RoleKeyword))
}

// Every open document rebuilds its style map from the subscription, so a
// keyword drawn after the toggle carries only the light keyword color.
func TestManager_ToggleRecolorsKeyword(t *testing.T) {
	m := NewManager(Dark)
	docs := []StyleMap{Build(m.Active()), Build(m.Active())}
	for i := range docs {
		m.Subscribe(func(th Theme) { docs[i] = Build(th) })
	}

	m.Toggle()

	for _, sm := range docs {
		s, ok := sm.Resolve(syntax.Keyword)
		require.True(t, ok)
		require.Equal(t, Light.Color(RoleKeyword), s.Foreground)
		require.NotEqual(t, Dark.Color(RoleKeyword), s.Foreground)
		require.Equal(t, "light", sm.Theme())
	}
}
