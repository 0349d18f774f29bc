package theme

import (
	"slices"
	"sync"

	"github.com/onecode/onecode/internal/log"
)

// Manager owns the active theme and notifies subscribers when it changes.
type Manager struct {
	mu     sync.RWMutex
	active Theme
	dark   Theme
	light  Theme
	subs   map[int]func(Theme)
	nextID int
}

// NewManager creates a manager with initial as the active theme.
func NewManager(initial Theme) *Manager {
	return &Manager{
		active: initial,
		dark:   Dark,
		light:  Light,
		subs:   make(map[int]func(Theme)),
	}
}

// WithVariants replaces the themes Toggle switches between.
func (m *Manager) WithVariants(dark, light Theme) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dark, m.light = dark, light
	return m
}

// Active returns the active theme.
func (m *Manager) Active() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Subscribe registers fn for theme changes. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(Theme)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Set makes t active and calls every subscriber, in subscription order,
// before returning.
func (m *Manager) Set(t Theme) {
	m.mu.Lock()
	m.active = t
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Theme), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.subs[id])
	}
	m.mu.Unlock()

	log.Info(log.CatTheme, "theme changed", "theme", t.Name(), "subscribers", len(fns))
	for _, fn := range fns {
		fn(t)
	}
}

// Toggle switches between dark and light and returns the new theme.
func (m *Manager) Toggle() Theme {
	m.mu.RLock()
	next := m.light
	if m.active.Name() == m.light.Name() {
		next = m.dark
	}
	m.mu.RUnlock()

	m.Set(next)
	return next
}
