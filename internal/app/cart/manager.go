package cart

import (
	"sync"

	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/kv"
)

// Manager hands out one Cart per owner, all backed by the same key-value
// store. It is constructed once at startup and injected into consumers;
// there is no package-level cart state.
type Manager struct {
	store kv.Store

	mu       sync.Mutex
	carts    map[string]*Cart
	onChange []func(Event)
}

func NewManager(store kv.Store) *Manager {
	return &Manager{
		store: store,
		carts: make(map[string]*Cart),
	}
}

// Cart returns the cart for owner, creating it on first use. The same
// instance is returned for the lifetime of the manager so mutations from
// different call sites see one canonical state.
func (m *Manager) Cart(owner string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[owner]; ok {
		return c
	}

	c := New(m.store, owner)
	for _, fn := range m.onChange {
		c.Subscribe(fn)
	}
	m.carts[owner] = c
	return c
}

// OnChange registers fn on every cart the manager owns, existing and future.
func (m *Manager) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = append(m.onChange, fn)
	for _, c := range m.carts {
		c.Subscribe(fn)
	}
}

// PruneEmpty drops cached carts that hydrated and hold no items, and returns
// how many were dropped. Their persisted state lives in the key-value store,
// so a pruned owner gets a fresh cart rebuilt from storage on next use.
func (m *Manager) PruneEmpty() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for owner, c := range m.carts {
		if c.emptyLoaded() {
			delete(m.carts, owner)
			pruned++
		}
	}
	return pruned
}
