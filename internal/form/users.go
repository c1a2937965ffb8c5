// internal/form/users.go
//
// Onboard – Forms subsystem: accepted-user collection.
//
// Context
//   The form appends each accepted draft to a collection owned by its
//   caller.  The form never reads, clears, or persists it.
//
//------------------------------------------------------------------------------

package form

import "sync"

// Users is the caller-owned ordered collection of accepted drafts.
type Users interface {
	Append(Values)
}

// MemoryUsers is an in-process Users, safe for concurrent use.  Its
// lifetime is the process lifetime.
type MemoryUsers struct {
	mu   sync.RWMutex
	list []Values
}

// Append implements Users.
func (m *MemoryUsers) Append(v Values) {
	m.mu.Lock()
	m.list = append(m.list, v)
	m.mu.Unlock()
}

// All returns a copy of the collection in insertion order.
func (m *MemoryUsers) All() []Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Values, len(m.list))
	copy(out, m.list)
	return out
}

// Len reports how many users were accepted.
func (m *MemoryUsers) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.list)
}
