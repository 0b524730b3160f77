package cartclient

import (
	"context"
	"sync"
)

// Manager is the per-session cart state machine. It starts in local mode
// (guest cart in the LocalStore) and adopts server mode the first time the
// identity check resolves. Cart mutations never fail the caller: a server
// fault degrades a single call to local arithmetic.
//
// Calls within one session are expected to arrive one at a time; the mutex
// only guards against accidental sharing, it is not a cross-device story.
type Manager struct {
	mu          sync.Mutex
	store       LocalStore
	api         Transport
	lines       []Line
	serverMode  bool
	authChecked bool
}

// NewManager loads any persisted guest cart from the store. A corrupt or
// unreadable store just means starting with an empty cart.
func NewManager(store LocalStore, api Transport) *Manager {
	lines, err := store.Load()
	if err != nil {
		lines = nil
	}
	return &Manager{
		store: store,
		api:   api,
		lines: lines,
	}
}

// ensureAuthChecked runs the identity check exactly once per manager
// lifetime, no matter how it turns out. If the identity resolves and the
// durable cart fetch succeeds the manager switches to server mode and the
// guest cart is merged into the server cart line-wise: quantities replayed
// through the add endpoint, the server's price snapshot winning for lines
// it already holds. Lines that fail to merge stay in local storage.
func (m *Manager) ensureAuthChecked(ctx context.Context) {
	if m.authChecked {
		return
	}
	m.authChecked = true

	identified, err := m.api.Identify(ctx)
	if err != nil || !identified {
		return
	}

	serverLines, err := m.api.FetchCart(ctx)
	if err != nil {
		return
	}

	local := m.lines
	m.lines = serverLines
	m.serverMode = true

	var unmerged []Line
	for _, l := range local {
		if l.Quantity < 1 {
			continue
		}
		merged, errAdd := m.api.AddLine(ctx, l.ProductID, l.Quantity)
		if errAdd != nil {
			unmerged = append(unmerged, l)
			continue
		}
		m.lines = merged
	}
	m.store.Save(unmerged)
}

// Add puts one unit of the product in the cart, accumulating quantity on a
// line that already exists. It is best effort and never fails the caller.
func (m *Manager) Add(ctx context.Context, p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureAuthChecked(ctx)

	if m.serverMode {
		if lines, err := m.api.AddLine(ctx, p.ID, 1); err == nil {
			m.lines = lines
			return
		}
	}

	if l := m.findLine(p.ID); l != nil {
		l.Quantity++
	} else {
		m.lines = append(m.lines, Line{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Brand:       p.Brand,
			Price:       p.Price,
			Quantity:    1,
		})
	}
	m.persistLocal()
}

// ChangeQuantity adjusts a line by delta. An absent line is a no-op; a
// resulting quantity of zero or less removes the line.
func (m *Manager) ChangeQuantity(ctx context.Context, productID int64, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureAuthChecked(ctx)

	l := m.findLine(productID)
	if l == nil {
		return
	}
	newQty := l.Quantity + delta

	if m.serverMode {
		if newQty <= 0 {
			m.removeLocked(ctx, productID)
			return
		}
		if lines, err := m.api.SetQuantity(ctx, productID, newQty); err == nil {
			m.lines = lines
			return
		}
	}

	l.Quantity = newQty
	if l.Quantity <= 0 {
		m.filterOut(productID)
	}
	m.persistLocal()
}

// Remove deletes a line. Removing an absent line is not an error.
func (m *Manager) Remove(ctx context.Context, productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureAuthChecked(ctx)
	m.removeLocked(ctx, productID)
}

func (m *Manager) removeLocked(ctx context.Context, productID int64) {
	if m.serverMode {
		if lines, err := m.api.RemoveLine(ctx, productID); err == nil {
			m.lines = lines
			return
		}
	}

	m.filterOut(productID)
	m.persistLocal()
}

// Cart returns a copy of the current lines; mutating the result never
// affects the cart.
func (m *Manager) Cart() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Line(nil), m.lines...)
}

// Count is the total quantity across all lines.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, l := range m.lines {
		count += l.Quantity
	}
	return count
}

// ServerMode reports whether the manager has adopted the durable cart.
func (m *Manager) ServerMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serverMode
}

// ClearAfterOrder empties the cart after a completed checkout. The durable
// cart is cleared best effort in server mode; the local representation is
// always emptied and re-persisted so a stale guest cart cannot resurface.
func (m *Manager) ClearAfterOrder(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.serverMode {
		m.api.ClearCart(ctx)
	}
	m.lines = nil
	m.store.Save(nil)
}

func (m *Manager) findLine(productID int64) *Line {
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			return &m.lines[i]
		}
	}
	return nil
}

func (m *Manager) filterOut(productID int64) {
	kept := m.lines[:0]
	for _, l := range m.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	m.lines = kept
}

// persistLocal mirrors the guest cart to the store. In server mode the
// durable cart is authoritative and the local mirror is left alone.
func (m *Manager) persistLocal() {
	if m.serverMode {
		return
	}
	m.store.Save(m.lines)
}
