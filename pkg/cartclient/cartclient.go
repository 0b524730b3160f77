// Package cartclient implements the storefront's client-side cart: a line
// list that lives in local storage for guests and becomes a thin view of
// the server cart once the session is authenticated. Server faults degrade
// to local arithmetic instead of failing the caller.
package cartclient

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Line is one cart entry. Name and price are snapshots from add time; the
// display fields are whatever the server last sent along.
type Line struct {
	ProductID   int64  `json:"id"`
	Name        string `json:"navn"`
	Description string `json:"beskrivelse,omitempty"`
	Category    string `json:"kategori,omitempty"`
	Brand       string `json:"mærke,omitempty"`
	Price       int64  `json:"pris"`
	Quantity    int    `json:"antal"`
}

// Product is the catalog entry handed to Add.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	Description string
	Category    string
	Brand       string
}

// LocalStore is the guest cart's persistence, the localStorage analog.
type LocalStore interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Transport talks to the storefront API. Every call returns the server's
// authoritative full line list, which callers adopt wholesale.
type Transport interface {
	Identify(ctx context.Context) (bool, error)
	FetchCart(ctx context.Context) ([]Line, error)
	AddLine(ctx context.Context, productID int64, quantity int) ([]Line, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) ([]Line, error)
	RemoveLine(ctx context.Context, productID int64) ([]Line, error)
	ClearCart(ctx context.Context) error
}

// The guest cart is stored under the fixed "kurv" key.
type fileFormat struct {
	Kurv []Line `json:"kurv"`
}

// FileStore keeps the guest cart in a small JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var stored fileFormat
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return stored.Kurv, nil
}

func (f *FileStore) Save(lines []Line) error {
	data, err := json.Marshal(fileFormat{Kurv: lines})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// MemoryStore is a LocalStore for tests and short-lived sessions.
type MemoryStore struct {
	mu    sync.Mutex
	lines []Line
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Line(nil), m.lines...), nil
}

func (m *MemoryStore) Save(lines []Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append([]Line(nil), lines...)
	return nil
}
