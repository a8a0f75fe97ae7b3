package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockpilot/internal/domain"
)

// MemoryInventory in-memory снимок склада. Читатели никогда не видят полузаменённый снимок.
type MemoryInventory struct {
	mu    sync.RWMutex
	items []domain.InventoryItem
	byID  map[string]int
}

func NewMemoryInventory(seed []domain.InventoryItem) *MemoryInventory {
	m := &MemoryInventory{}
	m.swap(seed)
	return m
}

var _ InventoryRepository = (*MemoryInventory)(nil)

// swap must be called with the write lock held (or before the store is shared).
func (m *MemoryInventory) swap(items []domain.InventoryItem) {
	next := make([]domain.InventoryItem, len(items))
	copy(next, items)
	byID := make(map[string]int, len(next))
	for i, it := range next {
		// first occurrence wins for lookups
		if _, ok := byID[it.ID]; !ok {
			byID[it.ID] = i
		}
	}
	m.items = next
	m.byID = byID
}

func (m *MemoryInventory) Replace(ctx context.Context, items []domain.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swap(items)
	return nil
}

// Snapshot returns a value copy, so later replacements never reach the caller.
func (m *MemoryInventory) Snapshot(ctx context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.InventoryItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryInventory) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := m.items[idx]
	return &cp, nil
}

func (m *MemoryInventory) List(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		if !f.match(it) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// MemoryTranscript журнал реплик одной сессии
type MemoryTranscript struct {
	mu    sync.RWMutex
	turns []domain.Turn
}

func NewMemoryTranscript() *MemoryTranscript { return &MemoryTranscript{} }

var _ TranscriptRepository = (*MemoryTranscript)(nil)

func (mt *MemoryTranscript) Append(ctx context.Context, t *domain.Turn) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	mt.turns = append(mt.turns, *t)
	return nil
}

func (mt *MemoryTranscript) List(ctx context.Context) ([]domain.Turn, error) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	out := make([]domain.Turn, len(mt.turns))
	copy(out, mt.turns)
	return out, nil
}

func (mt *MemoryTranscript) GetByID(ctx context.Context, id string) (*domain.Turn, error) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	for _, t := range mt.turns {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryOrders подтверждения заказов одной сессии
type MemoryOrders struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.OrderConfirmation
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{byID: make(map[string]domain.OrderConfirmation)}
}

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.OrderConfirmation) error {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	mo.byID[o.ID] = *o
	mo.order = append(mo.order, o.ID)
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.OrderConfirmation, error) {
	mo.mu.RLock()
	defer mo.mu.RUnlock()
	o, ok := mo.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (mo *MemoryOrders) GetByTurnID(ctx context.Context, turnID string) (*domain.OrderConfirmation, error) {
	mo.mu.RLock()
	defer mo.mu.RUnlock()
	for _, id := range mo.order {
		if o := mo.byID[id]; o.TurnID == turnID {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.OrderConfirmation) error {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	if _, ok := mo.byID[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	mo.byID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.OrderConfirmation, error) {
	mo.mu.RLock()
	defer mo.mu.RUnlock()
	out := make([]domain.OrderConfirmation, 0, len(mo.order))
	for _, id := range mo.order {
		out = append(out, mo.byID[id])
	}
	return out, nil
}
