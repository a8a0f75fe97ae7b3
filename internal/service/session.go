package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"stockpilot/internal/domain"
	"stockpilot/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	// ErrSessionBusy: a model request for this session is still outstanding.
	ErrSessionBusy = errors.New("a request is already in progress for this session")
)

// SessionIdleTTL срок жизни неактивной сессии, совпадает с MaxAge cookie
const SessionIdleTTL = 7 * 24 * time.Hour

// Greeting первая реплика ассистента в новой сессии
const Greeting = "Hello! I am your AI Inventory Agent. I have full access to your stock data and can help you predict run-out dates or draft purchase orders. How can I assist today?"

// SeedInventory начальные данные склада для новой сессии
func SeedInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			ID:                   "1",
			Name:                 "Basmati Rice (5kg)",
			Category:             "Grains",
			CurrentStock:         45,
			Unit:                 "Bags",
			ReorderLevel:         10,
			DailyConsumptionRate: 2.5,
			ExpiryDate:           "2025-12-01",
			Price:                12.50,
			Supplier:             "AgroCorp",
		},
		{
			ID:                   "2",
			Name:                 "Organic Whole Milk",
			Category:             "Dairy",
			CurrentStock:         8,
			Unit:                 "Liters",
			ReorderLevel:         15,
			DailyConsumptionRate: 4,
			ExpiryDate:           "2025-05-20",
			Price:                3.20,
			Supplier:             "Dairy Fresh",
		},
	}
}

// Session состояние одного пользователя: склад, диалог, подтверждённые заказы
type Session struct {
	ID         string
	Inventory  repository.InventoryRepository
	Transcript repository.TranscriptRepository
	Orders     repository.OrderRepository

	busy     atomic.Bool
	lastSeen atomic.Int64
}

// acquire claims the single outstanding-request slot.
func (s *Session) acquire() bool { return s.busy.CompareAndSwap(false, true) }
func (s *Session) release()      { s.busy.Store(false) }

// Busy reports whether a model request is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// SessionManager хранит сессии в памяти процесса, неактивные удаляются по истечении idleTTL
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	seed     []domain.InventoryItem
	idleTTL  time.Duration
	now      func() time.Time
}

func NewSessionManager(seed []domain.InventoryItem) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		seed:     seed,
		idleTTL:  SessionIdleTTL,
		now:      time.Now,
	}
}

// Get returns an existing session and marks it as seen.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if ok {
		s.lastSeen.Store(m.now().UnixNano())
	}
	return s, ok
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictIdle drops sessions not seen for idleTTL. Sessions with a request in flight are kept.
func (m *SessionManager) EvictIdle() int {
	cutoff := m.now().Add(-m.idleTTL).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		if s.lastSeen.Load() < cutoff && !s.Busy() {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		slog.Debug("idle sessions evicted", "count", evicted, "remaining", len(m.sessions))
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

// GetOrCreate falls back to a fresh session (new id) when id is unknown.
func (m *SessionManager) GetOrCreate(ctx context.Context, id string) (*Session, bool, error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}
	s, err := m.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Create seeds inventory and the greeting turn.
func (m *SessionManager) Create(ctx context.Context) (*Session, error) {
	s := &Session{
		ID:         uuid.NewString(),
		Inventory:  repository.NewMemoryInventory(m.seed),
		Transcript: repository.NewMemoryTranscript(),
		Orders:     repository.NewMemoryOrders(),
	}
	greeting := domain.Turn{Role: domain.RoleAssistant, Text: Greeting, Prose: Greeting}
	if err := s.Transcript.Append(ctx, &greeting); err != nil {
		return nil, err
	}

	m.mu.Lock()
	s.lastSeen.Store(m.now().UnixNano())
	m.sessions[s.ID] = s
	m.mu.Unlock()
	slog.Debug("session created", "session", s.ID)
	return s, nil
}
