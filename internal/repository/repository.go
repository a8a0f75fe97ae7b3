package repository

import (
	"context"
	"errors"
	"strings"

	"stockpilot/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ItemFilter параметры фильтрации списка позиций
type ItemFilter struct {
	NameSubstring string
	Category      string
	Status        domain.StockStatus
}

// InventoryRepository хранилище снимка склада. Replace заменяет всё целиком.
type InventoryRepository interface {
	Replace(ctx context.Context, items []domain.InventoryItem) error
	Snapshot(ctx context.Context) ([]domain.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error)
}

// TranscriptRepository журнал реплик, только добавление
type TranscriptRepository interface {
	Append(ctx context.Context, t *domain.Turn) error
	List(ctx context.Context) ([]domain.Turn, error)
	GetByID(ctx context.Context, id string) (*domain.Turn, error)
}

// OrderRepository интерфейс репозитория подтверждений заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.OrderConfirmation) error
	GetByID(ctx context.Context, id string) (*domain.OrderConfirmation, error)
	GetByTurnID(ctx context.Context, turnID string) (*domain.OrderConfirmation, error)
	Update(ctx context.Context, o *domain.OrderConfirmation) error
	List(ctx context.Context) ([]domain.OrderConfirmation, error)
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f ItemFilter) match(it domain.InventoryItem) bool {
	if !containsIgnoreCase(it.Name, f.NameSubstring) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
		return false
	}
	if f.Status != "" && it.Status() != f.Status {
		return false
	}
	return true
}
