package service

import (
	"context"
	"errors"
	"sync"

	"stockpilot/internal/domain"
	"stockpilot/internal/repository"
)

// ErrAlreadyConfirmed заказ из этой реплики уже подтверждён
var ErrAlreadyConfirmed = errors.New("purchase order already confirmed")

// OrderService подтверждение и отмена черновиков заказов
type OrderService struct {
	// serializes check-then-create in Confirm
	mu sync.Mutex
}

func NewOrderService() *OrderService {
	return &OrderService{}
}

// Confirm records approval of the order carried by an assistant turn.
func (s *OrderService) Confirm(ctx context.Context, sess *Session, turnID string) (*domain.OrderConfirmation, error) {
	if turnID == "" {
		return nil, ErrInvalidInput
	}
	turn, err := sess.Transcript.GetByID(ctx, turnID)
	if err != nil {
		return nil, err
	}
	if turn.Role != domain.RoleAssistant || turn.Order == nil {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := sess.Orders.GetByTurnID(ctx, turnID); err == nil {
		return nil, ErrAlreadyConfirmed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	o := domain.OrderConfirmation{
		TurnID:    turn.ID,
		Total:     turn.Order.Total,
		LineCount: len(turn.Order.Lines),
		Status:    domain.OrderStatusConfirmed,
	}
	if err := sess.Orders.Create(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder возвращает подтверждение по id
func (s *OrderService) GetOrder(ctx context.Context, sess *Session, id string) (*domain.OrderConfirmation, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return sess.Orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, sess *Session) ([]domain.OrderConfirmation, error) {
	return sess.Orders.List(ctx)
}

// CancelOrder если Confirmed, ставим Cancelled, иначе ErrInvalidState
func (s *OrderService) CancelOrder(ctx context.Context, sess *Session, id string) (*domain.OrderConfirmation, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := sess.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderStatusConfirmed {
		return nil, ErrInvalidState
	}
	o.Status = domain.OrderStatusCancelled
	if err := sess.Orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
