package service

import (
	"context"
	"strings"

	"stockpilot/internal/domain"
	"stockpilot/internal/prompt"
	"stockpilot/internal/reply"
)

// ErrEmptyMessage пустой ввод не попадает в диалог и не уходит модели
var ErrEmptyMessage = prompt.ErrEmptyMessage

// ModelGateway один обмен с моделью; ошибки уже превращены в текст
type ModelGateway interface {
	Send(ctx context.Context, req domain.ModelRequest) string
}

// Exchange пара реплик одного обмена
type Exchange struct {
	User      domain.Turn `json:"user"`
	Assistant domain.Turn `json:"assistant"`
}

// AssistantService ведёт диалог: запрос, ответ, разбор заказа
type AssistantService struct {
	assembler *prompt.Assembler
	gateway   ModelGateway
}

func NewAssistantService(assembler *prompt.Assembler, gateway ModelGateway) *AssistantService {
	return &AssistantService{assembler: assembler, gateway: gateway}
}

// Send appends exactly one user turn and, after the reply, exactly one
// assistant turn. Blank input appends nothing and sends nothing.
func (s *AssistantService) Send(ctx context.Context, sess *Session, text string) (*Exchange, error) {
	msg := strings.TrimSpace(text)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if !sess.acquire() {
		return nil, ErrSessionBusy
	}
	defer sess.release()

	history, err := sess.Transcript.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := sess.Inventory.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	req, err := s.assembler.Build(msg, history, snapshot)
	if err != nil {
		return nil, err
	}

	userTurn := domain.Turn{Role: domain.RoleUser, Text: msg, Prose: msg}
	if err := sess.Transcript.Append(ctx, &userTurn); err != nil {
		return nil, err
	}

	raw := s.gateway.Send(ctx, req)
	prose, order := reply.Extract(raw)

	assistantTurn := domain.Turn{Role: domain.RoleAssistant, Text: raw, Prose: prose, Order: order}
	if err := sess.Transcript.Append(ctx, &assistantTurn); err != nil {
		return nil, err
	}
	return &Exchange{User: userTurn, Assistant: assistantTurn}, nil
}

// Inject sends a message on the user's behalf, e.g. after an upload.
func (s *AssistantService) Inject(ctx context.Context, sess *Session, text string) (*Exchange, error) {
	return s.Send(ctx, sess, text)
}

// Transcript returns all turns, earliest first.
func (s *AssistantService) Transcript(ctx context.Context, sess *Session) ([]domain.Turn, error) {
	return sess.Transcript.List(ctx)
}
