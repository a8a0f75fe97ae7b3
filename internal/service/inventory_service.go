package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"stockpilot/internal/domain"
	"stockpilot/internal/repository"
	"stockpilot/internal/upload"
)

// ErrEmptyUpload файл без строк данных не заменяет склад
var ErrEmptyUpload = errors.New("upload contains no inventory rows")

// UploadSummaryPrompt is injected after a successful upload.
const UploadSummaryPrompt = "I have just uploaded a new inventory file with %d items. Please analyze it and give me a summary."

// InventoryService инкапсулирует работу со снимком склада
type InventoryService struct {
	assistant *AssistantService
	now       func() time.Time
}

func NewInventoryService(assistant *AssistantService, now func() time.Time) *InventoryService {
	if now == nil {
		now = time.Now
	}
	return &InventoryService{assistant: assistant, now: now}
}

// UploadResult итог загрузки файла
type UploadResult struct {
	Items int `json:"items"`
	// Exchange is nil when the summary request could not be sent (session busy).
	Exchange *Exchange `json:"exchange,omitempty"`
}

func (s *InventoryService) List(ctx context.Context, sess *Session, f repository.ItemFilter) ([]domain.InventoryItem, error) {
	return sess.Inventory.List(ctx, f)
}

func (s *InventoryService) GetByID(ctx context.Context, sess *Session, id string) (*domain.InventoryItem, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return sess.Inventory.GetByID(ctx, id)
}

// Upload replaces the whole inventory, then asks the assistant for a summary.
func (s *InventoryService) Upload(ctx context.Context, sess *Session, r io.Reader, charset string) (*UploadResult, error) {
	items, err := upload.ParseInventoryCSV(r, charset)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedCharset) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyUpload
	}
	if err := sess.Inventory.Replace(ctx, items); err != nil {
		return nil, err
	}
	slog.Info("inventory replaced from upload", "session", sess.ID, "items", len(items))

	res := &UploadResult{Items: len(items)}
	ex, err := s.assistant.Inject(ctx, sess, fmt.Sprintf(UploadSummaryPrompt, len(items)))
	switch {
	case errors.Is(err, ErrSessionBusy):
		slog.Warn("upload summary skipped, session busy", "session", sess.ID)
	case err != nil:
		return nil, err
	default:
		res.Exchange = ex
	}
	return res, nil
}

// Stats считает показатели дашборда по текущему снимку
func (s *InventoryService) Stats(ctx context.Context, sess *Session) (*domain.Stats, error) {
	snapshot, err := sess.Inventory.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(snapshot, s.now()), nil
}

// ComputeStats applies the same thresholds the model is told about.
func ComputeStats(items []domain.InventoryItem, ref time.Time) *domain.Stats {
	st := &domain.Stats{
		ReferenceDate: domain.StartOfDay(ref).Format(domain.DateLayout),
		TotalItems:    len(items),
		Categories:    make([]domain.CategoryCount, 0),
	}
	byCategory := make(map[string]int)
	for _, it := range items {
		if it.IsLowStock() {
			st.LowStock++
		}
		if it.IsOutOfStock() {
			st.OutOfStock++
		}
		if it.IsExpiringSoon(ref) {
			st.ExpiringSoon++
		}
		if it.IsSurplus() {
			st.Surplus++
		}
		byCategory[it.Category]++
	}
	for c, n := range byCategory {
		st.Categories = append(st.Categories, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(st.Categories, func(i, j int) bool { return st.Categories[i].Category < st.Categories[j].Category })
	return st
}
