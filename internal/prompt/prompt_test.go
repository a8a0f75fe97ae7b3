package prompt

import (
	"strings"
	"testing"
	"time"

	"stockpilot/internal/domain"
)

func fixedNow() time.Time { return time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC) }

func sampleSnapshot() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "1", Name: "A", CurrentStock: 5, ReorderLevel: 10, ExpiryDate: "2025-12-01"},
		{ID: "2", Name: "B", CurrentStock: 0, ReorderLevel: 5, ExpiryDate: "2025-05-20"},
		{ID: "3", Name: "C", CurrentStock: 60, ReorderLevel: 10, ExpiryDate: "2026-01-01"},
	}
}

func TestInstruction_ClassifiesStock(t *testing.T) {
	a := NewAssembler(fixedNow)
	text, err := a.Instruction(sampleSnapshot())
	if err != nil {
		t.Fatalf("instruction: %v", err)
	}
	for _, want := range []string{
		"- Low Stock (1): A\n",
		"- Out of Stock (1): B\n",
		"- Surplus (1): C\n",
		"- Expiring Soon (1): B\n",
		"Current Date Context: May 15, 2025.",
		"```JSON_PURCHASE_ORDER",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("instruction missing %q:\n%s", want, text)
		}
	}
}

func TestInstruction_EmbedsLiteralSnapshot(t *testing.T) {
	a := NewAssembler(fixedNow)
	text, err := a.Instruction([]domain.InventoryItem{{ID: "x", Name: "Salt & Pepper <fine>", CurrentStock: 2, ReorderLevel: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, `"name":"Salt & Pepper <fine>"`) {
		t.Fatalf("inventory json not literal:\n%s", text)
	}
	if !strings.Contains(text, `"currentStock":2`) {
		t.Fatalf("camelCase fields expected:\n%s", text)
	}

	empty, _ := a.Instruction(nil)
	if !strings.Contains(empty, "CURRENT INVENTORY DATA (JSON):\n[]\n") {
		t.Fatalf("empty snapshot must serialize as []:\n%s", empty)
	}
}

func TestBuild_HistoryThenMessage(t *testing.T) {
	a := NewAssembler(fixedNow)
	history := []domain.Turn{
		{Role: domain.RoleAssistant, Text: "Hello!"},
		{Role: domain.RoleUser, Text: "summary please"},
		{Role: domain.RoleAssistant, Text: "2 items", Prose: "2 items"},
	}
	req, err := a.Build("  what about milk?  ", history, sampleSnapshot())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(req.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(req.Messages))
	}
	last := req.Messages[3]
	if last.Role != domain.RoleUser || last.Text != "what about milk?" {
		t.Fatalf("last message: %+v", last)
	}
	if req.Messages[0].Role != domain.RoleAssistant || req.Messages[1].Text != "summary please" {
		t.Fatalf("history order: %+v", req.Messages)
	}
}

func TestBuild_RebuildsInstructionPerSnapshot(t *testing.T) {
	a := NewAssembler(fixedNow)
	first, _ := a.Build("hi", nil, sampleSnapshot())
	second, _ := a.Build("hi", nil, []domain.InventoryItem{{ID: "9", Name: "Sugar", CurrentStock: 1, ReorderLevel: 1}})
	if strings.Contains(second.SystemInstruction, `"name":"A"`) {
		t.Fatalf("stale snapshot reused")
	}
	if !strings.Contains(first.SystemInstruction, `"name":"A"`) || !strings.Contains(second.SystemInstruction, `"name":"Sugar"`) {
		t.Fatalf("snapshot missing")
	}
}

func TestBuild_RejectsBlank(t *testing.T) {
	a := NewAssembler(fixedNow)
	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := a.Build(in, nil, nil); err != ErrEmptyMessage {
			t.Fatalf("input %q: expected ErrEmptyMessage, got %v", in, err)
		}
	}
}
