package reply

import (
	"testing"
)

func TestExtract_ValidBlock(t *testing.T) {
	text := "Here is your draft order.\n```JSON_PURCHASE_ORDER\n[{\"name\":\"X\",\"qty\":3,\"cost\":30,\"supplier\":\"S\"}]\n```\nLet me know."
	prose, order := Extract(text)
	if order == nil {
		t.Fatalf("expected order")
	}
	if len(order.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(order.Lines))
	}
	l := order.Lines[0]
	if l.Name != "X" || l.Quantity != 3 || l.Cost != 30 || l.Supplier != "S" || l.Reason != "" {
		t.Fatalf("line: %+v", l)
	}
	if order.Total != "30.00" {
		t.Fatalf("total: %s", order.Total)
	}
	if prose != "Here is your draft order.\n\nLet me know." {
		t.Fatalf("prose: %q", prose)
	}
}

func TestExtract_InvalidJSONFailsOpen(t *testing.T) {
	text := "Draft:\n```JSON_PURCHASE_ORDER\n[{\"name\":\"X\",\"qty\":3,\"cost\":30,},]\n```"
	prose, order := Extract(text)
	if order != nil {
		t.Fatalf("expected no order")
	}
	if prose != text {
		t.Fatalf("expected original text, got %q", prose)
	}

	// re-extracting the fail-open output finds nothing new
	again, order := Extract(prose)
	if order != nil || again != text {
		t.Fatalf("not idempotent: %q %v", again, order)
	}
}

func TestExtract_NoFence(t *testing.T) {
	text := "  You have 2 low stock items.\n```go\nfmt.Println()\n```\n"
	prose, order := Extract(text)
	if order != nil || prose != text {
		t.Fatalf("expected verbatim prose, got %q %v", prose, order)
	}
}

func TestExtract_MissingRequiredFieldFailsOpen(t *testing.T) {
	for _, body := range []string{
		`[{"qty":3,"cost":30}]`,
		`[{"name":"X","cost":30}]`,
		`[{"name":"X","qty":3}]`,
		`[{"name":"X","qty":"3","cost":30}]`,
		`{"name":"X","qty":3,"cost":30}`,
		`null`,
		`[null]`,
	} {
		text := "```JSON_PURCHASE_ORDER\n" + body + "\n```"
		prose, order := Extract(text)
		if order != nil || prose != text {
			t.Fatalf("body %s: expected fail-open, got %q %v", body, prose, order)
		}
	}
}

func TestExtract_QuantityAliasAndReason(t *testing.T) {
	text := "```JSON_PURCHASE_ORDER [{\"name\":\"Milk\",\"quantity\":20,\"cost\":64.5,\"reason\":\"Low stock\"},{\"name\":\"Rice\",\"qty\":5,\"cost\":62.5}] ```"
	prose, order := Extract(text)
	if order == nil || len(order.Lines) != 2 {
		t.Fatalf("expected two lines, got %v", order)
	}
	if order.Lines[0].Quantity != 20 || order.Lines[0].Reason != "Low stock" {
		t.Fatalf("alias: %+v", order.Lines[0])
	}
	if order.Total != "127.00" {
		t.Fatalf("total: %s", order.Total)
	}
	if prose != "" {
		t.Fatalf("prose: %q", prose)
	}
}

func TestExtract_OnlyFirstBlock(t *testing.T) {
	text := "a\n```JSON_PURCHASE_ORDER\n[{\"name\":\"X\",\"qty\":1,\"cost\":1}]\n```\nb\n```JSON_PURCHASE_ORDER\n[{\"name\":\"Y\",\"qty\":2,\"cost\":2}]\n```"
	prose, order := Extract(text)
	if order == nil || len(order.Lines) != 1 || order.Lines[0].Name != "X" {
		t.Fatalf("first block expected: %v", order)
	}
	want := "a\n\nb\n```JSON_PURCHASE_ORDER\n[{\"name\":\"Y\",\"qty\":2,\"cost\":2}]\n```"
	if prose != want {
		t.Fatalf("prose: %q", prose)
	}
}

func TestExtract_EmptyArray(t *testing.T) {
	prose, order := Extract("Nothing to order.\n```JSON_PURCHASE_ORDER\n[]\n```")
	if order == nil || len(order.Lines) != 0 || order.Total != "0.00" {
		t.Fatalf("empty order expected, got %v", order)
	}
	if prose != "Nothing to order." {
		t.Fatalf("prose: %q", prose)
	}
}
