package repository

import (
	"context"
	"testing"

	"stockpilot/internal/domain"
)

func TestMemoryInventory_ReplaceAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInventory([]domain.InventoryItem{{ID: "1", Name: "Rice", CurrentStock: 45, ReorderLevel: 10}})

	got, err := store.GetByID(ctx, "1")
	if err != nil || got.Name != "Rice" {
		t.Fatalf("get: %v", err)
	}

	if err := store.Replace(ctx, []domain.InventoryItem{{ID: "7", Name: "Sugar"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := store.GetByID(ctx, "1"); err != ErrNotFound {
		t.Fatalf("expected old item gone, got %v", err)
	}
	snap, _ := store.Snapshot(ctx)
	if len(snap) != 1 || snap[0].ID != "7" {
		t.Fatalf("replace is not wholesale: %+v", snap)
	}
}

func TestMemoryInventory_SnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	seed := []domain.InventoryItem{{ID: "1", Name: "Rice", CurrentStock: 45}}
	store := NewMemoryInventory(seed)

	// mutating the seed slice must not leak into the store
	seed[0].CurrentStock = 0

	snap, _ := store.Snapshot(ctx)
	snap[0].Name = "changed"
	if err := store.Replace(ctx, nil); err != nil {
		t.Fatal(err)
	}

	if snap[0].CurrentStock != 45 {
		t.Fatalf("seed leaked into store: %v", snap[0].CurrentStock)
	}
	after, _ := store.Snapshot(ctx)
	if len(after) != 0 {
		t.Fatalf("expected empty store after replace, got %d", len(after))
	}
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInventory([]domain.InventoryItem{
		{ID: "A", Name: "Basmati Rice", Category: "Grains", CurrentStock: 5, ReorderLevel: 10},
		{ID: "B", Name: "Whole Milk", Category: "Dairy", CurrentStock: 0, ReorderLevel: 5},
		{ID: "C", Name: "Brown Rice", Category: "Grains", CurrentStock: 60, ReorderLevel: 10},
	})

	list, _ := store.List(ctx, ItemFilter{NameSubstring: "rice"})
	if len(list) != 2 {
		t.Fatalf("name filter: %d", len(list))
	}

	list, _ = store.List(ctx, ItemFilter{Category: "dairy"})
	if len(list) != 1 || list[0].ID != "B" {
		t.Fatalf("category filter: %+v", list)
	}

	list, _ = store.List(ctx, ItemFilter{Status: domain.StockStatusSurplus})
	if len(list) != 1 || list[0].ID != "C" {
		t.Fatalf("status filter: %+v", list)
	}
}

func TestMemoryTranscript_AppendOnly(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTranscript()

	first := domain.Turn{Role: domain.RoleUser, Text: "hi"}
	if err := tr.Append(ctx, &first); err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("id and timestamp expected")
	}
	second := domain.Turn{Role: domain.RoleAssistant, Text: "hello"}
	_ = tr.Append(ctx, &second)

	list, _ := tr.List(ctx)
	if len(list) != 2 || list[0].Role != domain.RoleUser || list[1].Role != domain.RoleAssistant {
		t.Fatalf("order broken: %+v", list)
	}

	// copies handed out do not change the log
	list[0].Text = "edited"
	got, err := tr.GetByID(ctx, first.ID)
	if err != nil || got.Text != "hi" {
		t.Fatalf("turn mutated: %v %+v", err, got)
	}
	if _, err := tr.GetByID(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryOrders_Lifecycle(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders()

	o := domain.OrderConfirmation{TurnID: "t1", Total: "30.00", Status: domain.OrderStatusConfirmed}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" {
		t.Fatalf("no id")
	}

	byTurn, err := orders.GetByTurnID(ctx, "t1")
	if err != nil || byTurn.ID != o.ID {
		t.Fatalf("by turn: %v", err)
	}

	o.Status = domain.OrderStatusCancelled
	if err := orders.Update(ctx, &o); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := orders.GetByID(ctx, o.ID)
	if got.Status != domain.OrderStatusCancelled {
		t.Fatalf("status not updated")
	}

	if err := orders.Update(ctx, &domain.OrderConfirmation{ID: "nope"}); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	list, _ := orders.List(ctx)
	if len(list) != 1 {
		t.Fatalf("list: %d", len(list))
	}
}
