package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLine строка заказа поставщику, извлечённая из ответа модели
type PurchaseOrderLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"qty"`
	Cost     float64 `json:"cost"`
	Supplier string  `json:"supplier,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// PurchaseOrder черновик заказа из ответа модели
type PurchaseOrder struct {
	Lines []PurchaseOrderLine `json:"lines"`
	Total string              `json:"total"`
}

// NewPurchaseOrder fixes the rendered total at construction.
func NewPurchaseOrder(lines []PurchaseOrderLine) *PurchaseOrder {
	po := &PurchaseOrder{Lines: lines}
	po.Total = po.TotalCost().StringFixed(2)
	return po
}

// TotalCost сумма стоимостей строк
func (po *PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(decimal.NewFromFloat(l.Cost))
	}
	return total
}

// OrderStatus тип статуса подтверждения
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderConfirmation подтверждение черновика заказа. Строки остаются в реплике.
type OrderConfirmation struct {
	ID        string      `json:"id"`
	TurnID    string      `json:"turn_id"`
	Total     string      `json:"total"`
	LineCount int         `json:"line_count"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
