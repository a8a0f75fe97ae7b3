package domain

import (
	"strings"
	"time"
)

// DateLayout формат дат в загрузке и в снимке склада
const DateLayout = "2006-01-02"

// Пороги классификации остатков
const (
	SurplusFactor      = 5
	ExpiringWindowDays = 30
)

// InventoryItem позиция склада. После попадания в снимок не изменяется.
type InventoryItem struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	CurrentStock         float64 `json:"currentStock"`
	Unit                 string  `json:"unit"`
	ReorderLevel         float64 `json:"reorderLevel"`
	DailyConsumptionRate float64 `json:"dailyConsumptionRate"`
	ExpiryDate           string  `json:"expiryDate"`
	Price                float64 `json:"price"`
	Supplier             string  `json:"supplier"`
}

// StockStatus статус остатка для таблицы
type StockStatus string

const (
	StockStatusHealthy StockStatus = "healthy"
	StockStatusLow     StockStatus = "low"
	StockStatusOut     StockStatus = "out"
	StockStatusSurplus StockStatus = "surplus"
)

// ParseStockStatus разбирает статус из query-параметра
func ParseStockStatus(s string) (StockStatus, bool) {
	switch st := StockStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StockStatusHealthy, StockStatusLow, StockStatusOut, StockStatusSurplus:
		return st, true
	}
	return "", false
}

func (i InventoryItem) IsOutOfStock() bool { return i.CurrentStock <= 0 }

func (i InventoryItem) IsLowStock() bool {
	return i.CurrentStock > 0 && i.CurrentStock < i.ReorderLevel
}

func (i InventoryItem) IsSurplus() bool {
	return i.CurrentStock > i.ReorderLevel*SurplusFactor
}

// Expiry returns the parsed expiry date; false when the stored string is not a date.
func (i InventoryItem) Expiry() (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(i.ExpiryDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsExpiringSoon: expiry <= ref + 30 days. Unparseable dates never count.
func (i InventoryItem) IsExpiringSoon(ref time.Time) bool {
	exp, ok := i.Expiry()
	if !ok {
		return false
	}
	threshold := StartOfDay(ref).AddDate(0, 0, ExpiringWindowDays)
	return !exp.After(threshold)
}

// Status first match wins: out, low, surplus, healthy
func (i InventoryItem) Status() StockStatus {
	switch {
	case i.IsOutOfStock():
		return StockStatusOut
	case i.IsLowStock():
		return StockStatusLow
	case i.IsSurplus():
		return StockStatusSurplus
	default:
		return StockStatusHealthy
	}
}

// StartOfDay отбрасывает время, оставляя календарную дату в UTC
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CategoryCount количество позиций в категории
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats сводка для дашборда
type Stats struct {
	ReferenceDate string          `json:"reference_date"`
	TotalItems    int             `json:"total_items"`
	LowStock      int             `json:"low_stock"`
	OutOfStock    int             `json:"out_of_stock"`
	ExpiringSoon  int             `json:"expiring_soon"`
	Surplus       int             `json:"surplus"`
	Categories    []CategoryCount `json:"categories"`
}
