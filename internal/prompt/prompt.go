// Package prompt assembles the request sent to the model: behaviour rules,
// the current inventory snapshot and the conversation so far.
package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockpilot/internal/domain"
)

// ErrEmptyMessage пустое сообщение пользователя не отправляется
var ErrEmptyMessage = errors.New("message is empty")

// OrderFenceLabel marks the purchase-order block in a model reply.
const OrderFenceLabel = "JSON_PURCHASE_ORDER"

const instructionTemplate = `You are an Inventory AI Agent for MSMEs.
Current Date Context: %[1]s.

GOALS:
1. SUMMARY: When asked "give me a summary", list counts for:
   - Low Stock (currentStock > 0 and currentStock < reorderLevel)
   - Expiring Soon (expiryDate within %[2]d days of %[1]s)
   - Out of Stock (currentStock of 0 or less)
   - Surplus (currentStock > %[3]dx reorderLevel)
2. SPECIFIC ITEM: When asked "give me the stock of [item]", return the currentStock and unit.
3. PREDICTION: When asked "list items that will run out in N days", calculate: (currentStock / dailyConsumptionRate). If result <= N, list it.
4. PURCHASE ORDERS: When asked to "auto generate a purchase request", identify all items where currentStock < reorderLevel and format as a JSON block.

CRITICAL FORMATTING:
If generating a Purchase Order, wrap it EXACTLY like this:
` + "```" + OrderFenceLabel + `
[
  {"name": "Item Name", "qty": 50, "cost": 100, "supplier": "Supplier Name", "reason": "Low stock"}
]
` + "```" + `
`

// Assembler собирает запрос к модели. Инструкция строится заново на каждый вызов.
type Assembler struct {
	now func() time.Time
}

// NewAssembler; now supplies the reference date used for "expiring soon".
func NewAssembler(now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{now: now}
}

// Build rejects blank input. history is ordered earliest first and must not
// include the new message.
func (a *Assembler) Build(message string, history []domain.Turn, snapshot []domain.InventoryItem) (domain.ModelRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ModelRequest{}, ErrEmptyMessage
	}

	instruction, err := a.Instruction(snapshot)
	if err != nil {
		return domain.ModelRequest{}, err
	}

	msgs := make([]domain.ModelMessage, 0, len(history)+1)
	for _, t := range history {
		msgs = append(msgs, domain.ModelMessage{Role: t.Role, Text: t.Text})
	}
	msgs = append(msgs, domain.ModelMessage{Role: domain.RoleUser, Text: message})

	return domain.ModelRequest{SystemInstruction: instruction, Messages: msgs}, nil
}

// Instruction renders the system text for exactly this snapshot.
func (a *Assembler) Instruction(snapshot []domain.InventoryItem) (string, error) {
	ref := domain.StartOfDay(a.now())
	refText := ref.Format("January 2, 2006")

	data, err := literalJSON(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode inventory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, instructionTemplate, refText, domain.ExpiringWindowDays, domain.SurplusFactor)
	b.WriteString("\nSTOCK STATUS (precomputed from the data below):\n")
	writeGroup(&b, "Low Stock", snapshot, domain.InventoryItem.IsLowStock)
	writeGroup(&b, "Out of Stock", snapshot, domain.InventoryItem.IsOutOfStock)
	writeGroup(&b, "Surplus", snapshot, domain.InventoryItem.IsSurplus)
	writeGroup(&b, "Expiring Soon", snapshot, func(it domain.InventoryItem) bool { return it.IsExpiringSoon(ref) })
	b.WriteString("\nCURRENT INVENTORY DATA (JSON):\n")
	b.Write(data)
	b.WriteString("\n")
	return b.String(), nil
}

func writeGroup(b *strings.Builder, label string, items []domain.InventoryItem, pred func(domain.InventoryItem) bool) {
	var names []string
	for _, it := range items {
		if pred(it) {
			names = append(names, it.Name)
		}
	}
	list := "none"
	if len(names) > 0 {
		list = strings.Join(names, ", ")
	}
	fmt.Fprintf(b, "- %s (%d): %s\n", label, len(names), list)
}

// literalJSON keeps <, > and & as typed; item names go to the model verbatim.
func literalJSON(items []domain.InventoryItem) ([]byte, error) {
	if items == nil {
		items = []domain.InventoryItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
