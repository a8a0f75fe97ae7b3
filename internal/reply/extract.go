// Package reply separates a model reply into display prose and an optional
// purchase order carried in a fenced JSON block.
package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"stockpilot/internal/domain"
	"stockpilot/internal/prompt"
)

// first fenced block tagged with the order label; lazy body, so it ends at the next fence
var orderFence = regexp.MustCompile("(?s)```" + prompt.OrderFenceLabel + `\s*(.*?)\s*` + "```")

var errInvalidLine = errors.New("invalid purchase order line")

// Extract returns the prose to show and the parsed order, if any.
//
// A block that does not parse leaves the reply untouched: the raw text,
// fence included, is returned as prose and order is nil.
func Extract(text string) (prose string, order *domain.PurchaseOrder) {
	loc := orderFence.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil
	}

	lines, err := parseLines(text[loc[2]:loc[3]])
	if err != nil {
		return text, nil
	}

	prose = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return prose, domain.NewPurchaseOrder(lines)
}

func parseLines(body string) ([]domain.PurchaseOrderLine, error) {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("purchase order is not an array")
	}

	lines := make([]domain.PurchaseOrderLine, 0, len(raw))
	for i, obj := range raw {
		line, err := lineFrom(obj)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func lineFrom(obj map[string]any) (domain.PurchaseOrderLine, error) {
	name, ok := obj["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return domain.PurchaseOrderLine{}, errInvalidLine
	}
	qty, ok := firstNumber(obj, "qty", "quantity")
	if !ok {
		return domain.PurchaseOrderLine{}, errInvalidLine
	}
	cost, ok := firstNumber(obj, "cost")
	if !ok {
		return domain.PurchaseOrderLine{}, errInvalidLine
	}

	line := domain.PurchaseOrderLine{Name: name, Quantity: qty, Cost: cost}
	line.Supplier, _ = obj["supplier"].(string)
	line.Reason, _ = obj["reason"].(string)
	return line, nil
}

func firstNumber(obj map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := obj[k].(float64); ok {
			return v, true
		}
	}
	return 0, false
}
