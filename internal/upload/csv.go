// Package upload parses inventory spreadsheets exported as CSV.
//
// Ingestion is lenient: every row after the header becomes an item, and
// missing or unparseable fields fall back to fixed defaults instead of
// rejecting the file.
package upload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"stockpilot/internal/domain"
)

// Fallbacks for missing or unparseable columns.
const (
	DefaultName            = "Unknown Item"
	DefaultCategory        = "Uncategorized"
	DefaultUnit            = "Units"
	DefaultSupplier        = "Unknown"
	DefaultExpiryDate      = "2026-01-01"
	DefaultStock           = 0
	DefaultReorderLevel    = 0
	DefaultConsumptionRate = 1
	DefaultPrice           = 0
)

// Column order is fixed; header names are ignored.
const (
	colID = iota
	colName
	colCategory
	colStock
	colUnit
	colReorder
	colConsumption
	colExpiry
	colPrice
	colSupplier
)

var ErrUnsupportedCharset = errors.New("unsupported charset")

// ParseInventoryCSV reads the whole upload. charset is a WHATWG label such as
// "utf-8" or "shift_jis"; empty means UTF-8. A leading BOM is always dropped.
func ParseInventoryCSV(r io.Reader, charset string) ([]domain.InventoryItem, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(dec.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return readItems(reader)
}

type recordReader interface {
	Read() ([]string, error)
}

// readItems numbers generated ids by data row, so skipped rows keep their slot.
func readItems(reader recordReader) ([]domain.InventoryItem, error) {
	var (
		items      []domain.InventoryItem
		seenHeader bool
		line       int
		dataRow    int
	)
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				slog.Warn("upload: skipping unreadable csv row", "line", line, "err", err)
				if seenHeader {
					dataRow++
				}
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		if !seenHeader {
			seenHeader = true
			continue
		}
		items = append(items, itemFromRecord(rec, dataRow))
		dataRow++
	}
	return items, nil
}

func decoderFor(charset string) (encoding.Encoding, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
	}
	return enc, nil
}

func itemFromRecord(rec []string, index int) domain.InventoryItem {
	get := func(idx int) string {
		if idx < len(rec) {
			return strings.TrimSpace(rec[idx])
		}
		return ""
	}

	id := get(colID)
	if id == "" {
		id = fmt.Sprintf("new-%d", index)
	}

	return domain.InventoryItem{
		ID:                   id,
		Name:                 orDefault(get(colName), DefaultName),
		Category:             orDefault(get(colCategory), DefaultCategory),
		CurrentStock:         number(get(colStock), DefaultStock),
		Unit:                 orDefault(get(colUnit), DefaultUnit),
		ReorderLevel:         number(get(colReorder), DefaultReorderLevel),
		DailyConsumptionRate: number(get(colConsumption), DefaultConsumptionRate),
		ExpiryDate:           orDefault(get(colExpiry), DefaultExpiryDate),
		Price:                number(get(colPrice), DefaultPrice),
		Supplier:             orDefault(get(colSupplier), DefaultSupplier),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// number treats zero like a missing value, so an explicit 0 consumption
// rate still becomes 1 and run-out division stays defined.
func number(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return fallback
	}
	return v
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
