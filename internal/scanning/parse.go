package scanning

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// looseValue accepts either a JSON string or a bare number. Models do not
// reliably quote money values even when asked to.
type looseValue string

func (v *looseValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = looseValue(s)
		return nil
	}
	if string(b) == "null" {
		*v = ""
		return nil
	}
	*v = looseValue(b)
	return nil
}

type rawExpense struct {
	Vendor string     `json:"vendor"`
	Date   string     `json:"date"`
	Total  looseValue `json:"total"`
	Items  []rawItem  `json:"items"`
}

type rawItem struct {
	Description string     `json:"description"`
	Quantity    looseValue `json:"quantity"`
	UnitPrice   looseValue `json:"unit_price"`
	Amount      looseValue `json:"amount"`
}

var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

// looseAmount strips everything but digits, dot and minus before parsing.
// Only this extraction path gets the generic stripping; statement cells
// are parsed strictly in the statement package.
func looseAmount(s string) *float64 {
	s = nonNumericPattern.ReplaceAllString(strings.TrimSpace(s), "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// guessCurrency infers the currency from the symbol printed in a raw
// amount string.
func guessCurrency(s string) string {
	switch {
	case strings.Contains(s, "£"):
		return "GBP"
	case strings.Contains(s, "$"):
		return "USD"
	case strings.Contains(s, "€"):
		return "EUR"
	default:
		return ""
	}
}

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"2 January 2006",
	"January 2, 2006",
}

// normalizeDate converts a recognized date to ISO 8601; an unrecognized
// value passes through unchanged so nothing extracted is discarded.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseExpenseJSON maps the extraction backend's JSON response onto
// ExpenseData. Line items with no description, no amount and no unit price
// are dropped; a missing line amount is recovered from quantity times unit
// price when both are present.
func parseExpenseJSON(text string) (*ExpenseData, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[start : end+1]

	var raw rawExpense
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	data := &ExpenseData{
		Vendor:   strings.TrimSpace(raw.Vendor),
		Date:     normalizeDate(raw.Date),
		Total:    looseAmount(string(raw.Total)),
		Currency: guessCurrency(string(raw.Total)),
		Items:    []LineItem{},
	}

	for _, it := range raw.Items {
		item := LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    looseAmount(string(it.Quantity)),
			UnitPrice:   looseAmount(string(it.UnitPrice)),
			Amount:      looseAmount(string(it.Amount)),
		}
		if item.Amount == nil && item.Quantity != nil && item.UnitPrice != nil {
			amount := round2(*item.Quantity * *item.UnitPrice)
			item.Amount = &amount
		}
		if item.Description == "" && item.Amount == nil && item.UnitPrice == nil {
			continue
		}
		data.Items = append(data.Items, item)
	}

	return data, nil
}
