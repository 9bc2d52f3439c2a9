package scanning

// LineItem is one extracted invoice/receipt line. Numeric fields are
// pointers because the extraction service legitimately returns null for
// anything it cannot read.
type LineItem struct {
	Description string   `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	Amount      *float64 `json:"amount"`
}

// ExpenseData contains the fields extracted from a receipt or invoice.
type ExpenseData struct {
	Vendor   string     `json:"vendor"`
	Date     string     `json:"date"` // ISO 8601 when parseable, else raw
	Total    *float64   `json:"total"`
	Currency string     `json:"currency"`
	Items    []LineItem `json:"items"`
}

// Extractor defines the interface for expense extraction backends.
type Extractor interface {
	// ExtractExpense analyzes a receipt/invoice image or PDF and extracts
	// the expense fields.
	ExtractExpense(data []byte, contentType string) (*ExpenseData, error)
	// Close closes the extractor and releases resources.
	Close() error
}
