// Package statement implements the bank-statement authenticity checks:
// transaction table extraction, running-balance verification, metadata
// classification, branding and layout heuristics, and the aggregation of
// all of those weak signals into a single verdict.
package statement

// Document is the view of an uploaded PDF that the analyzer consumes.
// It is produced by an upstream reader (page text, metadata and detected
// tables) and carries no reference to the raw bytes.
type Document struct {
	// Pages holds one entry per page, in order. A page with no
	// extractable text is an empty string, never absent.
	Pages []string

	// Producer and Creator are the raw PDF metadata strings, possibly empty.
	Producer string
	Creator  string

	// Tables holds the detected tables per page, same length as Pages.
	Tables [][]Table
}

// Table is one detected table: a header row plus data rows of raw cell
// strings. Cells may be empty but are never missing from the slice the
// detector saw on that line.
type Table struct {
	Header []string
	Rows   [][]string
}

// Transaction is one normalized statement row. Debit and credit are
// non-negative; balance is required and rows without a parseable balance
// never become Transactions.
type Transaction struct {
	Page    int     `json:"page"`
	Row     int     `json:"row"`
	Date    string  `json:"date,omitempty"`
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
	Balance float64 `json:"balance"`
}
