// Package pdfdoc reads uploaded PDFs into the view the statement analyzer
// consumes: per-page text, producer/creator metadata, and heuristically
// detected tables (a header row plus data rows of cell strings).
package pdfdoc

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/finproof/finproof/internal/statement"
)

// Read parses PDF bytes into a statement.Document. Pages with no
// extractable text become empty strings so the page list always matches
// the page count.
func Read(data []byte) (*statement.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]string, 0, n)
	tables := make([][]statement.Table, 0, n)
	for i := 0; i < n; i++ {
		text, err := doc.Text(i)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
		tables = append(tables, detectTables(text))
	}

	meta := doc.Metadata()
	return &statement.Document{
		Pages:    pages,
		Producer: meta["producer"],
		Creator:  meta["creator"],
		Tables:   tables,
	}, nil
}
