package pdfdoc

import (
	"regexp"
	"strings"

	"github.com/finproof/finproof/internal/statement"
)

// cellSplitPattern splits a text line into cells on runs of two or more
// spaces or on tabs, the gaps column-aligned statement layouts leave
// behind in extracted text.
var cellSplitPattern = regexp.MustCompile(`\t+| {2,}`)

// detectTables finds transaction-shaped tables in one page's text. A line
// with at least three cells, one of which mentions a balance, opens a
// table with that line as its header; following lines with at least two
// cells become data rows until a blank or sub-two-cell line closes it.
func detectTables(text string) []statement.Table {
	var tables []statement.Table
	var header []string
	var rows [][]string

	flush := func() {
		if header != nil {
			tables = append(tables, statement.Table{Header: header, Rows: rows})
		}
		header, rows = nil, nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if header == nil {
			if isHeaderLine(cells) {
				header = cells
			}
			continue
		}
		if len(cells) < 2 {
			flush()
			continue
		}
		rows = append(rows, cells)
	}
	flush()

	return tables
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := cellSplitPattern.Split(line, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isHeaderLine(cells []string) bool {
	if len(cells) < 3 {
		return false
	}
	for _, c := range cells {
		if strings.Contains(strings.ToLower(c), "balance") {
			return true
		}
	}
	return false
}
