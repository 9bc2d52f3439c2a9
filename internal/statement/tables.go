package statement

import (
	"math"
	"strings"
)

// columnMap holds the cell index for each semantic column, -1 when the
// header has no matching cell.
type columnMap struct {
	date    int
	debit   int
	credit  int
	amount  int
	balance int
}

// mapColumns matches header cells to semantic columns by substring, first
// match per column wins. A table without a balance column is not a
// transaction table, so ok is false.
func mapColumns(header []string) (columnMap, bool) {
	cm := columnMap{date: -1, debit: -1, credit: -1, amount: -1, balance: -1}
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case cm.date < 0 && strings.Contains(h, "date"):
			cm.date = i
		case cm.debit < 0 && (strings.Contains(h, "debit") || strings.Contains(h, "paid out") || h == "out"):
			cm.debit = i
		case cm.credit < 0 && (strings.Contains(h, "credit") || strings.Contains(h, "paid in") || h == "in"):
			cm.credit = i
		case cm.amount < 0 && strings.Contains(h, "amount"):
			cm.amount = i
		case cm.balance < 0 && strings.Contains(h, "balance"):
			cm.balance = i
		}
	}
	return cm, cm.balance >= 0
}

// cellAt returns the cell at idx, or "" when the column is absent or the
// row is shorter than the header.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// moneyAt parses the cell at idx as an amount, returning its absolute
// value, or 0 when the column is absent or unparseable.
func moneyAt(cells []string, idx int) float64 {
	v, ok := parseMoney(cellAt(cells, idx))
	if !ok {
		return 0
	}
	return math.Abs(v)
}

// ExtractTransactions walks every detected table on every page and emits
// one Transaction per data row that carries a parseable balance. Rows
// without one are dropped entirely rather than emitted half-filled.
// Encounter order is preserved; it is not necessarily chronological.
func ExtractTransactions(doc *Document) []Transaction {
	var txns []Transaction
	for pageIdx, tables := range doc.Tables {
		for _, t := range tables {
			cm, ok := mapColumns(t.Header)
			if !ok {
				continue
			}
			for i, cells := range t.Rows {
				balance, ok := parseMoney(cellAt(cells, cm.balance))
				if !ok {
					continue
				}
				debit := moneyAt(cells, cm.debit)
				credit := moneyAt(cells, cm.credit)
				if cm.amount >= 0 {
					if a, ok := parseMoney(cellAt(cells, cm.amount)); ok {
						if a < 0 {
							debit = -a
							credit = 0
						} else {
							// A signed amount column only sets credit here; a
							// debit parsed from its own column is left alone.
							credit = a
						}
					}
				}
				txns = append(txns, Transaction{
					Page:    pageIdx + 1,
					Row:     i + 2, // 1-based, counting the header as row 1
					Date:    strings.TrimSpace(cellAt(cells, cm.date)),
					Debit:   debit,
					Credit:  credit,
					Balance: balance,
				})
			}
		}
	}
	return txns
}
