package statement

import (
	"fmt"
	"math"
)

const (
	// balanceTolerance absorbs the rounding slack between printed balances.
	balanceTolerance = 0.01

	// maxMismatchDetail caps how many mismatches are reported in full.
	maxMismatchDetail = 5
)

// VerifyRunningBalance checks that each row's balance equals the previous
// balance adjusted by that row's credit and debit. Many statements list
// transactions newest-first, so both the extracted order and its reverse
// are checked and the orientation with strictly fewer mismatches wins
// (ties keep the extracted order). The returned warnings belong to the
// chosen orientation only.
func VerifyRunningBalance(rows []Transaction) []string {
	if len(rows) < 3 {
		return []string{"Not enough transactions to verify the running balance (need at least 3 rows)."}
	}

	count, warnings := countMismatches(rows)

	reversed := make([]Transaction, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}
	if revCount, revWarnings := countMismatches(reversed); revCount < count {
		count, warnings = revCount, revWarnings
	}

	if count >= maxMismatchDetail {
		warnings = append(warnings, fmt.Sprintf(
			"%d running balance mismatches in total; only the first %d are listed.",
			count, maxMismatchDetail))
	}
	return warnings
}

// countMismatches scores one orientation, collecting detail messages for
// the first few mismatches only.
func countMismatches(rows []Transaction) (int, []string) {
	count := 0
	var warnings []string
	for i := 1; i < len(rows); i++ {
		prev, curr := rows[i-1], rows[i]
		expected := prev.Balance + curr.Credit - curr.Debit
		if math.Abs(expected-curr.Balance) > balanceTolerance {
			count++
			if len(warnings) < maxMismatchDetail {
				warnings = append(warnings, fmt.Sprintf(
					"Balance mismatch at page %d row %d: expected %.2f but the statement shows %.2f.",
					curr.Page, curr.Row, expected, curr.Balance))
			}
		}
	}
	return count, warnings
}
