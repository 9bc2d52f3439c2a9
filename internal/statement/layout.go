package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// headerTokens are the fields a real statement's first page carries.
var headerTokens = []string{"account", "sort code", "statement", "period"}

var pageMarkerPattern = regexp.MustCompile(`(?i)page\s+\d+\s+of\s+\d+`)

// LayoutWarnings runs the structural checks over all page texts and
// returns zero or more independent warnings: first-page header
// completeness, internal pages with an outlier line count, and partial
// "page N of M" numbering.
func LayoutWarnings(pages []string) []string {
	var warnings []string

	if len(pages) > 0 {
		first := strings.ToLower(pages[0])
		hits := 0
		for _, token := range headerTokens {
			if strings.Contains(first, token) {
				hits++
			}
		}
		if hits <= 1 {
			warnings = append(warnings, fmt.Sprintf(
				"First page is missing the usual statement header fields (found %d of %d).",
				hits, len(headerTokens)))
		}
	}

	// Internal pages of a multi-page statement print at a fairly even
	// density; a near-empty page in the middle suggests content was removed.
	if len(pages) >= 3 {
		internal := pages[1 : len(pages)-1]
		counts := make([]int, len(internal))
		total := 0
		for i, p := range internal {
			counts[i] = lineCount(p)
			total += counts[i]
		}
		mean := float64(total) / float64(len(internal))
		for i, c := range counts {
			if float64(c) < mean/2 {
				warnings = append(warnings, fmt.Sprintf(
					"Page %d has far fewer lines (%d) than the other internal pages (mean %.1f).",
					i+2, c, mean))
			}
		}
	}

	marked := 0
	var unmarked []int
	for i, p := range pages {
		if pageMarkerPattern.MatchString(p) {
			marked++
		} else {
			unmarked = append(unmarked, i+1)
		}
	}
	if marked > 0 && marked < len(pages) {
		warnings = append(warnings, fmt.Sprintf(
			"'Page N of M' markers appear on some pages but are missing from page(s) %s.",
			joinInts(unmarked)))
	}

	return warnings
}

func lineCount(page string) int {
	if page == "" {
		return 0
	}
	return len(strings.Split(page, "\n"))
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
