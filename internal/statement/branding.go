package statement

import "strings"

// UnknownBank is reported when no branding is recognised on the first page.
const UnknownBank = "unknown"

type bank struct {
	name    string
	aliases []string
}

// knownBanks is scanned in declaration order; the first bank with any alias
// present on page one wins. Aliases include well-known abbreviations and
// former names where statements still circulate under them.
var knownBanks = []bank{
	{"Barclays", []string{"barclays"}},
	{"HSBC", []string{"hsbc", "midland bank"}},
	{"Lloyds", []string{"lloyds"}},
	{"NatWest", []string{"natwest", "national westminster"}},
	{"Royal Bank of Scotland", []string{"royal bank of scotland", "rbs"}},
	{"Santander", []string{"santander", "abbey national"}},
	{"Halifax", []string{"halifax"}},
	{"Nationwide", []string{"nationwide"}},
	{"TSB", []string{"tsb"}},
	{"Metro Bank", []string{"metro bank", "metrobank"}},
	{"The Co-operative Bank", []string{"co-operative bank", "cooperative bank", "co-op bank"}},
	{"First Direct", []string{"first direct"}},
	{"Monzo", []string{"monzo"}},
	{"Starling", []string{"starling"}},
	{"Revolut", []string{"revolut"}},
	{"Chase", []string{"chase"}},
}

// DetectBank scans the case-folded first page for a known bank's branding.
// Returns UnknownBank when nothing matches.
func DetectBank(pages []string) string {
	if len(pages) == 0 {
		return UnknownBank
	}
	text := strings.ToLower(pages[0])
	for _, b := range knownBanks {
		for _, alias := range b.aliases {
			if strings.Contains(text, alias) {
				return b.name
			}
		}
	}
	return UnknownBank
}
