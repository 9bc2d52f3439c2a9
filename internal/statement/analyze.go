package statement

import (
	"errors"
	"fmt"
)

// Category groups report messages by the check that produced them.
type Category string

const (
	CategoryIntegrity    Category = "integrity"
	CategoryBranding     Category = "branding"
	CategoryLayout       Category = "layout"
	CategoryTransactions Category = "transactions"
	CategoryAI           Category = "ai"
)

// Verdict is the final three-way authenticity classification.
type Verdict string

const (
	VerdictLikelyGenuine Verdict = "likely_genuine"
	VerdictSuspicious    Verdict = "suspicious"
	VerdictLikelyFake    Verdict = "likely_fake"
)

// Score deltas for each signal. The model starts at 1.0 and each check
// applies its fixed adjustment; the sum is clamped once at the end.
const (
	penaltyEditorTool    = 0.5
	penaltyGenericTool   = 0.1
	penaltyUnknownTool   = 0.05
	penaltyEmptyMetadata = 0.05
	penaltyAIStrong      = 0.25
	penaltyAIPossible    = 0.1
	bonusKnownBank       = 0.05
	penaltyUnknownBank   = 0.1
	penaltyLayoutIssues  = 0.1
	penaltyNoRows        = 0.12
	penaltyFewRows       = 0.05
	penaltyMismatches    = 0.2
)

const (
	scoreFloor   = 0.05
	scoreCeiling = 1.0

	// Verdict thresholds; treated as contractual.
	fakeThreshold       = 0.55
	suspiciousThreshold = 0.82
)

const aiDisclaimer = "AI-generation assessment is based on metadata fingerprints only and is not conclusive."

// ErrNoPages is returned for a document with no pages at all; the caller
// maps it to a user-facing rejection rather than a degraded score.
var ErrNoPages = errors.New("document has no pages")

// AISignal summarizes the AI-generation assessment included in every report.
type AISignal struct {
	Level   AILevel  `json:"level"`
	Summary []string `json:"summary"`
	Note    string   `json:"note"`
}

// Report is the analyzer's result: the verdict, the clamped confidence
// score, every reason in emission order, the detected bank, the reasons
// grouped by category, and the AI-generation summary.
type Report struct {
	Verdict     Verdict               `json:"verdict"`
	Confidence  float64               `json:"confidence"`
	Reasons     []string              `json:"reasons"`
	Bank        string                `json:"bank"`
	Sections    map[Category][]string `json:"sections"`
	AIGenerated AISignal              `json:"ai_generated"`
}

// scorecard is the explicit accumulator every check contributes to. Each
// check hands add() its delta and messages; nothing mutates the score
// anywhere else.
type scorecard struct {
	score    float64
	reasons  []string
	sections map[Category][]string
}

func newScorecard() *scorecard {
	return &scorecard{
		score: 1.0,
		sections: map[Category][]string{
			CategoryIntegrity:    {},
			CategoryBranding:     {},
			CategoryLayout:       {},
			CategoryTransactions: {},
			CategoryAI:           {},
		},
	}
}

func (s *scorecard) add(cat Category, delta float64, msgs ...string) {
	s.score += delta
	s.reasons = append(s.reasons, msgs...)
	s.sections[cat] = append(s.sections[cat], msgs...)
}

// Analyze runs every check over the document and combines their signals
// into a Report. The checks are independent; their order affects only the
// ordering of messages. Analyze is deterministic: the same document always
// yields the same report.
func Analyze(doc *Document) (*Report, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, ErrNoPages
	}

	card := newScorecard()
	prov := NewProvenance(doc.Producer, doc.Creator)

	pv := classifyProvenance(prov)
	card.add(CategoryIntegrity, pv.delta, pv.message)

	aiLevel, aiSummary := classifyAISignals(prov)
	switch aiLevel {
	case AIStrong:
		card.add(CategoryAI, -penaltyAIStrong, aiSummary...)
	case AIPossible:
		card.add(CategoryAI, -penaltyAIPossible, aiSummary...)
	}

	bank := DetectBank(doc.Pages)
	if bank == UnknownBank {
		card.add(CategoryBranding, -penaltyUnknownBank,
			"No known bank branding found on the first page.")
	} else {
		card.add(CategoryBranding, bonusKnownBank,
			fmt.Sprintf("Recognised %s branding on the first page.", bank))
	}

	if warnings := LayoutWarnings(doc.Pages); len(warnings) > 0 {
		card.add(CategoryLayout, -penaltyLayoutIssues, warnings...)
	}

	checkTransactions(doc, card)

	score := card.score
	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeiling {
		score = scoreCeiling
	}

	verdict := verdictFor(score, pv.strongEdit)
	reasons := append(card.reasons, overallMessage(verdict))

	if aiSummary == nil {
		aiSummary = []string{}
	}
	return &Report{
		Verdict:    verdict,
		Confidence: score,
		Reasons:    reasons,
		Bank:       bank,
		Sections:   card.sections,
		AIGenerated: AISignal{
			Level:   aiLevel,
			Summary: aiSummary,
			Note:    aiDisclaimer,
		},
	}, nil
}

// checkTransactions runs table extraction and balance verification. A
// defect in the document must lower confidence, never crash the pipeline,
// so a panic inside either component is absorbed and treated the same as
// finding no tables at all.
func checkTransactions(doc *Document, card *scorecard) {
	rows, warnings, failed := extractAndVerify(doc)
	switch {
	case failed:
		card.add(CategoryTransactions, -penaltyNoRows,
			"Could not extract transaction tables from this document; the running balance was not checked.")
	case len(rows) == 0:
		card.add(CategoryTransactions, -penaltyNoRows,
			"No transaction tables with a balance column were found.")
	case len(rows) < 3:
		card.add(CategoryTransactions, -penaltyFewRows, warnings...)
	case len(warnings) > 0:
		card.add(CategoryTransactions, -penaltyMismatches, warnings...)
	}
	// A clean run adds nothing: a consistent balance chain is the expected
	// state, not positive evidence.
}

func extractAndVerify(doc *Document) (rows []Transaction, warnings []string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			rows, warnings, failed = nil, nil, true
		}
	}()
	rows = ExtractTransactions(doc)
	if len(rows) == 0 {
		return rows, nil, false
	}
	warnings = VerifyRunningBalance(rows)
	return rows, warnings, false
}

// verdictFor maps the clamped score to a verdict; a strong edit signal
// overrides the score entirely.
func verdictFor(score float64, strongEdit bool) Verdict {
	switch {
	case strongEdit || score < fakeThreshold:
		return VerdictLikelyFake
	case score < suspiciousThreshold:
		return VerdictSuspicious
	default:
		return VerdictLikelyGenuine
	}
}

func overallMessage(v Verdict) string {
	switch v {
	case VerdictLikelyFake:
		return "Overall risk: high. This document shows strong signs of tampering or fabrication."
	case VerdictSuspicious:
		return "Overall risk: elevated. Several checks raised concerns; manual review is recommended."
	default:
		return "Overall risk: low. No significant signs of tampering were found."
	}
}
