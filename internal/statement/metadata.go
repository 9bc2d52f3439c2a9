package statement

import (
	"fmt"
	"strings"
)

// IntegrityTier classifies the producer/creator metadata by how strongly
// it suggests the document was touched by an editing tool.
type IntegrityTier int

const (
	// TierEditor is a known document editor: the strongest tampering signal.
	TierEditor IntegrityTier = iota
	// TierGenericTool is a generic PDF printer, scanner or cloud docs tool.
	TierGenericTool
	// TierSystem is an OS framework, browser renderer or bank-grade PDF
	// library: the kind of producer a real statement export carries.
	TierSystem
	// TierUnrecognized is non-empty metadata matching no known tool.
	TierUnrecognized
	// TierEmpty is missing metadata; common for automated exports.
	TierEmpty
)

// AILevel grades how likely the document was machine-generated.
type AILevel string

const (
	AINone     AILevel = "none"
	AIPossible AILevel = "possible"
	AIStrong   AILevel = "strong"
)

// Provenance is the canonical producer/creator record. Both fields are
// lower-cased and trimmed exactly once, before any classification.
type Provenance struct {
	Producer string
	Creator  string
}

// NewProvenance normalizes the raw metadata strings into a Provenance.
func NewProvenance(producer, creator string) Provenance {
	return Provenance{
		Producer: strings.ToLower(strings.TrimSpace(producer)),
		Creator:  strings.ToLower(strings.TrimSpace(creator)),
	}
}

func (p Provenance) empty() bool {
	return p.Producer == "" && p.Creator == ""
}

func (p Provenance) combined() string {
	return strings.TrimSpace(p.Producer + " " + p.Creator)
}

// editorTools are office suites, design tools and third-party PDF editors.
// A genuine statement has no business being produced by any of these.
var editorTools = []string{
	"microsoft word",
	"microsoft® word",
	"word for microsoft",
	"microsoft excel",
	"microsoft® excel",
	"microsoft powerpoint",
	"libreoffice",
	"openoffice",
	"wps office",
	"photoshop",
	"illustrator",
	"indesign",
	"affinity",
	"canva",
	"ilovepdf",
	"sejda",
	"smallpdf",
	"pdfescape",
	"pdfelement",
	"foxit",
	"nitro",
	"pdf-xchange",
	"pdfsam",
}

// genericTools are PDF printers, scanner software and cloud document tools:
// plausible for a statement but slightly unusual.
var genericTools = []string{
	"print to pdf",
	"pdfcreator",
	"pdf creator",
	"cutepdf",
	"dopdf",
	"primopdf",
	"google docs",
	"google drive",
	"scansnap",
	"naps2",
	"scanner",
	"epson scan",
	"hp scan",
}

// systemProducers are OS frameworks, browser renderers and the PDF
// libraries banks actually render statements with.
var systemProducers = []string{
	"quartz",
	"mac os x",
	"macos",
	"skia",
	"chromium",
	"chrome",
	"firefox",
	"mozilla",
	"cairo",
	"itext",
	"pdfbox",
	"apache fop",
	"streamserve",
	"exstream",
	"opentext",
	"xenos",
	"ghostscript",
}

// aiGenerators are headless renderers, HTML-to-PDF converters and
// generative services that fabricated documents tend to be built with.
var aiGenerators = []string{
	"headlesschrome",
	"headless chrome",
	"puppeteer",
	"playwright",
	"wkhtmltopdf",
	"weasyprint",
	"princexml",
	"pdfkit",
	"jspdf",
	"reportlab",
	"chatgpt",
	"openai",
	"anthropic",
	"claude",
	"gemini",
}

// provenanceVerdict is the integrity check's contribution to the report.
type provenanceVerdict struct {
	tier       IntegrityTier
	delta      float64
	strongEdit bool
	message    string
}

// classifyProvenance buckets the metadata into a risk tier. Matching is
// substring-based against the fixed lists, checked in priority order:
// editors first, then generic tools, then known system producers.
func classifyProvenance(p Provenance) provenanceVerdict {
	if p.empty() {
		return provenanceVerdict{
			tier:    TierEmpty,
			delta:   -penaltyEmptyMetadata,
			message: "No producer or creator metadata present; common for automated statement exports.",
		}
	}

	text := p.combined()
	if tool := firstMatch(text, editorTools); tool != "" {
		return provenanceVerdict{
			tier:       TierEditor,
			delta:      -penaltyEditorTool,
			strongEdit: true,
			message:    fmt.Sprintf("Document metadata names an editing tool (%q); genuine statements are not produced by editors.", tool),
		}
	}
	if tool := firstMatch(text, genericTools); tool != "" {
		return provenanceVerdict{
			tier:    TierGenericTool,
			delta:   -penaltyGenericTool,
			message: fmt.Sprintf("Document was produced by a generic tool (%q) rather than a bank's own renderer.", tool),
		}
	}
	if tool := firstMatch(text, systemProducers); tool != "" {
		return provenanceVerdict{
			tier:    TierSystem,
			message: fmt.Sprintf("Producer metadata (%q) matches a system or bank-grade renderer.", tool),
		}
	}
	return provenanceVerdict{
		tier:    TierUnrecognized,
		delta:   -penaltyUnknownTool,
		message: "Producer/creator metadata does not match any known tool.",
	}
}

// classifyAISignals grades AI-generation likelihood independently of the
// integrity tier; its penalty stacks on top.
func classifyAISignals(p Provenance) (AILevel, []string) {
	text := p.combined()
	if tool := firstMatch(text, aiGenerators); tool != "" {
		return AIStrong, []string{fmt.Sprintf(
			"Metadata references a document-generation tool or AI service (%q).", tool)}
	}
	if p.empty() {
		return AIPossible, []string{
			"Metadata is completely empty, which some generated documents share with legitimate exports."}
	}
	if strings.Contains(text, "generator") {
		return AIPossible, []string{"Metadata carries a generic 'generator' marker."}
	}
	return AINone, nil
}

func firstMatch(text string, needles []string) string {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return needle
		}
	}
	return ""
}
