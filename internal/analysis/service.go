// Package analysis wires the two document pipelines behind one HTTP
// surface: expense extraction for receipts/invoices and the authenticity
// checks for bank-statement PDFs.
package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finproof/finproof/internal/pdfdoc"
	"github.com/finproof/finproof/internal/scanning"
	"github.com/finproof/finproof/internal/statement"
)

// DocumentReader turns raw PDF bytes into the analyzer's document view.
type DocumentReader func(data []byte) (*statement.Document, error)

// IDGenerator produces the per-request analysis IDs.
type IDGenerator interface {
	Generate() string
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// ExpenseResult is the response body for the expense extraction endpoints.
type ExpenseResult struct {
	ID         string              `json:"id"`
	Filename   string              `json:"filename"`
	InputType  string              `json:"input_type"` // "pdf" or "image/jpeg"
	Vendor     string              `json:"vendor,omitempty"`
	Total      *float64            `json:"total"`
	Currency   string              `json:"currency,omitempty"`
	Date       string              `json:"date,omitempty"`
	Items      []scanning.LineItem `json:"items"`
	ItemsCount int                 `json:"items_count"`
}

// StatementResult is the response body for the statement check endpoint.
type StatementResult struct {
	ID string `json:"id"`
	statement.Report
}

// Service runs both analysis pipelines. It holds no per-request state.
type Service struct {
	extractor   scanning.Extractor
	readPDF     DocumentReader
	idGenerator IDGenerator
}

// NewService creates a Service backed by the real PDF reader.
func NewService(extractor scanning.Extractor) *Service {
	return NewServiceWithDeps(extractor, pdfdoc.Read, &uuidGenerator{})
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(extractor scanning.Extractor, readPDF DocumentReader, idGen IDGenerator) *Service {
	return &Service{
		extractor:   extractor,
		readPDF:     readPDF,
		idGenerator: idGen,
	}
}

// AnalyzeExpense normalizes the upload and delegates field extraction to
// the external service, returning its response mapped onto ExpenseResult.
func (s *Service) AnalyzeExpense(filename string, data []byte, contentType string) (*ExpenseResult, error) {
	expense, err := s.extractor.ExtractExpense(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("extracting expense fields: %w", err)
	}

	inputType := "image/jpeg"
	if strings.EqualFold(contentType, "application/pdf") {
		inputType = "pdf"
	}

	items := expense.Items
	if items == nil {
		items = []scanning.LineItem{}
	}
	return &ExpenseResult{
		ID:         s.idGenerator.Generate(),
		Filename:   filename,
		InputType:  inputType,
		Vendor:     expense.Vendor,
		Total:      expense.Total,
		Currency:   expense.Currency,
		Date:       expense.Date,
		Items:      items,
		ItemsCount: len(items),
	}, nil
}

// CheckStatement reads the PDF and runs the authenticity analyzer over it.
func (s *Service) CheckStatement(data []byte) (*StatementResult, error) {
	doc, err := s.readPDF(data)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	report, err := statement.Analyze(doc)
	if err != nil {
		return nil, fmt.Errorf("analyzing statement: %w", err)
	}

	return &StatementResult{
		ID:     s.idGenerator.Generate(),
		Report: *report,
	}, nil
}
