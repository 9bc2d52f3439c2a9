package scanning

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const jpegQuality = 90

// expensePrompt is the shared prompt every extraction backend sends with
// the document image.
const expensePrompt = `You are reading a supplier invoice or purchase receipt. Carefully read all text in the image and extract:

1. **Vendor**: the supplier, merchant or business name, usually the most prominent text near the top.

2. **Date**: the invoice or purchase date, converted to ISO 8601 (YYYY-MM-DD) where possible.

3. **Total**: the final total or amount due, exactly as printed including any currency symbol (e.g. "£45.00").

4. **Line items**: every line of the itemized section with its description, quantity, unit price and line amount, each money value exactly as printed.

Return ONLY valid JSON in this exact format:
{
  "vendor": "Supplier Name",
  "date": "YYYY-MM-DD",
  "total": "£0.00",
  "items": [
    {"description": "item", "quantity": "1", "unit_price": "0.00", "amount": "0.00"}
  ]
}

Important:
- Money values must be strings copied from the document, symbols included
- Use null for any field you cannot find
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// renderPDF renders the first page of a PDF to JPEG bytes. Receipts and
// invoices are overwhelmingly single page.
func renderPDF(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return encodeJPEG(img)
}

// decodeImage decodes any supported upload into an image.Image. HEIC/HEIF
// (common on iPhones) needs the dedicated decoder; everything else goes
// through the registered stdlib decoders.
func decodeImage(data []byte, mimeType string) (image.Image, error) {
	if isHEIC(data) || isHEICMimeType(mimeType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// prepareDocument normalizes any supported upload into JPEG bytes for the
// extraction backends: PDFs are rendered, images re-encoded.
func prepareDocument(data []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))

	if mimeType == "application/pdf" {
		jpegData, err := renderPDF(data)
		if err != nil {
			return nil, fmt.Errorf("converting PDF: %w", err)
		}
		return jpegData, nil
	}

	img, err := decodeImage(data, mimeType)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

// isHEIC sniffs the ftyp box brands HEIC/HEIF containers start with.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
