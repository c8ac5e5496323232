package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"offer-service/internal/domain/document"

	"github.com/go-pdf/fpdf"
)

const complianceNotice = "LEGAL COMPLIANCE NOTICE: This document has been electronically signed " +
	"in accordance with applicable electronic signature law. This electronic " +
	"signature is legally valid and enforceable."

// PDFRenderer implements document.Renderer. Offer content that parses as a
// JSON object is laid out field by field; anything else is printed verbatim.
type PDFRenderer struct {
	CompanyName    string
	CompanyAddress string
}

func NewPDFRenderer(companyName, companyAddress string) *PDFRenderer {
	return &PDFRenderer{CompanyName: companyName, CompanyAddress: companyAddress}
}

func (r *PDFRenderer) Render(_ context.Context, content string, stamp *document.SignatureStamp) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, r.CompanyAddress, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Offer Letter", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range contentLines(content) {
		pdf.MultiCell(0, 5.5, line, "", "L", false)
	}

	if stamp != nil {
		r.stampSignature(pdf, stamp)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) stampSignature(pdf *fpdf.Fpdf, stamp *document.SignatureStamp) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Electronic Signature", "T", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Signature type", stamp.Type},
		{"Signed at", stamp.SignedAt.UTC().Format(time.RFC3339)},
		{"Signer IP", stamp.SignerIP},
		{"Document hash (SHA-256)", stamp.DocHash},
	}
	if stamp.Type == "TYPED" {
		rows = append(rows, [2]string{"Signed as", stamp.Payload})
	}
	for _, row := range rows {
		pdf.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, row[1], "", "L", false)
	}

	if stamp.ConsentText != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, stamp.ConsentText, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4.5, complianceNotice, "", "L", false)
}

// contentLines flattens a JSON-object body into "key: value" lines with
// stable ordering; non-JSON content comes back as-is.
func contentLines(content string) []string {
	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil || len(fields) == 0 {
		return []string{content}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return lines
}
