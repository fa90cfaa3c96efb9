package cert

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF lays out the certificate on a landscape A4 page. Pure
// formatting: no business logic beyond placing the fields.
func RenderPDF(c Certificate) ([]byte, error) {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()
	w, h := doc.GetPageSize()

	// Double border
	doc.SetLineWidth(0.5)
	doc.Rect(10, 10, w-20, h-20, "D")
	doc.SetLineWidth(0.2)
	doc.Rect(12, 12, w-24, h-24, "D")

	centered := func(size float64, style, text string, y float64) {
		doc.SetFont("Helvetica", style, size)
		doc.SetXY(0, y)
		doc.CellFormat(w, 10, text, "", 0, "C", false, 0, "")
	}

	centered(30, "B", "CERTIFICATE OF ACHIEVEMENT", 32)
	doc.SetLineWidth(0.2)
	doc.Line(w/2-80, 45, w/2+80, 45)

	centered(16, "", "This is to certify that", 62)
	centered(24, "B", c.UserName, 77)
	centered(16, "", "has successfully completed", 92)
	centered(20, "B", c.ExamTitle, 107)
	centered(16, "", fmt.Sprintf("with a score of %d%%", c.Score), 122)
	centered(14, "", "Issued on: "+c.IssueDate.Format("1/2/2006"), 142)
	centered(10, "", "Certificate ID: "+c.ID, 152)
	centered(10, "", "This certificate is only valid when presented with proper identification.", 162)

	doc.Line(w/2-40, 185, w/2+40, 185)
	centered(10, "", "Authorized Signature", 186)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
