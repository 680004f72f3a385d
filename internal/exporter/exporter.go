package exporter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	Filename = "generated_content.pdf"
	MIMEType = "application/pdf"

	titleFontSize = 16
	bodyFontSize  = 12
	titleX        = 100
	titleBaseline = 750 // measured from the bottom edge
	bodyX         = 50
	bodyBaseline  = 700 // measured from the bottom edge
	lineAdvance   = 20
)

// Document is a rendered export held in memory.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ExportError reports a rendering failure. No document accompanies it.
type ExportError struct {
	Label string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s content: %v", e.Label, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// Export renders a single Letter page: a "<label> Content" title followed by
// one body line per source line. Long lines are not wrapped and lines past the
// bottom margin are not moved to a new page.
func (e *Exporter) Export(text, label string) (*Document, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", titleFontSize)
	pdf.Text(titleX, pageHeight-titleBaseline, tr(label+" Content"))

	pdf.SetFont("Helvetica", "", bodyFontSize)
	y := float64(bodyBaseline)
	for _, line := range strings.Split(text, "\n") {
		pdf.Text(bodyX, pageHeight-y, tr(strings.TrimRight(line, "\r")))
		y -= lineAdvance
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Label: label, Err: err}
	}

	return &Document{Filename: Filename, MIMEType: MIMEType, Data: buf.Bytes()}, nil
}
