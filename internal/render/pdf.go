// Package render lays out titled text documents as PDF.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDF renders an A4 portrait document: a centered bold title followed by
// justified body paragraphs. Text is converted from UTF-8 to the cp1252
// encoding of the core fonts; runes outside it are dropped by the
// translator.
type PDF struct {
	// Font family of the core fonts, e.g. "Helvetica". Empty means Helvetica.
	Font string
}

// Render implements handler.Renderer.
func (r PDF) Render(ctx context.Context, title string, paragraphs []string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	font := r.Font
	if font == "" {
		font = "Helvetica"
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(title, true)
	pdf.SetCreator("blogdigest", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title
	pdf.SetFont(font, "B", 24)
	pdf.SetTextColor(0x06, 0x5F, 0x46)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.Ln(6)

	// Body
	pdf.SetFont(font, "", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, p := range paragraphs {
		pdf.MultiCell(0, 6, tr(p), "", "J", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
