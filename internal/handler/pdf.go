package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// Renderer lays out a titled sequence of paragraphs as a document.
type Renderer interface {
	Render(ctx context.Context, title string, paragraphs []string) ([]byte, error)
}

const (
	defaultDocumentTitle = "Document"
	paragraphsPerPage    = 10
)

// PDF renders the text as a downloadable document.
type PDF struct {
	Renderer Renderer
}

func (h PDF) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "PDF generation")
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(ex.Metadata.Title())
	if title == "" {
		title = defaultDocumentTitle
	}
	paragraphs := Paragraphs(text)

	data, err := h.Renderer.Render(ctx, title, paragraphs)
	if err != nil {
		return nil, content.Wrap(content.KindRender, err, "render %q", title)
	}
	return &content.Result{
		Option: content.OptionPDF,
		Title:  "PDF",
		Icon:   "file",
		PDF: &content.PDF{
			Filename: strings.ReplaceAll(title, " ", "_") + ".pdf",
			Size:     fmt.Sprintf("%.2f KB", float64(len(data))/1024),
			Bytes:    len(data),
			Pages:    len(paragraphs)/paragraphsPerPage + 1,
			Base64:   base64.StdEncoding.EncodeToString(data),
			Message:  "PDF generated successfully",
			Data:     data,
		},
	}, nil
}

// Paragraphs splits text on blank lines, dropping empty blocks.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
