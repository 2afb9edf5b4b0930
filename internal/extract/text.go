package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

// Text extracts pasted text. It performs no I/O.
type Text struct{}

func (Text) Extract(_ context.Context, ref content.Reference) (*content.ExtractionResult, error) {
	raw := strings.TrimSpace(ref.Value)
	if raw == "" {
		return nil, content.Errorf(content.KindEmptyInput, "text input is empty")
	}
	text := preprocess.Text(raw)
	return &content.ExtractionResult{
		Source:  "direct_input",
		RawText: raw,
		Text:    text,
		Metadata: content.Metadata{Text: &content.TextMetadata{
			WordCount: preprocess.WordCount(text),
			CharCount: utf8.RuneCountInString(text),
		}},
	}, nil
}
