package handler

import (
	"context"
	"unicode/utf8"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

// ExtractText returns recognized text as is, with image details.
type ExtractText struct{}

func (ExtractText) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "text extraction")
	if err != nil {
		return nil, err
	}
	return &content.Result{
		Option: content.OptionExtractText,
		Title:  "Extracted Text",
		Icon:   "image",
		ExtractedText: &content.ExtractedText{
			Text:      text,
			WordCount: preprocess.WordCount(text),
			CharCount: utf8.RuneCountInString(text),
			Image:     ex.Metadata.Image,
		},
	}, nil
}
