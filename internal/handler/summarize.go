package handler

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

// DefaultSummarySentences is the number of leading sentences kept.
const DefaultSummarySentences = 3

// Summarize produces an extractive summary from the leading sentences.
type Summarize struct {
	// Sentences to keep. Zero means DefaultSummarySentences.
	Sentences int
}

func (s Summarize) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "summarization")
	if err != nil {
		return nil, err
	}
	n := s.Sentences
	if n <= 0 {
		n = DefaultSummarySentences
	}
	log.Debug().Int("sentences", n).Msg("generating summary")

	sentences := strings.Split(text, ". ")
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	summary := strings.Join(sentences, ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}

	orig := preprocess.WordCount(text)
	words := preprocess.WordCount(summary)
	return &content.Result{
		Option: content.OptionSummarize,
		Title:  "Summary",
		Icon:   "file-text",
		Summary: &content.Summary{
			Summary:          summary,
			OriginalLength:   orig,
			SummaryLength:    words,
			CompressionRatio: round2(float64(words) / float64(orig)),
		},
	}, nil
}
