package handler

import (
	"context"
	"fmt"
	"math"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/sentiment"
)

// Sentiment maps polarity and subjectivity scores to a labelled breakdown.
type Sentiment struct {
	Scorer sentiment.Scorer
}

func (s Sentiment) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "sentiment analysis")
	if err != nil {
		return nil, err
	}
	score, err := s.Scorer.Score(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("score sentiment: %w", err)
	}
	return &content.Result{
		Option:    content.OptionSentiment,
		Title:     "Sentiment",
		Icon:      "smile",
		Sentiment: describeSentiment(score),
	}, nil
}

func describeSentiment(s sentiment.Score) *content.Sentiment {
	p := clamp(s.Polarity, -1, 1)
	subj := clamp(s.Subjectivity, 0, 1)

	overall := "Neutral"
	switch {
	case p > 0.1:
		overall = "Positive"
	case p < -0.1:
		overall = "Negative"
	}

	positive := int(math.Round(100 * math.Max(p, 0)))
	negative := int(math.Round(100 * math.Max(-p, 0)))

	return &content.Sentiment{
		Overall:      overall,
		Score:        int(math.Round((p + 1) * 50)),
		Polarity:     round2(p),
		Subjectivity: round2(subj),
		Breakdown: content.Breakdown{
			Positive: positive,
			Negative: negative,
			Neutral:  100 - positive - negative,
		},
		Insights: []string{polarityInsight(p), subjectivityInsight(subj)},
	}
}

func polarityInsight(p float64) string {
	switch {
	case p > 0.5:
		return "The content expresses strong positive emotions."
	case p > 0.1:
		return "The content maintains a generally positive tone."
	case p < -0.5:
		return "The content expresses strong negative emotions."
	case p < -0.1:
		return "The content has a somewhat negative tone."
	}
	return "The content maintains a neutral, balanced tone."
}

func subjectivityInsight(s float64) string {
	switch {
	case s > 0.7:
		return "The text is highly subjective with many opinions."
	case s > 0.4:
		return "The text contains a mix of facts and opinions."
	}
	return "The text is mostly objective and factual."
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Min(math.Max(x, lo), hi)
}
