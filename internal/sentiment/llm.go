package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/budget"
	"github.com/hyperifyio/blogdigest/internal/llm"
)

// SystemPrompt asks for a strict JSON verdict.
const SystemPrompt = "You are a sentiment analysis engine. Respond with strict JSON only, no narration. The JSON schema is {\"polarity\": number in [-1,1], \"subjectivity\": number in [0,1]}. Polarity is -1 for entirely negative text and 1 for entirely positive text. Subjectivity is 0 for purely factual text and 1 for purely opinionated text."

// reservedOutputTokens leaves room for the JSON verdict.
const reservedOutputTokens = 64

// LLM scores sentiment with an OpenAI-compatible chat model. When the model
// call or its answer fails and Fallback is set, the fallback scores instead.
type LLM struct {
	Client   llm.Client
	Model    string
	Fallback Scorer
}

func (s *LLM) Score(ctx context.Context, text string) (Score, error) {
	score, err := s.ask(ctx, text)
	if err == nil {
		return score, nil
	}
	if s.Fallback == nil {
		return Score{}, err
	}
	log.Warn().Err(err).Msg("llm sentiment failed; using fallback scorer")
	return s.Fallback.Score(ctx, text)
}

func (s *LLM) ask(ctx context.Context, text string) (Score, error) {
	text = budget.FitText(s.Model, SystemPrompt, text, reservedOutputTokens)
	raw, err := llm.Complete(ctx, s.Client, s.Model, SystemPrompt, text, 0)
	if err != nil {
		return Score{}, fmt.Errorf("sentiment call: %w", err)
	}
	var out struct {
		Polarity     *float64 `json:"polarity"`
		Subjectivity *float64 `json:"subjectivity"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &out); err != nil {
		return Score{}, fmt.Errorf("parse sentiment json: %w", err)
	}
	if out.Polarity == nil || out.Subjectivity == nil {
		return Score{}, errors.New("sentiment json missing fields")
	}
	return Score{
		Polarity:     clamp(*out.Polarity, -1, 1),
		Subjectivity: clamp(*out.Subjectivity, 0, 1),
	}, nil
}
