package sentiment

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestLexicon_PositiveNegativeNeutral(t *testing.T) {
	ctx := context.Background()
	pos, _ := Lexicon{}.Score(ctx, "This is a great and wonderful library.")
	if pos.Polarity <= 0.1 {
		t.Fatalf("expected positive polarity, got %v", pos.Polarity)
	}
	neg, _ := Lexicon{}.Score(ctx, "The release was terrible and the docs are awful.")
	if neg.Polarity >= -0.1 {
		t.Fatalf("expected negative polarity, got %v", neg.Polarity)
	}
	neutral, _ := Lexicon{}.Score(ctx, "The meeting is scheduled for Tuesday at noon.")
	if neutral != (Score{}) {
		t.Fatalf("expected zero score for text without opinion words, got %+v", neutral)
	}
}

func TestLexicon_NegationFlips(t *testing.T) {
	s, _ := Lexicon{}.Score(context.Background(), "not good")
	if s.Polarity >= 0 {
		t.Fatalf("expected negated polarity to be negative, got %v", s.Polarity)
	}
}

func TestLexicon_Bounds(t *testing.T) {
	s, _ := Lexicon{}.Score(context.Background(), "extremely very really excellent")
	if s.Polarity > 1 || s.Subjectivity > 1 {
		t.Fatalf("expected clamped scores, got %+v", s)
	}
}

type stubClient struct {
	content string
	err     error
}

func (c stubClient) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: c.content}}}}, nil
}

func TestLLM_ParsesJSON(t *testing.T) {
	s := &LLM{Client: stubClient{content: "```json\n{\"polarity\": 0.6, \"subjectivity\": 1.4}\n```"}, Model: "m"}
	got, err := s.Score(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Polarity != 0.6 || got.Subjectivity != 1 {
		t.Fatalf("unexpected score %+v", got)
	}
}

func TestLLM_FallbackOnError(t *testing.T) {
	s := &LLM{Client: stubClient{err: errors.New("unreachable")}, Model: "m", Fallback: Lexicon{}}
	got, err := s.Score(context.Background(), "a great day")
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if got.Polarity <= 0 {
		t.Fatalf("expected lexicon polarity, got %+v", got)
	}
}

func TestLLM_ErrorWithoutFallback(t *testing.T) {
	s := &LLM{Client: stubClient{content: "not json"}, Model: "m"}
	if _, err := s.Score(context.Background(), "x"); err == nil {
		t.Fatalf("expected parse error")
	}
}
