package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/blogdigest/internal/llm"
	"github.com/hyperifyio/blogdigest/internal/sentiment"
	"github.com/hyperifyio/blogdigest/internal/translate"
)

func newClient(t *testing.T) *llm.OpenAIProvider {
	t.Helper()
	ts := httptest.NewServer(newMux("stub"))
	t.Cleanup(ts.Close)
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = ts.URL + "/v1"
	return &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func TestStub_Translate(t *testing.T) {
	tr := &translate.LLM{Client: newClient(t), Model: "stub"}
	out, err := tr.Translate(context.Background(), "Hello world.", "auto", "fr")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "[fr] Hello world." {
		t.Fatalf("unexpected translation %q", out)
	}
}

func TestStub_Sentiment(t *testing.T) {
	s := &sentiment.LLM{Client: newClient(t), Model: "stub"}
	score, err := s.Score(context.Background(), "A great and good day.")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score.Polarity <= 0 {
		t.Fatalf("expected positive polarity, got %v", score.Polarity)
	}
}

func TestStub_ListModels(t *testing.T) {
	models, err := newClient(t).ListModels(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(models.Models) != 1 || models.Models[0].ID != "stub" {
		t.Fatalf("unexpected models %+v", models.Models)
	}
}

func TestAnswer_UnknownSystem(t *testing.T) {
	if _, ok := answer("You are a poet.", "x"); ok {
		t.Fatalf("expected unknown system prompt to be rejected")
	}
}

func TestStub_ChatCompletionWireShape(t *testing.T) {
	ts := httptest.NewServer(newMux("stub"))
	defer ts.Close()
	body, _ := json.Marshal(openai.ChatCompletionRequest{
		Model:    "stub",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translate.SystemMessage("auto", "de")},
			{Role: openai.ChatMessageRoleUser, Content: "Hi."},
		},
	})
	resp, err := http.Post(ts.URL+"/v1/chat/completions", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out openai.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Model != "stub" || len(out.Choices) != 1 {
		t.Fatalf("unexpected response %+v", out)
	}
	msg := out.Choices[0].Message
	if msg.Role != openai.ChatMessageRoleAssistant || msg.Content != "[de] Hi." {
		t.Fatalf("unexpected message %+v", msg)
	}
	if out.Choices[0].FinishReason != openai.FinishReasonStop {
		t.Fatalf("expected stop finish reason, got %q", out.Choices[0].FinishReason)
	}
}

func TestStub_RejectsMalformedRequest(t *testing.T) {
	ts := httptest.NewServer(newMux("stub"))
	defer ts.Close()
	resp, err := http.Post(ts.URL+"/v1/chat/completions", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
