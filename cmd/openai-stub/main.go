// Command openai-stub serves a deterministic OpenAI-compatible API for
// local runs and end-to-end tests of the translation and sentiment paths.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

var targetCode = regexp.MustCompile(`into language code ([A-Za-z-]+)`)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	log.Info().Str("addr", addr).Str("model", model).Msg("openai-stub listening")
	if err := http.ListenAndServe(addr, newMux(model)); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func newMux(model string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, openai.ModelsList{Models: []openai.Model{{ID: model, Object: "model", OwnedBy: "openai-stub"}}})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		var sys, user string
		for _, m := range req.Messages {
			switch m.Role {
			case openai.ChatMessageRoleSystem:
				sys = strings.TrimSpace(m.Content)
			case openai.ChatMessageRoleUser:
				user = m.Content
			}
		}
		content, ok := answer(sys, user)
		if !ok {
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		writeJSON(w, openai.ChatCompletionResponse{
			Object:  "chat.completion",
			Created: time.Now().Unix(),
			Model:   req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

// answer returns the canned reply for a system prompt.
func answer(sys, user string) (string, bool) {
	switch {
	case strings.Contains(sys, "sentiment analysis engine"):
		polarity := 0.0
		lower := strings.ToLower(user)
		if strings.Contains(lower, "good") || strings.Contains(lower, "great") {
			polarity = 0.6
		} else if strings.Contains(lower, "bad") || strings.Contains(lower, "terrible") {
			polarity = -0.6
		}
		b, _ := json.Marshal(map[string]float64{"polarity": polarity, "subjectivity": 0.5})
		return "```json\n" + string(b) + "\n```", true
	case strings.Contains(sys, "translation engine"):
		code := "xx"
		if m := targetCode.FindStringSubmatch(sys); m != nil {
			code = strings.ToLower(m[1])
		}
		return "[" + code + "] " + strings.TrimSpace(user), true
	default:
		return "", false
	}
}
