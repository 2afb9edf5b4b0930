// Package translate implements text translation on top of an
// OpenAI-compatible chat model.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/cache"
	"github.com/hyperifyio/blogdigest/internal/llm"
)

// ErrEmptyTranslation indicates the model returned no text.
var ErrEmptyTranslation = errors.New("empty translation")

// LLM translates chunks with a chat model. It is safe for concurrent use.
type LLM struct {
	Client llm.Client
	Model  string
	// Timeout bounds a single chunk request. Zero means no extra bound.
	Timeout time.Duration
	// SystemPrompt overrides the default instruction when non-empty.
	SystemPrompt string
	// Cache, when set, memoizes translated chunks.
	Cache *cache.LLMCache
}

// Translate implements handler.Translator. Source "auto" or empty lets the
// model detect the source language.
func (t *LLM) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	system := t.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = SystemMessage(source, target)
	}
	key := cache.KeyFrom(t.Model, system, text)
	if out, ok := t.Cache.Get(key); ok {
		return out, nil
	}
	start := time.Now()
	out, err := llm.Complete(ctx, t.Client, t.Model, system, text, 0)
	if err != nil {
		return "", fmt.Errorf("translate chunk: %w", err)
	}
	if out == "" {
		return "", ErrEmptyTranslation
	}
	t.Cache.Save(key, out)
	log.Debug().Str("target", target).Int("chars", len(text)).Dur("took", time.Since(start)).Msg("chunk translated")
	return out, nil
}

// SystemMessage is the default instruction for translating from source
// ("auto" detects) into the target language code.
func SystemMessage(source, target string) string {
	from := "the source language (detect it)"
	if s := strings.TrimSpace(source); s != "" && !strings.EqualFold(s, "auto") {
		from = "language code " + s
	}
	return fmt.Sprintf("You are a translation engine. Translate the user's text from %s into language code %s. Preserve meaning, tone, paragraph breaks and proper nouns. Respond with the translation only, no notes or quotes.", from, target)
}
