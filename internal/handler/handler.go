// Package handler implements the content transformations and the registry
// that binds each (input type, option) pair to one of them.
package handler

import (
	"context"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// Handler turns an extraction result into a structured result.
// Implementations are stateless and safe for concurrent use.
type Handler interface {
	Process(ctx context.Context, ex *content.ExtractionResult, p Params) (*content.Result, error)
}

// Params carries per-request knobs that only some handlers read.
type Params struct {
	// TargetLanguage is a language name ("french") or code ("fr").
	TargetLanguage string
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, ex *content.ExtractionResult, p Params) (*content.Result, error)

func (f HandlerFunc) Process(ctx context.Context, ex *content.ExtractionResult, p Params) (*content.Result, error) {
	return f(ctx, ex, p)
}

// textOf returns the text a handler should work on or a no-content error.
func textOf(ex *content.ExtractionResult, op string) (string, error) {
	if ex == nil || strings.TrimSpace(ex.Text) == "" {
		return "", content.Errorf(content.KindNoContent, "no text available for %s", op)
	}
	return ex.Text, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// capitalize upper-cases the first letter and lower-cases the rest.
// Casers are stateful, so one is built per call.
func capitalize(s string) string {
	return cases.Title(language.English).String(s)
}
