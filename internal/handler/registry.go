package handler

import (
	"fmt"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// Key is a capability key: the pair a handler is bound to.
type Key struct {
	Input  content.InputType
	Option content.Option
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Input, k.Option)
}

// Binding attaches a handler to a key.
type Binding struct {
	Key     Key
	Handler Handler
}

// Registry is a static lookup table from capability keys to handlers.
// It is read-only after NewRegistry returns.
type Registry struct {
	table map[Key]Handler
}

// NewRegistry validates bindings and builds the table. Unknown enum values,
// nil handlers and duplicate keys are rejected.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	table := make(map[Key]Handler, len(bindings))
	for _, b := range bindings {
		if !b.Key.Input.Valid() {
			return nil, fmt.Errorf("binding %s: unknown input type", b.Key)
		}
		if !b.Key.Option.Valid() {
			return nil, fmt.Errorf("binding %s: unknown option", b.Key)
		}
		if b.Handler == nil {
			return nil, fmt.Errorf("binding %s: handler must not be nil", b.Key)
		}
		if _, dup := table[b.Key]; dup {
			return nil, fmt.Errorf("binding %s: duplicate key", b.Key)
		}
		table[b.Key] = b.Handler
	}
	return &Registry{table: table}, nil
}

// Resolve returns the handler bound to (option, input).
func (r *Registry) Resolve(option content.Option, input content.InputType) (Handler, error) {
	h, ok := r.table[Key{Input: input, Option: option}]
	if !ok {
		return nil, content.Errorf(content.KindUnsupportedCombination,
			"no handler found for option '%s' with input type '%s'", option, input)
	}
	return h, nil
}

// SupportedOptions lists the options bound for input in declaration order.
func (r *Registry) SupportedOptions(input content.InputType) []content.Option {
	out := make([]content.Option, 0, len(content.Options))
	for _, o := range content.Options {
		if _, ok := r.table[Key{Input: input, Option: o}]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Set groups one instance of every handler kind.
type Set struct {
	Summarize   Handler
	Translate   Handler
	Sentiment   Handler
	Keywords    Handler
	Topics      Handler
	PDF         Handler
	ExtractText Handler
}

// DefaultBindings returns the standard capability table. Text and links
// support every text transformation; images additionally expose their OCR
// text. Object detection and image classification stay unbound.
func DefaultBindings(s Set) []Binding {
	textOps := []struct {
		option  content.Option
		handler Handler
	}{
		{content.OptionSummarize, s.Summarize},
		{content.OptionTranslate, s.Translate},
		{content.OptionSentiment, s.Sentiment},
		{content.OptionKeywords, s.Keywords},
		{content.OptionTopics, s.Topics},
		{content.OptionPDF, s.PDF},
	}
	var out []Binding
	for _, in := range content.InputTypes {
		for _, op := range textOps {
			out = append(out, Binding{Key: Key{Input: in, Option: op.option}, Handler: op.handler})
		}
	}
	out = append(out, Binding{Key: Key{Input: content.InputImage, Option: content.OptionExtractText}, Handler: s.ExtractText})
	return out
}
