// Package pipeline wires extraction and handler dispatch into a single
// request-scoped operation.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/extract"
	"github.com/hyperifyio/blogdigest/internal/handler"
)

// Request is one unit of work: a source, what kind of source it is, and the
// transformation to apply.
type Request struct {
	InputType      content.InputType
	Option         content.Option
	Reference      content.Reference
	TargetLanguage string
}

// Pipeline extracts text from a reference and hands it to the handler bound
// to the request's capability key.
type Pipeline struct {
	extractors map[content.InputType]extract.Extractor
	registry   *handler.Registry
}

// New builds a pipeline. Every declared input type needs an extractor.
func New(extractors map[content.InputType]extract.Extractor, registry *handler.Registry) (*Pipeline, error) {
	if registry == nil {
		return nil, fmt.Errorf("pipeline: registry is required")
	}
	for _, t := range content.InputTypes {
		if extractors[t] == nil {
			return nil, fmt.Errorf("pipeline: no extractor for input type %q", t)
		}
	}
	return &Pipeline{extractors: extractors, registry: registry}, nil
}

// Process runs one request. The handler is resolved before anything is
// extracted so unsupported combinations fail without touching the source.
func (p *Pipeline) Process(ctx context.Context, req Request) (*content.Result, error) {
	start := time.Now()
	logger := log.With().Str("input_type", string(req.InputType)).Str("option", string(req.Option)).Logger()

	if !req.InputType.Valid() {
		return nil, content.Errorf(content.KindUnsupportedCombination, "invalid input type: %s", req.InputType)
	}
	h, err := p.registry.Resolve(req.Option, req.InputType)
	if err != nil {
		logger.Debug().Err(err).Msg("no handler")
		return nil, err
	}

	ex, err := p.extractors[req.InputType].Extract(ctx, req.Reference)
	if err != nil {
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("extraction failed")
		return nil, err
	}
	logger.Debug().Str("source", ex.Source).Int("chars", len(ex.Text)).Msg("extracted")

	res, err := h.Process(ctx, ex, handler.Params{TargetLanguage: req.TargetLanguage})
	if err != nil {
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("processing failed")
		return nil, err
	}
	logger.Info().Dur("duration", time.Since(start)).Msg("processed")
	return res, nil
}

// SupportedOptions lists the options available for an input type.
func (p *Pipeline) SupportedOptions(t content.InputType) []content.Option {
	return p.registry.SupportedOptions(t)
}
