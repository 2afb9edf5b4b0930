package handler

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/hyperifyio/blogdigest/internal/chunk"
	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

// Translator translates one chunk of text. Source may be "auto".
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

const (
	DefaultTargetLanguage    = "es"
	DefaultTranslateParallel = 4
	autoSource               = "auto"
)

// languageCodes maps the language names offered to users to the codes the
// translation backend expects.
var languageCodes = map[string]string{
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"russian":    "ru",
	"chinese":    "zh-CN",
	"japanese":   "ja",
	"korean":     "ko",
	"arabic":     "ar",
}

// ResolveLanguage turns a language name or code into a backend code and an
// English display name. Unknown or empty input selects DefaultTargetLanguage.
func ResolveLanguage(s string) (code, name string) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := languageCodes[key]; ok {
		return c, capitalize(key)
	}
	if key != "" {
		if tag, err := language.Parse(key); err == nil {
			if n := display.English.Languages().Name(tag); n != "" {
				return tag.String(), n
			}
		}
	}
	return DefaultTargetLanguage, "Spanish"
}

// Translate splits text into sentence-aligned chunks, translates them
// concurrently and reassembles them in order.
type Translate struct {
	Service Translator
	// ChunkSize is the per-request character budget. Zero means chunk.DefaultMaxSize.
	ChunkSize int
	// Concurrency bounds in-flight chunk requests. Zero means DefaultTranslateParallel.
	Concurrency int
}

func (t Translate) Process(ctx context.Context, ex *content.ExtractionResult, p Params) (*content.Result, error) {
	text, err := textOf(ex, "translation")
	if err != nil {
		return nil, err
	}
	size := t.ChunkSize
	if size <= 0 {
		size = chunk.DefaultMaxSize
	}
	limit := t.Concurrency
	if limit <= 0 {
		limit = DefaultTranslateParallel
	}
	code, name := ResolveLanguage(p.TargetLanguage)

	chunks := chunk.Collect(text, size)
	out := make([]string, len(chunks))
	log.Debug().Str("target", code).Int("chunks", len(chunks)).Msg("translating")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range chunks {
		g.Go(func() error {
			s, err := t.Service.Translate(gctx, c, autoSource, code)
			if err != nil {
				return err
			}
			out[i] = strings.TrimSpace(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, content.Wrap(content.KindTranslation, err, "translate to %s", code)
	}

	translated := strings.Join(out, " ")
	return &content.Result{
		Option: content.OptionTranslate,
		Title:  "Translation",
		Icon:   "globe",
		Translation: &content.Translation{
			OriginalLanguage: autoSource,
			TargetLanguage:   name,
			TargetCode:       code,
			TranslatedText:   translated,
			OriginalLength:   preprocess.WordCount(text),
			TranslatedLength: preprocess.WordCount(translated),
			Chunks:           len(chunks),
		},
	}, nil
}
