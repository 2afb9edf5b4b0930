package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/blogdigest/internal/budget"
	"github.com/hyperifyio/blogdigest/internal/cache"
	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/extract"
	"github.com/hyperifyio/blogdigest/internal/fetch"
	"github.com/hyperifyio/blogdigest/internal/handler"
	"github.com/hyperifyio/blogdigest/internal/llm"
	"github.com/hyperifyio/blogdigest/internal/ocr"
	"github.com/hyperifyio/blogdigest/internal/pipeline"
	"github.com/hyperifyio/blogdigest/internal/render"
	"github.com/hyperifyio/blogdigest/internal/sentiment"
	"github.com/hyperifyio/blogdigest/internal/server"
	"github.com/hyperifyio/blogdigest/internal/translate"
)

// App owns the long-lived components: the pipeline, the stores and the
// HTTP handler.
type App struct {
	cfg      Config
	ai       llm.Client
	pipeline *pipeline.Pipeline
	results  *cache.ResultStore
	llmCache *cache.LLMCache
	handler  http.Handler
}

// Option customizes New.
type Option func(*options)

type options struct {
	llmClient  llm.Client
	recognizer extract.Recognizer
}

// WithLLMClient replaces the OpenAI-compatible client built from Config.
func WithLLMClient(c llm.Client) Option {
	return func(o *options) { o.llmClient = c }
}

// WithRecognizer replaces the Tesseract OCR engine.
func WithRecognizer(r extract.Recognizer) Option {
	return func(o *options) { o.recognizer = r }
}

// New wires every component from cfg.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := newHTTPClient(cfg)
	ai := o.llmClient
	if ai == nil {
		// Build OpenAI-compatible config
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		transportCfg.HTTPClient = httpClient
		ai = &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
	}

	a := &App{cfg: cfg, ai: ai}
	if cfg.LLMCacheSize > 0 {
		a.llmCache = cache.NewLLMCache(cfg.ResultTTL, cfg.LLMCacheSize)
	}

	extractors, err := a.buildExtractors(httpClient, o.recognizer)
	if err != nil {
		a.Close()
		return nil, err
	}
	registry, err := handler.NewRegistry(handler.DefaultBindings(a.buildHandlers())...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build registry: %w", err)
	}
	a.pipeline, err = pipeline.New(extractors, registry)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.results = cache.NewResultStore(cfg.ResultTTL, cfg.ResultCapacity)
	a.handler = server.New(a.pipeline, a.results, server.Config{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
	}).Routes()
	return a, nil
}

func (a *App) buildExtractors(httpClient *http.Client, rec extract.Recognizer) (map[content.InputType]extract.Extractor, error) {
	primary := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         a.cfg.FetchUserAgent,
		MaxAttempts:       a.cfg.FetchAttempts,
		PerRequestTimeout: a.cfg.FetchTimeout,
	}
	// The plain HTML fallback makes a single attempt.
	fallback := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         a.cfg.FetchUserAgent,
		MaxAttempts:       1,
		PerRequestTimeout: a.cfg.FetchTimeout,
	}
	strategies := make([]extract.Strategy, 0, len(a.cfg.LinkStrategies))
	for _, name := range a.cfg.LinkStrategies {
		f := primary
		if strings.EqualFold(strings.TrimSpace(name), extract.StrategyHTML) {
			f = fallback
		}
		s, err := extract.NewStrategy(name, f)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	if rec == nil {
		rec = ocr.Tesseract{Language: a.cfg.OCRLanguage}
	}
	return map[content.InputType]extract.Extractor{
		content.InputText:  extract.Text{},
		content.InputLink:  extract.Link{Strategies: strategies},
		content.InputImage: extract.Image{OCR: rec, MaxDimension: a.cfg.ImageMaxDimension, MaxPixels: a.cfg.ImageMaxPixels},
	}, nil
}

func (a *App) buildHandlers() handler.Set {
	var scorer sentiment.Scorer = sentiment.Lexicon{}
	if strings.EqualFold(strings.TrimSpace(a.cfg.SentimentBackend), SentimentLLM) {
		scorer = &sentiment.LLM{Client: a.ai, Model: a.cfg.LLMModel, Fallback: sentiment.Lexicon{}}
	}
	return handler.Set{
		Summarize: handler.Summarize{Sentences: a.cfg.SummarySentences},
		Translate: handler.Translate{
			Service: &translate.LLM{
				Client:  a.ai,
				Model:   a.cfg.LLMModel,
				Timeout: a.cfg.LLMTimeout,
				Cache:   a.llmCache,
			},
			ChunkSize:   budget.TranslationChunkChars(a.cfg.LLMModel, translate.SystemMessage("auto", "xx"), a.cfg.ChunkSize),
			Concurrency: a.cfg.TranslateConcurrency,
		},
		Sentiment:   handler.Sentiment{Scorer: scorer},
		Keywords:    handler.NewKeywords(handler.WithMinLength(a.cfg.KeywordMinLength)),
		Topics:      handler.Topics{},
		PDF:         handler.PDF{Renderer: render.PDF{}},
		ExtractText: handler.ExtractText{},
	}
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler { return a.handler }

// Process runs one request through the pipeline without HTTP.
func (a *App) Process(ctx context.Context, req pipeline.Request) (*content.Result, error) {
	return a.pipeline.Process(ctx, req)
}

// Preflight checks that the model server answers. It only warns: requests
// that do not need the model keep working without it.
func (a *App) Preflight(ctx context.Context) {
	lister, ok := a.ai.(llm.ModelLister)
	if !ok || strings.TrimSpace(a.cfg.LLMModel) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := lister.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	if len(models.Models) > 0 {
		log.Info().Int("count", len(models.Models)).Msg("LLM models available")
	} else {
		log.Warn().Msg("LLM returned zero models")
	}
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.cfg.ListenAddr).Str("version", BuildVersion).Str("commit", BuildCommit).Str("built", BuildDate).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops background goroutines of the stores.
func (a *App) Close() {
	if a.results != nil {
		a.results.Close()
	}
	a.llmCache.Close()
}
