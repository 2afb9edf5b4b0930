package app

import (
	"time"

	"github.com/hyperifyio/blogdigest/internal/cache"
	"github.com/hyperifyio/blogdigest/internal/chunk"
	"github.com/hyperifyio/blogdigest/internal/extract"
	"github.com/hyperifyio/blogdigest/internal/handler"
	"github.com/hyperifyio/blogdigest/internal/ocr"
	"github.com/hyperifyio/blogdigest/internal/server"
)

// Sentiment backends.
const (
	SentimentLexicon = "lexicon"
	SentimentLLM     = "llm"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Server
	ListenAddr     string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	AllowedOrigins []string

	// LLM
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	LLMTimeout   time.Duration
	LLMCacheSize int

	// Fetching
	FetchTimeout   time.Duration
	FetchAttempts  int
	FetchUserAgent string
	LinkStrategies []string

	// Processing
	ChunkSize            int
	TranslateConcurrency int
	SummarySentences     int
	KeywordMinLength     int
	SentimentBackend     string
	OCRLanguage          string
	ImageMaxDimension    int
	ImageMaxPixels       int

	// Result store
	ResultTTL      time.Duration
	ResultCapacity int

	Verbose bool
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		ListenAddr:           ":8080",
		RequestTimeout:       server.DefaultRequestTimeout,
		MaxUploadBytes:       server.DefaultMaxUploadBytes,
		AllowedOrigins:       []string{"*"},
		LLMTimeout:           60 * time.Second,
		LLMCacheSize:         512,
		FetchTimeout:         10 * time.Second,
		FetchAttempts:        2,
		FetchUserAgent:       "Mozilla/5.0 (compatible; blogdigest/1.0)",
		LinkStrategies:       append([]string{}, extract.DefaultStrategies...),
		ChunkSize:            chunk.DefaultMaxSize,
		TranslateConcurrency: handler.DefaultTranslateParallel,
		SummarySentences:     handler.DefaultSummarySentences,
		KeywordMinLength:     handler.DefaultKeywordMinLength,
		SentimentBackend:     SentimentLexicon,
		OCRLanguage:          ocr.DefaultLanguage,
		ImageMaxDimension:    extract.DefaultMaxDimension,
		ImageMaxPixels:       extract.DefaultMaxPixels,
		ResultTTL:            cache.DefaultTTL,
		ResultCapacity:       cache.DefaultCapacity,
	}
}
