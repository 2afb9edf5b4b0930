package app

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds the values bound to a FlagSet by BindFlags.
type Flags struct {
	ConfigPath string
	EnvFiles   string

	cfg        Config
	strategies string
	origins    string
}

// BindFlags registers the configuration flags on fs. Defaults come from
// DefaultConfig so -h shows the effective fallback values.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{cfg: DefaultConfig()}
	c := &f.cfg
	fs.StringVar(&f.ConfigPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&f.EnvFiles, "env", ".env,.env.local", "Comma-separated dotenv files loaded before configuration")

	fs.StringVar(&c.ListenAddr, "listen", c.ListenAddr, "HTTP listen address")
	fs.DurationVar(&c.RequestTimeout, "request.timeout", c.RequestTimeout, "Maximum time spent on one HTTP request")
	fs.Int64Var(&c.MaxUploadBytes, "upload.maxBytes", c.MaxUploadBytes, "Maximum request body size in bytes")
	fs.StringVar(&f.origins, "cors.origins", strings.Join(c.AllowedOrigins, ","), "Comma-separated CORS origins; * allows any")

	fs.StringVar(&c.LLMBaseURL, "llm.base", c.LLMBaseURL, "OpenAI-compatible base URL")
	fs.StringVar(&c.LLMModel, "llm.model", c.LLMModel, "Model name used for translation and llm sentiment")
	fs.StringVar(&c.LLMAPIKey, "llm.key", c.LLMAPIKey, "API key for OpenAI-compatible server")
	fs.DurationVar(&c.LLMTimeout, "llm.timeout", c.LLMTimeout, "Timeout of a single model call")
	fs.IntVar(&c.LLMCacheSize, "llm.cacheSize", c.LLMCacheSize, "Number of model responses kept in memory (0 disables)")

	fs.DurationVar(&c.FetchTimeout, "fetch.timeout", c.FetchTimeout, "Per-request timeout when fetching links")
	fs.IntVar(&c.FetchAttempts, "fetch.attempts", c.FetchAttempts, "Attempts for the primary link fetch, including the first")
	fs.StringVar(&c.FetchUserAgent, "fetch.ua", c.FetchUserAgent, "User-Agent sent when fetching links")
	fs.StringVar(&f.strategies, "fetch.strategies", strings.Join(c.LinkStrategies, ","), "Comma-separated link strategies in order: trafilatura, readability, html")

	fs.IntVar(&c.ChunkSize, "translate.chunkSize", c.ChunkSize, "Maximum characters per translation request")
	fs.IntVar(&c.TranslateConcurrency, "translate.concurrency", c.TranslateConcurrency, "Concurrent translation requests per document")
	fs.IntVar(&c.SummarySentences, "summary.sentences", c.SummarySentences, "Sentences kept in a summary")
	fs.IntVar(&c.KeywordMinLength, "keywords.minLength", c.KeywordMinLength, "Shortest word considered a keyword")
	fs.StringVar(&c.SentimentBackend, "sentiment.backend", c.SentimentBackend, "Sentiment scorer: lexicon or llm")
	fs.StringVar(&c.OCRLanguage, "ocr.lang", c.OCRLanguage, "Tesseract language(s), e.g. eng or eng+deu")
	fs.IntVar(&c.ImageMaxDimension, "ocr.maxDimension", c.ImageMaxDimension, "Longest image side passed to OCR")
	fs.IntVar(&c.ImageMaxPixels, "ocr.maxPixels", c.ImageMaxPixels, "Largest width*height accepted before decoding an image")

	fs.DurationVar(&c.ResultTTL, "results.ttl", c.ResultTTL, "How long processed results stay retrievable")
	fs.IntVar(&c.ResultCapacity, "results.capacity", c.ResultCapacity, "Maximum number of stored results")

	fs.BoolVar(&c.Verbose, "v", false, "Verbose logging")
	return f
}

// EnvFileList returns the dotenv files named by -env.
func (f *Flags) EnvFileList() []string {
	return splitList(f.EnvFiles)
}

// Resolve layers configuration: defaults, then the config file, then the
// environment, then flags set explicitly on fs. fs must have been parsed.
func (f *Flags) Resolve(fs *flag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(f.ConfigPath) != "" {
		fc, err := LoadConfigFile(f.ConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	ApplyEnvOverrides(&cfg)

	fs.Visit(func(fl *flag.Flag) { f.copyFlag(&cfg, fl.Name) })
	return cfg, ValidateConfig(cfg)
}

// copyFlag moves the parsed value of one configuration flag into cfg.
// Flags that are not configuration (like -config itself) are ignored.
func (f *Flags) copyFlag(cfg *Config, name string) {
	src := f.cfg
	switch name {
	case "listen":
		cfg.ListenAddr = src.ListenAddr
	case "request.timeout":
		cfg.RequestTimeout = src.RequestTimeout
	case "upload.maxBytes":
		cfg.MaxUploadBytes = src.MaxUploadBytes
	case "cors.origins":
		cfg.AllowedOrigins = splitList(f.origins)
	case "llm.base":
		cfg.LLMBaseURL = src.LLMBaseURL
	case "llm.model":
		cfg.LLMModel = src.LLMModel
	case "llm.key":
		cfg.LLMAPIKey = src.LLMAPIKey
	case "llm.timeout":
		cfg.LLMTimeout = src.LLMTimeout
	case "llm.cacheSize":
		cfg.LLMCacheSize = src.LLMCacheSize
	case "fetch.timeout":
		cfg.FetchTimeout = src.FetchTimeout
	case "fetch.attempts":
		cfg.FetchAttempts = src.FetchAttempts
	case "fetch.ua":
		cfg.FetchUserAgent = src.FetchUserAgent
	case "fetch.strategies":
		cfg.LinkStrategies = splitList(f.strategies)
	case "translate.chunkSize":
		cfg.ChunkSize = src.ChunkSize
	case "translate.concurrency":
		cfg.TranslateConcurrency = src.TranslateConcurrency
	case "summary.sentences":
		cfg.SummarySentences = src.SummarySentences
	case "keywords.minLength":
		cfg.KeywordMinLength = src.KeywordMinLength
	case "sentiment.backend":
		cfg.SentimentBackend = src.SentimentBackend
	case "ocr.lang":
		cfg.OCRLanguage = src.OCRLanguage
	case "ocr.maxDimension":
		cfg.ImageMaxDimension = src.ImageMaxDimension
	case "ocr.maxPixels":
		cfg.ImageMaxPixels = src.ImageMaxPixels
	case "results.ttl":
		cfg.ResultTTL = src.ResultTTL
	case "results.capacity":
		cfg.ResultCapacity = src.ResultCapacity
	case "v":
		cfg.Verbose = src.Verbose
	}
}
