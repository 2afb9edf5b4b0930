package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/blogdigest/internal/extract"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags and env.
type FileConfig struct {
	Listen string `yaml:"listen" json:"listen"`

	Server struct {
		RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`
		MaxUploadBytes int64         `yaml:"maxUploadBytes" json:"maxUploadBytes"`
		AllowedOrigins []string      `yaml:"allowedOrigins" json:"allowedOrigins"`
	} `yaml:"server" json:"server"`

	LLM struct {
		BaseURL   string        `yaml:"base" json:"base"`
		Model     string        `yaml:"model" json:"model"`
		APIKey    string        `yaml:"key" json:"key"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		CacheSize int           `yaml:"cacheSize" json:"cacheSize"`
	} `yaml:"llm" json:"llm"`

	Fetch struct {
		Timeout    time.Duration `yaml:"timeout" json:"timeout"`
		Attempts   int           `yaml:"attempts" json:"attempts"`
		UserAgent  string        `yaml:"userAgent" json:"userAgent"`
		Strategies []string      `yaml:"strategies" json:"strategies"`
	} `yaml:"fetch" json:"fetch"`

	Translate struct {
		ChunkSize   int `yaml:"chunkSize" json:"chunkSize"`
		Concurrency int `yaml:"concurrency" json:"concurrency"`
	} `yaml:"translate" json:"translate"`

	Summary struct {
		Sentences int `yaml:"sentences" json:"sentences"`
	} `yaml:"summary" json:"summary"`

	Keywords struct {
		MinLength int `yaml:"minLength" json:"minLength"`
	} `yaml:"keywords" json:"keywords"`

	Sentiment struct {
		Backend string `yaml:"backend" json:"backend"`
	} `yaml:"sentiment" json:"sentiment"`

	OCR struct {
		Language     string `yaml:"language" json:"language"`
		MaxDimension int    `yaml:"maxDimension" json:"maxDimension"`
		MaxPixels    int    `yaml:"maxPixels" json:"maxPixels"`
	} `yaml:"ocr" json:"ocr"`

	Results struct {
		TTL      time.Duration `yaml:"ttl" json:"ttl"`
		Capacity int           `yaml:"capacity" json:"capacity"`
	} `yaml:"results" json:"results"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. Zero values in
// the file leave cfg untouched.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	str := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	num := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, v time.Duration) {
		if v != 0 {
			*dst = v
		}
	}

	str(&cfg.ListenAddr, fc.Listen)
	dur(&cfg.RequestTimeout, fc.Server.RequestTimeout)
	if fc.Server.MaxUploadBytes != 0 {
		cfg.MaxUploadBytes = fc.Server.MaxUploadBytes
	}
	if len(fc.Server.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append([]string{}, fc.Server.AllowedOrigins...)
	}

	str(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	str(&cfg.LLMModel, fc.LLM.Model)
	str(&cfg.LLMAPIKey, fc.LLM.APIKey)
	dur(&cfg.LLMTimeout, fc.LLM.Timeout)
	num(&cfg.LLMCacheSize, fc.LLM.CacheSize)

	dur(&cfg.FetchTimeout, fc.Fetch.Timeout)
	num(&cfg.FetchAttempts, fc.Fetch.Attempts)
	str(&cfg.FetchUserAgent, fc.Fetch.UserAgent)
	if len(fc.Fetch.Strategies) > 0 {
		cfg.LinkStrategies = append([]string{}, fc.Fetch.Strategies...)
	}

	num(&cfg.ChunkSize, fc.Translate.ChunkSize)
	num(&cfg.TranslateConcurrency, fc.Translate.Concurrency)
	num(&cfg.SummarySentences, fc.Summary.Sentences)
	num(&cfg.KeywordMinLength, fc.Keywords.MinLength)
	str(&cfg.SentimentBackend, fc.Sentiment.Backend)
	str(&cfg.OCRLanguage, fc.OCR.Language)
	num(&cfg.ImageMaxDimension, fc.OCR.MaxDimension)
	num(&cfg.ImageMaxPixels, fc.OCR.MaxPixels)

	dur(&cfg.ResultTTL, fc.Results.TTL)
	num(&cfg.ResultCapacity, fc.Results.Capacity)

	if fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if cfg.ChunkSize < 1 {
		return errors.New("config: translate.chunkSize must be positive")
	}
	if cfg.MaxUploadBytes < 0 || cfg.FetchAttempts < 0 || cfg.TranslateConcurrency < 0 ||
		cfg.SummarySentences < 0 || cfg.KeywordMinLength < 0 || cfg.ImageMaxDimension < 0 || cfg.ImageMaxPixels < 0 ||
		cfg.ResultCapacity < 0 || cfg.LLMCacheSize < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if len(cfg.LinkStrategies) == 0 {
		return errors.New("config: at least one link strategy is required")
	}
	for _, s := range cfg.LinkStrategies {
		if _, err := extract.NewStrategy(s, nil); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.SentimentBackend)) {
	case SentimentLexicon:
	case SentimentLLM:
		if strings.TrimSpace(cfg.LLMModel) == "" {
			return errors.New("config: sentiment backend llm requires llm.model (or set LLM_MODEL)")
		}
	default:
		return fmt.Errorf("config: unknown sentiment backend %q", cfg.SentimentBackend)
	}
	return nil
}
