package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when the
// corresponding variables are set. It runs after the config file so env
// takes precedence over file values; explicitly set flags are applied last.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	setList := func(dst *[]string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = splitList(v)
		}
	}
	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, key string) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}

	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	if v := strings.TrimSpace(os.Getenv("MAX_UPLOAD_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	setList(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")

	setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setString(&cfg.LLMModel, "LLM_MODEL")
	setString(&cfg.LLMAPIKey, "LLM_API_KEY")
	setDuration(&cfg.LLMTimeout, "LLM_TIMEOUT")
	setInt(&cfg.LLMCacheSize, "LLM_CACHE_SIZE")

	setDuration(&cfg.FetchTimeout, "FETCH_TIMEOUT")
	setInt(&cfg.FetchAttempts, "FETCH_ATTEMPTS")
	setString(&cfg.FetchUserAgent, "FETCH_USER_AGENT")
	setList(&cfg.LinkStrategies, "LINK_STRATEGIES")

	setInt(&cfg.ChunkSize, "CHUNK_SIZE")
	setInt(&cfg.TranslateConcurrency, "TRANSLATE_CONCURRENCY")
	setInt(&cfg.SummarySentences, "SUMMARY_SENTENCES")
	setInt(&cfg.KeywordMinLength, "KEYWORD_MIN_LENGTH")
	setString(&cfg.SentimentBackend, "SENTIMENT_BACKEND")
	setString(&cfg.OCRLanguage, "OCR_LANGUAGE")
	setInt(&cfg.ImageMaxDimension, "IMAGE_MAX_DIMENSION")
	setInt(&cfg.ImageMaxPixels, "IMAGE_MAX_PIXELS")

	setDuration(&cfg.ResultTTL, "RESULT_TTL")
	setInt(&cfg.ResultCapacity, "RESULT_CAPACITY")

	setBool(&cfg.Verbose, "VERBOSE")
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
