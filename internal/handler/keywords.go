package handler

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hyperifyio/blogdigest/internal/content"
)

const (
	DefaultKeywordMinLength = 4
	DefaultKeywordLimit     = 10
)

// DefaultStopWords are dropped before counting.
var DefaultStopWords = []string{"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for"}

// Keywords ranks the most frequent words of a text.
type Keywords struct {
	word  *regexp.Regexp
	limit int
	stop  map[string]struct{}
}

type keywordConfig struct {
	minLength int
	limit     int
	stopWords []string
}

// KeywordOption configures NewKeywords.
type KeywordOption func(*keywordConfig)

// WithMinLength sets the shortest word considered a keyword.
func WithMinLength(n int) KeywordOption {
	return func(c *keywordConfig) {
		if n > 0 {
			c.minLength = n
		}
	}
}

// WithLimit caps the number of keywords returned.
func WithLimit(n int) KeywordOption {
	return func(c *keywordConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithStopWords replaces the stop-word list.
func WithStopWords(words ...string) KeywordOption {
	return func(c *keywordConfig) { c.stopWords = words }
}

func NewKeywords(opts ...KeywordOption) *Keywords {
	cfg := keywordConfig{minLength: DefaultKeywordMinLength, limit: DefaultKeywordLimit, stopWords: DefaultStopWords}
	for _, o := range opts {
		o(&cfg)
	}
	stop := make(map[string]struct{}, len(cfg.stopWords))
	for _, w := range cfg.stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Keywords{
		word:  regexp.MustCompile(fmt.Sprintf(`\b[a-z]{%d,}\b`, cfg.minLength)),
		limit: cfg.limit,
		stop:  stop,
	}
}

func (k *Keywords) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "keyword extraction")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var order []string
	for _, w := range k.word.FindAllString(strings.ToLower(text), -1) {
		if _, skip := k.stop[w]; skip {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > k.limit {
		order = order[:k.limit]
	}

	keywords := make([]content.Keyword, 0, len(order))
	if len(order) > 0 {
		max := float64(counts[order[0]])
		for _, w := range order {
			keywords = append(keywords, content.Keyword{
				Word:      capitalize(w),
				Frequency: counts[w],
				Relevance: int(math.Round(100 * float64(counts[w]) / max)),
			})
		}
	}
	return &content.Result{
		Option:   content.OptionKeywords,
		Title:    "Keywords",
		Icon:     "tag",
		Keywords: keywords,
	}, nil
}
