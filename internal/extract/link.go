package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

// Page is what a link strategy recovers from a URL before preprocessing.
type Page struct {
	Title       string
	Text        string
	Authors     []string
	PublishDate *time.Time
	Sitename    string
}

// Strategy is one way of turning a URL into a page. Link tries strategies
// in order until one succeeds.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Strategy names accepted in configuration.
const (
	StrategyTrafilatura = "trafilatura"
	StrategyReadability = "readability"
	StrategyHTML        = "html"
)

// DefaultStrategies is the strategy order used when none is configured.
var DefaultStrategies = []string{StrategyTrafilatura, StrategyHTML}

// NewStrategy builds the named strategy on top of f.
func NewStrategy(name string, f Fetcher) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyTrafilatura:
		return TrafilaturaStrategy{Fetcher: f}, nil
	case StrategyReadability:
		return ReadabilityStrategy{Fetcher: f}, nil
	case StrategyHTML:
		return HTMLStrategy{Fetcher: f}, nil
	}
	return nil, fmt.Errorf("unknown link strategy: %q", name)
}

// Link extracts the main text of a web page.
type Link struct {
	Strategies []Strategy
}

func (l Link) Extract(ctx context.Context, ref content.Reference) (*content.ExtractionResult, error) {
	raw := strings.TrimSpace(ref.Value)
	if raw == "" {
		return nil, content.Errorf(content.KindEmptyInput, "link input is empty")
	}
	if len(l.Strategies) == 0 {
		return nil, content.Errorf(content.KindExtraction, "no link strategies configured")
	}
	var lastErr error
	for _, s := range l.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.Fetch(ctx, raw)
		var lt preprocess.LinkText
		if err == nil {
			lt = preprocess.Link(page.Text)
			if lt.Text == "" {
				err = errEmptyPage
			}
		}
		if err != nil {
			log.Warn().Err(err).Str("url", raw).Str("strategy", s.Name()).Msg("link strategy failed")
			lastErr = err
			continue
		}
		log.Debug().Str("url", raw).Str("strategy", s.Name()).Int("words", lt.WordCount).Msg("link extracted")
		return &content.ExtractionResult{
			Source:  raw,
			RawText: page.Text,
			Text:    lt.Text,
			Metadata: content.Metadata{Link: &content.LinkMetadata{
				Title:           page.Title,
				Authors:         page.Authors,
				PublishDate:     page.PublishDate,
				Sitename:        page.Sitename,
				WordCount:       lt.WordCount,
				ReadTimeMinutes: lt.ReadTimeMinutes,
				ReadTime:        preprocess.ReadTime(lt.ReadTimeMinutes),
				Strategy:        s.Name(),
			}},
		}, nil
	}
	return nil, content.Wrap(content.KindExtraction, lastErr, "failed to extract content from %s", raw)
}

// TrafilaturaStrategy extracts the main content with go-trafilatura,
// keeping tables and skipping comment sections.
type TrafilaturaStrategy struct {
	Fetcher Fetcher
}

func (TrafilaturaStrategy) Name() string { return StrategyTrafilatura }

func (s TrafilaturaStrategy) Fetch(ctx context.Context, rawURL string) (Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse url: %w", err)
	}
	body, _, err := s.Fetcher.Get(ctx, rawURL)
	if err != nil {
		return Page{}, err
	}
	res, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL:     u,
		ExcludeComments: true,
		EnableFallback:  false,
	})
	if err != nil {
		return Page{}, fmt.Errorf("trafilatura: %w", err)
	}
	if res == nil || strings.TrimSpace(res.ContentText) == "" {
		return Page{}, errEmptyPage
	}
	page := Page{
		Title:    strings.TrimSpace(res.Metadata.Title),
		Text:     res.ContentText,
		Authors:  splitAuthors(res.Metadata.Author),
		Sitename: strings.TrimSpace(res.Metadata.Sitename),
	}
	if !res.Metadata.Date.IsZero() {
		d := res.Metadata.Date
		page.PublishDate = &d
	}
	return page, nil
}

// ReadabilityStrategy extracts the article body with go-readability.
type ReadabilityStrategy struct {
	Fetcher Fetcher
}

func (ReadabilityStrategy) Name() string { return StrategyReadability }

func (s ReadabilityStrategy) Fetch(ctx context.Context, rawURL string) (Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse url: %w", err)
	}
	body, _, err := s.Fetcher.Get(ctx, rawURL)
	if err != nil {
		return Page{}, err
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return Page{}, fmt.Errorf("readability: %w", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return Page{}, errEmptyPage
	}
	return Page{
		Title:    strings.TrimSpace(article.Title),
		Text:     article.TextContent,
		Authors:  splitAuthors(article.Byline),
		Sitename: strings.TrimSpace(article.SiteName),
	}, nil
}

// HTMLStrategy keeps every visible text node of the page. It is the last
// resort when the content extractors find nothing.
type HTMLStrategy struct {
	Fetcher Fetcher
}

func (HTMLStrategy) Name() string { return StrategyHTML }

func (s HTMLStrategy) Fetch(ctx context.Context, rawURL string) (Page, error) {
	body, _, err := s.Fetcher.Get(ctx, rawURL)
	if err != nil {
		return Page{}, err
	}
	page, err := FromHTML(body, rawURL)
	if err != nil {
		return Page{}, err
	}
	if page.Text == "" {
		return Page{}, errEmptyPage
	}
	return page, nil
}

func splitAuthors(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ";") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
