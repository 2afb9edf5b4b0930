package handler

import (
	"context"
	"sort"
	"strings"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// Category is a topic with the keywords that signal it.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultCategories in declaration order; the order breaks score ties.
var DefaultCategories = []Category{
	{"technology", []string{"technology", "software", "computer", "digital", "ai", "data", "code", "programming"}},
	{"business", []string{"business", "company", "market", "financial", "investment", "sales", "profit"}},
	{"health", []string{"health", "medical", "doctor", "patient", "treatment", "disease", "wellness"}},
	{"science", []string{"science", "research", "study", "experiment", "theory", "discovery", "scientific"}},
	{"education", []string{"education", "learning", "student", "teacher", "school", "university", "course"}},
	{"entertainment", []string{"entertainment", "movie", "music", "game", "show", "celebrity", "fun"}},
	{"sports", []string{"sports", "game", "team", "player", "match", "championship", "tournament"}},
	{"politics", []string{"politics", "government", "election", "policy", "law", "parliament", "vote"}},
}

// TopicColors are assigned by rank; ranks past the list get TopicFallbackColor.
var TopicColors = []string{
	"from-blue-500 to-blue-600",
	"from-purple-500 to-purple-600",
	"from-pink-500 to-pink-600",
	"from-orange-500 to-orange-600",
}

const TopicFallbackColor = "from-gray-500 to-gray-600"

const (
	topicPointsPerHit = 10
	topicMaxScore     = 100
	topicLimit        = 4
)

// Topics scores text against keyword categories by substring occurrence.
type Topics struct {
	// Categories overrides DefaultCategories when non-empty.
	Categories []Category
}

func (t Topics) Process(ctx context.Context, ex *content.ExtractionResult, _ Params) (*content.Result, error) {
	text, err := textOf(ex, "topic classification")
	if err != nil {
		return nil, err
	}
	cats := t.Categories
	if len(cats) == 0 {
		cats = DefaultCategories
	}
	lower := strings.ToLower(text)

	type scored struct {
		name  string
		score int
	}
	var hits []scored
	for _, c := range cats {
		score := 0
		for _, kw := range c.Keywords {
			score += strings.Count(lower, kw) * topicPointsPerHit
		}
		if score > topicMaxScore {
			score = topicMaxScore
		}
		if score > 0 {
			hits = append(hits, scored{c.Name, score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > topicLimit {
		hits = hits[:topicLimit]
	}

	topics := make([]content.Topic, 0, len(hits))
	for i, h := range hits {
		color := TopicFallbackColor
		if i < len(TopicColors) {
			color = TopicColors[i]
		}
		topics = append(topics, content.Topic{Name: capitalize(h.name), Score: h.score, Color: color})
	}
	return &content.Result{
		Option: content.OptionTopics,
		Title:  "Topics",
		Icon:   "layers",
		Topics: topics,
	}, nil
}
