// Package sentiment provides polarity and subjectivity scorers.
package sentiment

import (
	"context"
	"regexp"
	"strings"
)

// Score holds polarity in [-1, 1] and subjectivity in [0, 1].
type Score struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Scorer rates the sentiment of a text.
type Scorer interface {
	Score(ctx context.Context, text string) (Score, error)
}

type entry struct {
	polarity     float64
	subjectivity float64
}

// lexicon is a small opinion-word table in the style of pattern/TextBlob.
var lexicon = map[string]entry{
	"good":          {0.7, 0.6},
	"great":         {0.8, 0.75},
	"excellent":     {1.0, 1.0},
	"amazing":       {0.6, 0.9},
	"awesome":       {1.0, 1.0},
	"wonderful":     {1.0, 1.0},
	"fantastic":     {0.4, 0.9},
	"love":          {0.5, 0.6},
	"loved":         {0.7, 0.8},
	"like":          {0.2, 0.3},
	"happy":         {0.8, 1.0},
	"nice":          {0.6, 1.0},
	"best":          {1.0, 0.3},
	"better":        {0.5, 0.5},
	"beautiful":     {0.85, 1.0},
	"perfect":       {1.0, 1.0},
	"enjoy":         {0.4, 0.5},
	"enjoyed":       {0.4, 0.5},
	"helpful":       {0.5, 0.4},
	"interesting":   {0.5, 0.5},
	"impressive":    {1.0, 1.0},
	"positive":      {0.23, 0.55},
	"success":       {0.3, 0.3},
	"successful":    {0.75, 0.95},
	"easy":          {0.43, 0.83},
	"fast":          {0.2, 0.6},
	"bad":           {-0.7, 0.67},
	"worse":         {-0.4, 0.6},
	"worst":         {-1.0, 1.0},
	"terrible":      {-1.0, 1.0},
	"awful":         {-1.0, 1.0},
	"horrible":      {-1.0, 1.0},
	"hate":          {-0.8, 0.9},
	"hated":         {-0.9, 0.7},
	"sad":           {-0.5, 1.0},
	"angry":         {-0.5, 1.0},
	"poor":          {-0.4, 0.6},
	"boring":        {-1.0, 1.0},
	"ugly":          {-0.7, 1.0},
	"wrong":         {-0.5, 0.9},
	"difficult":     {-0.5, 1.0},
	"slow":          {-0.3, 0.4},
	"broken":        {-0.4, 0.4},
	"fail":          {-0.5, 0.3},
	"failed":        {-0.5, 0.3},
	"failure":       {-0.32, 0.3},
	"problem":       {-0.2, 0.3},
	"disappointing": {-0.6, 0.7},
	"negative":      {-0.3, 0.4},
}

var (
	negators     = map[string]bool{"not": true, "no": true, "never": true, "isn't": true, "wasn't": true, "don't": true, "doesn't": true, "didn't": true, "can't": true}
	intensifiers = map[string]float64{"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.2, "quite": 1.1, "too": 1.2}
	tokenRe      = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)
)

// Lexicon scores text by averaging the polarity and subjectivity of known
// opinion words. A negator flips and halves the next opinion word, an
// intensifier scales it.
type Lexicon struct{}

func (Lexicon) Score(_ context.Context, text string) (Score, error) {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	var (
		sumP, sumS float64
		n          int
		negate     bool
		boost      = 1.0
	)
	for _, tok := range tokens {
		if negators[tok] {
			negate = true
			continue
		}
		if f, ok := intensifiers[tok]; ok {
			boost *= f
			continue
		}
		e, ok := lexicon[tok]
		if !ok {
			negate, boost = false, 1.0
			continue
		}
		p := e.polarity * boost
		s := e.subjectivity * boost
		if negate {
			p *= -0.5
		}
		sumP += clamp(p, -1, 1)
		sumS += clamp(s, 0, 1)
		n++
		negate, boost = false, 1.0
	}
	if n == 0 {
		return Score{}, nil
	}
	return Score{Polarity: sumP / float64(n), Subjectivity: sumS / float64(n)}, nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
