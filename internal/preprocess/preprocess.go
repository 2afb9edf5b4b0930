// Package preprocess normalizes extracted text before it reaches a handler.
// All functions are pure and never fail; empty input yields empty output.
package preprocess

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

var (
	blankLineRe = regexp.MustCompile(`\n[ \t\f\v]*\n`)
	citationRe  = regexp.MustCompile(`\[.*?\]`)
	braceRe     = regexp.MustCompile(`\{.*?\}`)
)

// Text normalizes line endings, collapses every whitespace run inside a
// paragraph to a single space and keeps at most one blank line between
// paragraphs.
func Text(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	parts := blankLineRe.Split(s, -1)
	paras := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			paras = append(paras, p)
		}
	}
	return strings.Join(paras, "\n\n")
}

// LinkText is the normalized body of a web page with reading statistics.
type LinkText struct {
	Text            string
	WordCount       int
	ReadTimeMinutes int
}

// Link strips bracketed citation markers and brace artifacts left behind by
// page templates, then applies Text.
func Link(raw string) LinkText {
	s := citationRe.ReplaceAllString(raw, "")
	s = braceRe.ReplaceAllString(s, "")
	s = Text(s)
	wc := WordCount(s)
	return LinkText{Text: s, WordCount: wc, ReadTimeMinutes: ReadTimeMinutes(wc)}
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTimeMinutes estimates reading time, never less than one minute.
func ReadTimeMinutes(words int) int {
	m := int(math.Round(float64(words) / WordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}

// ReadTime formats a minute count the way it is shown to readers.
func ReadTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}
