// Package chunk splits text into sentence-aligned pieces that fit a size
// budget, for services that cap request length.
package chunk

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSize is the per-request character limit of common translation
// backends.
const DefaultMaxSize = 4500

// Separator is the sentence boundary chunks are cut at.
const Separator = ". "

// Split returns a lazy sequence of chunks of text, each at most max
// characters long. Chunks only end at sentence boundaries; a closed chunk
// gets its terminal period back, the last chunk is emitted as is. A single
// sentence longer than max forms its own chunk unsplit. Joining the chunks
// with a single space reproduces text.
//
// The sequence can be ranged over any number of times and yields the same
// chunks each time.
func Split(text string, max int) iter.Seq[string] {
	if max < 1 {
		max = 1
	}
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		var (
			cur    []string
			curLen int
		)
		sepLen := utf8.RuneCountInString(Separator)
		parts := strings.Split(text, Separator)
		for i, s := range parts {
			n := utf8.RuneCountInString(s)
			// Only a chunk that gets closed later carries the extra period.
			period := 1
			if i == len(parts)-1 {
				period = 0
			}
			if len(cur) > 0 && curLen+sepLen+n+period > max {
				if !yield(strings.Join(cur, Separator) + ".") {
					return
				}
				cur, curLen = cur[:0], 0
			}
			if len(cur) > 0 {
				curLen += sepLen
			}
			cur = append(cur, s)
			curLen += n
		}
		// A trailing separator leaves an empty sentence behind.
		if last := strings.Join(cur, Separator); last != "" {
			yield(last)
		}
	}
}

// Collect materializes Split.
func Collect(text string, max int) []string {
	return slices.Collect(Split(text, max))
}
