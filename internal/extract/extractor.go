// Package extract turns a request reference into normalized plain text.
// There is one extractor per input type; links go through an ordered list
// of fetch strategies and images through an enhancement pipeline before OCR.
package extract

import (
	"context"
	"errors"

	"github.com/hyperifyio/blogdigest/internal/content"
)

// Extractor converts a reference into an extraction result.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, ref content.Reference) (*content.ExtractionResult, error)
}

// Fetcher retrieves a URL and returns its body and content type.
// fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// Recognizer reads text out of a PNG encoded image.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// errEmptyPage marks a strategy that fetched a page but found no text in it.
var errEmptyPage = errors.New("no text extracted from page")


// errTooManyPixels rejects images whose decoded size exceeds the pixel limit.
var errTooManyPixels = errors.New("image exceeds pixel limit")
