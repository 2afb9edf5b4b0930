// Package ocr recognizes text in images with the Tesseract engine.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Tesseract runs one gosseract client per call. Recognition runs in its own
// goroutine so a cancelled context returns immediately; the abandoned
// client is closed once Tesseract finishes.
type Tesseract struct {
	// Language lists Tesseract languages joined by "+", e.g. "eng+deu".
	Language string
	// PageSegMode overrides tessedit_pageseg_mode when non-empty.
	PageSegMode string
}

type ocrResult struct {
	text string
	err  error
}

// Recognize implements extract.Recognizer.
func (t Tesseract) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	done := make(chan ocrResult, 1)
	go func() {
		text, err := t.run(png)
		done <- ocrResult{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func (t Tesseract) run(png []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages()...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", fmt.Errorf("set variable: %w", err)
	}
	if t.PageSegMode != "" {
		if err := client.SetVariable("tessedit_pageseg_mode", t.PageSegMode); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}

func (t Tesseract) languages() []string {
	lang := strings.TrimSpace(t.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	return strings.Split(lang, "+")
}
