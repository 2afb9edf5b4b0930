// Package content holds the request-scoped data model shared by extractors,
// handlers and the pipeline: the closed input-type and option enumerations,
// extraction results with per-source metadata, and handler results.
package content

import (
	"fmt"
	"strings"
	"time"
)

// InputType identifies the kind of source a request carries.
type InputType string

const (
	InputText  InputType = "text"
	InputLink  InputType = "link"
	InputImage InputType = "image"
)

// InputTypes lists every input type in declaration order.
var InputTypes = []InputType{InputText, InputLink, InputImage}

// Valid reports whether t is one of the declared input types.
func (t InputType) Valid() bool {
	switch t {
	case InputText, InputLink, InputImage:
		return true
	}
	return false
}

// ParseInputType converts a wire value into an InputType.
func ParseInputType(s string) (InputType, error) {
	t := InputType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid input type: %s", s)
	}
	return t, nil
}

// Option names a content transformation.
type Option string

const (
	OptionSummarize     Option = "summarize"
	OptionTranslate     Option = "translate"
	OptionSentiment     Option = "sentiment"
	OptionKeywords      Option = "keywords"
	OptionTopics        Option = "topics"
	OptionPDF           Option = "pdf"
	OptionExtractText   Option = "extract_text"
	OptionDetectObjects Option = "detect_objects"
	OptionClassifyImage Option = "classify_image"
)

// Options lists every option in declaration order. Some options are
// declared without any handler bound to them.
var Options = []Option{
	OptionSummarize,
	OptionTranslate,
	OptionSentiment,
	OptionKeywords,
	OptionTopics,
	OptionPDF,
	OptionExtractText,
	OptionDetectObjects,
	OptionClassifyImage,
}

// Valid reports whether o is one of the declared options.
func (o Option) Valid() bool {
	for _, known := range Options {
		if o == known {
			return true
		}
	}
	return false
}

// ParseOption converts a wire value into an Option.
func ParseOption(s string) (Option, error) {
	o := Option(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("unknown option: %s", s)
	}
	return o, nil
}

// Reference points at the raw input of a request. Text and links travel in
// Value; uploaded images travel in Data with Name holding the client filename.
type Reference struct {
	Value string
	Data  []byte
	Name  string
}

// String returns a printable identifier for logs and envelopes.
func (r Reference) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Value
}

// ExtractionResult is produced once per request by an extractor and read by
// exactly one handler. It is never mutated after creation.
type ExtractionResult struct {
	Source   string   `json:"source_reference"`
	RawText  string   `json:"raw_text"`
	Text     string   `json:"preprocessed_text"`
	Metadata Metadata `json:"metadata"`
}

// Metadata is a tagged union: at most one of the pointers is set, matching
// the extractor that produced the result.
type Metadata struct {
	Text  *TextMetadata  `json:"text,omitempty"`
	Link  *LinkMetadata  `json:"link,omitempty"`
	Image *ImageMetadata `json:"image,omitempty"`
}

// Title returns the document title when the source carried one.
func (m Metadata) Title() string {
	if m.Link != nil {
		return m.Link.Title
	}
	return ""
}

type TextMetadata struct {
	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`
}

type LinkMetadata struct {
	Title           string     `json:"title,omitempty"`
	Authors         []string   `json:"authors,omitempty"`
	PublishDate     *time.Time `json:"publish_date,omitempty"`
	Sitename        string     `json:"sitename,omitempty"`
	WordCount       int        `json:"word_count"`
	ReadTimeMinutes int        `json:"read_time_minutes"`
	ReadTime        string     `json:"estimated_read_time"`
	// Strategy names the link extraction strategy that produced the text.
	Strategy string `json:"strategy"`
}

type ImageMetadata struct {
	Format          string `json:"format"`
	Mode            string `json:"mode"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ProcessedWidth  int    `json:"processed_width"`
	ProcessedHeight int    `json:"processed_height"`
}
