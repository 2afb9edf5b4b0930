package content

// Result is the outcome of one handler. Exactly one payload pointer is set,
// matching Option.
type Result struct {
	Option Option `json:"option"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`

	Summary       *Summary       `json:"summary,omitempty"`
	Translation   *Translation   `json:"translation,omitempty"`
	Keywords      []Keyword      `json:"keywords,omitempty"`
	Topics        []Topic        `json:"topics,omitempty"`
	Sentiment     *Sentiment     `json:"sentiment,omitempty"`
	PDF           *PDF           `json:"pdf,omitempty"`
	ExtractedText *ExtractedText `json:"extracted_text,omitempty"`
}

type Summary struct {
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
}

type Translation struct {
	OriginalLanguage string `json:"original_language"`
	TargetLanguage   string `json:"target_language"`
	TargetCode       string `json:"target_code"`
	TranslatedText   string `json:"translated_text"`
	OriginalLength   int    `json:"original_length"`
	TranslatedLength int    `json:"translated_length"`
	Chunks           int    `json:"chunks"`
}

type Keyword struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
	Relevance int    `json:"relevance"`
}

type Topic struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Color string `json:"color"`
}

type Sentiment struct {
	Overall      string    `json:"overall"`
	Score        int       `json:"score"`
	Polarity     float64   `json:"polarity"`
	Subjectivity float64   `json:"subjectivity"`
	Breakdown    Breakdown `json:"breakdown"`
	Insights     []string  `json:"insights"`
}

// Breakdown percentages always sum to 100.
type Breakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type PDF struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
	Bytes    int    `json:"bytes"`
	Pages    int    `json:"pages"`
	Base64   string `json:"pdf_base64"`
	Message  string `json:"message"`
	// Data holds the raw document for callers that write it to disk.
	Data []byte `json:"-"`
}

type ExtractedText struct {
	Text      string         `json:"text"`
	WordCount int            `json:"word_count"`
	CharCount int            `json:"char_count"`
	Image     *ImageMetadata `json:"image,omitempty"`
}
