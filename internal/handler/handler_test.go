package handler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/sentiment"
)

func textResult(s string) *content.ExtractionResult {
	return &content.ExtractionResult{Source: "test", RawText: s, Text: s}
}

func TestHandlers_NoContent(t *testing.T) {
	hs := map[string]Handler{
		"summarize": Summarize{},
		"keywords":  NewKeywords(),
		"topics":    Topics{},
		"sentiment": Sentiment{Scorer: sentiment.Lexicon{}},
		"translate": Translate{Service: &fakeTranslator{}},
		"pdf":       PDF{Renderer: fakeRenderer{}},
		"extract":   ExtractText{},
	}
	for name, h := range hs {
		for _, ex := range []*content.ExtractionResult{nil, textResult("   ")} {
			_, err := h.Process(context.Background(), ex, Params{})
			if !errors.Is(err, content.ErrNoContent) {
				t.Fatalf("%s: expected ErrNoContent, got %v", name, err)
			}
		}
	}
}

func TestSummarize_FirstThreeSentences(t *testing.T) {
	text := "One is first. Two is second. Three is third. Four is fourth. Five is fifth."
	res, err := Summarize{}.Process(context.Background(), textResult(text), Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := res.Summary
	if s.Summary != "One is first. Two is second. Three is third." {
		t.Fatalf("unexpected summary %q", s.Summary)
	}
	if s.OriginalLength != 15 || s.SummaryLength != 9 {
		t.Fatalf("unexpected lengths %d/%d", s.OriginalLength, s.SummaryLength)
	}
	if s.CompressionRatio != 0.6 {
		t.Fatalf("expected ratio 0.6, got %v", s.CompressionRatio)
	}
	if res.Option != content.OptionSummarize || res.Title == "" || res.Icon == "" {
		t.Fatalf("expected option, title and icon to be set: %+v", res)
	}
}

func TestSummarize_AppendsPeriod(t *testing.T) {
	res, _ := Summarize{Sentences: 1}.Process(context.Background(), textResult("No period here"), Params{})
	if res.Summary.Summary != "No period here." {
		t.Fatalf("expected appended period, got %q", res.Summary.Summary)
	}
	if res.Summary.CompressionRatio != 1 {
		t.Fatalf("expected ratio 1, got %v", res.Summary.CompressionRatio)
	}
}

func TestKeywords_CatExample(t *testing.T) {
	h := NewKeywords(WithMinLength(3))
	res, err := h.Process(context.Background(), textResult("the cat sat on the mat and the cat ran fast"), Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kw := res.Keywords
	if len(kw) == 0 || kw[0].Word != "Cat" || kw[0].Frequency != 2 || kw[0].Relevance != 100 {
		t.Fatalf("expected Cat first with frequency 2 and relevance 100, got %+v", kw)
	}
	for _, k := range kw {
		if strings.EqualFold(k.Word, "the") || strings.EqualFold(k.Word, "and") {
			t.Fatalf("stop word %q leaked", k.Word)
		}
	}
	// Ties keep first-seen order: sat, mat, ran, fast.
	want := []string{"Cat", "Sat", "Mat", "Ran", "Fast"}
	if len(kw) != len(want) {
		t.Fatalf("expected %d keywords, got %+v", len(want), kw)
	}
	for i, w := range want {
		if kw[i].Word != w {
			t.Fatalf("position %d: got %q want %q", i, kw[i].Word, w)
		}
		if i > 0 && kw[i].Relevance != 50 {
			t.Fatalf("expected relevance 50 for %q, got %d", w, kw[i].Relevance)
		}
	}
}

func TestKeywords_DefaultMinLengthAndLimit(t *testing.T) {
	res, _ := NewKeywords().Process(context.Background(), textResult("the cat sat on the mat and the cat ran fast"), Params{})
	if len(res.Keywords) != 1 || res.Keywords[0].Word != "Fast" {
		t.Fatalf("expected only Fast with default min length, got %+v", res.Keywords)
	}
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"}
	res, _ = NewKeywords().Process(context.Background(), textResult(strings.Join(words, " ")), Params{})
	if len(res.Keywords) != DefaultKeywordLimit {
		t.Fatalf("expected %d keywords, got %d", DefaultKeywordLimit, len(res.Keywords))
	}
	if res.Keywords[9].Word != "Juliet" {
		t.Fatalf("expected first-seen order among ties, got %+v", res.Keywords)
	}
}

func TestTopics_SoftwareDoctor(t *testing.T) {
	text := "software software software doctor"
	res, err := Topics{}.Process(context.Background(), textResult(text), Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tp := res.Topics
	if len(tp) != 2 {
		t.Fatalf("expected two topics, got %+v", tp)
	}
	if tp[0].Name != "Technology" || tp[0].Score != 30 || tp[0].Color != TopicColors[0] {
		t.Fatalf("unexpected first topic %+v", tp[0])
	}
	if tp[1].Name != "Health" || tp[1].Score != 10 || tp[1].Color != TopicColors[1] {
		t.Fatalf("unexpected second topic %+v", tp[1])
	}
}

func TestTopics_CapTiesAndLimit(t *testing.T) {
	text := strings.Repeat("market ", 12) + "vote law school movie"
	res, _ := Topics{}.Process(context.Background(), textResult(text), Params{})
	tp := res.Topics
	if len(tp) != 4 {
		t.Fatalf("expected 4 topics, got %+v", tp)
	}
	if tp[0].Name != "Business" || tp[0].Score != 100 {
		t.Fatalf("expected capped business first, got %+v", tp[0])
	}
	if tp[1].Name != "Politics" || tp[1].Score != 20 {
		t.Fatalf("expected politics second, got %+v", tp[1])
	}
	// education and entertainment tie at 10; declaration order decides.
	if tp[2].Name != "Education" || tp[3].Name != "Entertainment" {
		t.Fatalf("expected declaration order among ties, got %+v", tp)
	}
}

type fixedScorer struct{ s sentiment.Score }

func (f fixedScorer) Score(context.Context, string) (sentiment.Score, error) { return f.s, nil }

func TestSentiment_Positive(t *testing.T) {
	h := Sentiment{Scorer: fixedScorer{sentiment.Score{Polarity: 0.6, Subjectivity: 0.5}}}
	res, err := h.Process(context.Background(), textResult("whatever"), Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := res.Sentiment
	if s.Overall != "Positive" || s.Score != 80 {
		t.Fatalf("expected Positive/80, got %s/%d", s.Overall, s.Score)
	}
	if s.Breakdown.Positive != 60 || s.Breakdown.Negative != 0 || s.Breakdown.Neutral != 40 {
		t.Fatalf("unexpected breakdown %+v", s.Breakdown)
	}
	if len(s.Insights) != 2 || s.Insights[0] != "The content expresses strong positive emotions." || s.Insights[1] != "The text contains a mix of facts and opinions." {
		t.Fatalf("unexpected insights %q", s.Insights)
	}
}

func TestSentiment_BreakdownSumsTo100(t *testing.T) {
	for p := -1.0; p <= 1.0; p += 0.05 {
		b := describeSentiment(sentiment.Score{Polarity: p}).Breakdown
		if b.Positive < 0 || b.Negative < 0 || b.Neutral < 0 {
			t.Fatalf("negative share at p=%v: %+v", p, b)
		}
		if b.Positive+b.Negative+b.Neutral != 100 {
			t.Fatalf("breakdown does not sum to 100 at p=%v: %+v", p, b)
		}
	}
	neg := describeSentiment(sentiment.Score{Polarity: -0.3, Subjectivity: 0.9})
	if neg.Overall != "Negative" || neg.Score != 35 || neg.Insights[1] != "The text is highly subjective with many opinions." {
		t.Fatalf("unexpected negative result %+v", neg)
	}
	neutral := describeSentiment(sentiment.Score{Polarity: 0.05})
	if neutral.Overall != "Neutral" || neutral.Insights[0] != "The content maintains a neutral, balanced tone." {
		t.Fatalf("unexpected neutral result %+v", neutral)
	}
}

type fakeTranslator struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.fail {
		return "", errors.New("quota exceeded")
	}
	return "[" + target + "]" + text, nil
}

func TestTranslate_ChunksInOrder(t *testing.T) {
	tr := &fakeTranslator{}
	h := Translate{Service: tr, ChunkSize: 25, Concurrency: 3}
	text := "Alpha one. Bravo two. Charlie three. Delta four."
	res, err := h.Process(context.Background(), textResult(text), Params{TargetLanguage: "French"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tl := res.Translation
	if tl.TargetCode != "fr" || tl.TargetLanguage != "French" {
		t.Fatalf("unexpected target %s/%s", tl.TargetCode, tl.TargetLanguage)
	}
	if tl.Chunks != len(tr.calls) || tl.Chunks < 2 {
		t.Fatalf("expected multiple chunk calls, got %d (%d calls)", tl.Chunks, len(tr.calls))
	}
	want := "[fr]Alpha one. Bravo two. [fr]Charlie three. [fr]Delta four."
	if tl.TranslatedText != want {
		t.Fatalf("unexpected translation:\n%q\nwant\n%q", tl.TranslatedText, want)
	}
	if tl.OriginalLength != 8 {
		t.Fatalf("expected 8 source words, got %d", tl.OriginalLength)
	}
}

func TestTranslate_ErrorIsTranslationKind(t *testing.T) {
	h := Translate{Service: &fakeTranslator{fail: true}}
	_, err := h.Process(context.Background(), textResult("Hello there."), Params{})
	if !errors.Is(err, content.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected cause in message, got %v", err)
	}
}

func TestResolveLanguage(t *testing.T) {
	cases := []struct{ in, code, name string }{
		{"spanish", "es", "Spanish"},
		{"Chinese", "zh-CN", "Chinese"},
		{"de", "de", "German"},
		{"", "es", "Spanish"},
		{"klingon", "es", "Spanish"},
	}
	for _, c := range cases {
		code, name := ResolveLanguage(c.in)
		if code != c.code || name != c.name {
			t.Fatalf("ResolveLanguage(%q)=%s/%s, want %s/%s", c.in, code, name, c.code, c.name)
		}
	}
}

type fakeRenderer struct {
	err   error
	title *string
	paras *[]string
}

func (f fakeRenderer) Render(_ context.Context, title string, paragraphs []string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.title != nil {
		*f.title = title
		*f.paras = paragraphs
	}
	return make([]byte, 2048), nil
}

func TestPDF_ResultFields(t *testing.T) {
	var title string
	var paras []string
	h := PDF{Renderer: fakeRenderer{title: &title, paras: &paras}}
	ex := textResult("First para.\n\nSecond para.\n\n\n\nThird para.")
	ex.Metadata.Link = &content.LinkMetadata{Title: "Go Concurrency Patterns"}
	res, err := h.Process(context.Background(), ex, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := res.PDF
	if title != "Go Concurrency Patterns" || len(paras) != 3 {
		t.Fatalf("renderer got title %q and %d paragraphs", title, len(paras))
	}
	if p.Filename != "Go_Concurrency_Patterns.pdf" || p.Size != "2.00 KB" || p.Bytes != 2048 || p.Pages != 1 {
		t.Fatalf("unexpected pdf result %+v", p)
	}
	if p.Message != "PDF generated successfully" || p.Base64 == "" {
		t.Fatalf("expected message and base64 payload")
	}
}

func TestPDF_DefaultTitleAndRenderError(t *testing.T) {
	var title string
	var paras []string
	res, _ := PDF{Renderer: fakeRenderer{title: &title, paras: &paras}}.Process(context.Background(), textResult("x"), Params{})
	if title != "Document" || res.PDF.Filename != "Document.pdf" {
		t.Fatalf("expected default title, got %q", title)
	}
	_, err := PDF{Renderer: fakeRenderer{err: errors.New("disk full")}}.Process(context.Background(), textResult("x"), Params{})
	if !errors.Is(err, content.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
}

func TestExtractText_CarriesImageMetadata(t *testing.T) {
	ex := textResult("Receipt total 42")
	ex.Metadata.Image = &content.ImageMetadata{Format: "png", Width: 10, Height: 20}
	res, err := ExtractText{}.Process(context.Background(), ex, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExtractedText.WordCount != 3 || res.ExtractedText.CharCount != 16 || res.ExtractedText.Image.Format != "png" {
		t.Fatalf("unexpected result %+v", res.ExtractedText)
	}
}
