package preprocess

import (
	"strings"
	"testing"
)

func TestText_CollapsesWhitespaceAndBlankLines(t *testing.T) {
	in := "  First   line\twith  tabs\r\ncontinues here.\r\n\r\n\r\n\r\nSecond paragraph.  \n \n\n  \n  Third.  "
	got := Text(in)
	want := "First line with tabs continues here.\n\nSecond paragraph.\n\nThird."
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}

func TestText_Invariants(t *testing.T) {
	inputs := []string{
		"a  b",
		"a\n\n\n\n\nb",
		"\r\r\r x \r\n\r\n y",
		"   ",
		"one\ntwo\nthree",
		"tab\t\t\tseparated\n\t\n\t\nwords",
	}
	for _, in := range inputs {
		out := Text(in)
		if strings.Contains(out, "  ") {
			t.Fatalf("double space in %q -> %q", in, out)
		}
		if strings.Contains(out, "\n\n\n") {
			t.Fatalf("3+ newlines in %q -> %q", in, out)
		}
		if strings.Contains(out, "\r") {
			t.Fatalf("carriage return survived in %q -> %q", in, out)
		}
		if out != strings.TrimSpace(out) {
			t.Fatalf("output not trimmed: %q", out)
		}
	}
}

func TestText_Empty(t *testing.T) {
	if got := Text(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestLink_StripsArtifactsAndCounts(t *testing.T) {
	in := "Go is a language[1] created at Google{ref-2}.  It  compiles fast[citation needed].\n\n\n\nIt has goroutines."
	got := Link(in)
	want := "Go is a language created at Google. It compiles fast.\n\nIt has goroutines."
	if got.Text != want {
		t.Fatalf("unexpected text %q", got.Text)
	}
	if got.WordCount != 13 {
		t.Fatalf("expected 13 words, got %d", got.WordCount)
	}
	if got.ReadTimeMinutes != 1 {
		t.Fatalf("expected minimum of 1 minute, got %d", got.ReadTimeMinutes)
	}
}

func TestReadTimeMinutes(t *testing.T) {
	cases := map[int]int{0: 1, 99: 1, 200: 1, 299: 1, 300: 2, 1000: 5, 1100: 6}
	for words, want := range cases {
		if got := ReadTimeMinutes(words); got != want {
			t.Fatalf("ReadTimeMinutes(%d)=%d, want %d", words, got, want)
		}
	}
	if ReadTime(4) != "4 min read" {
		t.Fatalf("unexpected read time format %q", ReadTime(4))
	}
}
