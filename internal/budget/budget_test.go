package budget

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEstimateTokensFromChars(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{400, 100},
	}
	for _, c := range cases {
		if got := EstimateTokensFromChars(c.in); got != c.want {
			t.Fatalf("EstimateTokensFromChars(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	// Runes, not bytes.
	if got := EstimateTokens("ääää"); got != 1 {
		t.Fatalf("EstimateTokens counts runes, got %d", got)
	}
}

func TestModelContextTokens(t *testing.T) {
	if ModelContextTokens("") != 8192 {
		t.Fatal("empty model should default to 8192")
	}
	if ModelContextTokens("LLAMA-3.1") < 100_000 {
		t.Fatal("case-insensitive match for llama-3.1 should be ~128k")
	}
	if ModelContextTokens("mystery-512k") != 512_000 {
		t.Fatal("numeric suffix heuristic 512k should map to 512k tokens")
	}
	if HeadroomTokens("") != 512 {
		t.Fatalf("default model headroom should floor to 512")
	}
}

func TestFitText(t *testing.T) {
	short := "A short review."
	if got := FitText("gpt-4o", "sys", short, 64); got != short {
		t.Fatalf("short text must pass through, got %q", got)
	}
	long := strings.Repeat("ö", 100_000)
	got := FitText("gpt-oss-20b", "sys", long, 64)
	want := RemainingContext("gpt-oss-20b", "sys", 64) * 4
	if n := utf8.RuneCountInString(got); n != want {
		t.Fatalf("expected %d runes, got %d", want, n)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation must keep valid UTF-8")
	}
}

func TestRemainingContextClamps(t *testing.T) {
	if got := RemainingContext("gpt-oss-20b", "", 1_000_000); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestTranslationChunkChars(t *testing.T) {
	if got := TranslationChunkChars("gpt-4o", "sys", 4500); got != 4500 {
		t.Fatalf("large model keeps requested size, got %d", got)
	}
	small := TranslationChunkChars("tiny-model-2k", strings.Repeat("s", 40_000), 4500)
	if small != 1 {
		t.Fatalf("exhausted context should floor at 1, got %d", small)
	}
	if got := TranslationChunkChars("gpt-oss-20b", "", 100_000); got >= 100_000 || got < 1000 {
		t.Fatalf("expected capped chunk size, got %d", got)
	}
}
