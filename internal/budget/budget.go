// Package budget sizes model prompts against an estimated context window.
package budget

import (
	"math"
	"strings"
	"unicode/utf8"
)

// charsPerToken is the conservative heuristic used for estimates.
const charsPerToken = 4

// EstimateTokensFromChars converts a character count into an estimated token
// count (~4 chars per token). The result is at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / charsPerToken))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(utf8.RuneCountInString(s))
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to 8192.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	for _, s := range suffixSizes {
		if strings.HasSuffix(name, s.suffix) {
			return s.tokens
		}
	}
	if strings.Contains(name, "-mini") {
		return 128_000
	}
	return 8192
}

// HeadroomTokens is subtracted from the context to absorb tokenizer and
// message framing overhead: the larger of 5% of the context or 512 tokens.
func HeadroomTokens(modelName string) int {
	dyn := int(math.Ceil(float64(ModelContextTokens(modelName)) * 0.05))
	if dyn < 512 {
		return 512
	}
	return dyn
}

// RemainingContext returns the input tokens left after the system prompt,
// the output reservation and headroom. Never negative.
func RemainingContext(modelName, system string, reservedForOutput int) int {
	if reservedForOutput < 0 {
		reservedForOutput = 0
	}
	rem := ModelContextTokens(modelName) - HeadroomTokens(modelName) - reservedForOutput - EstimateTokens(system)
	if rem < 0 {
		return 0
	}
	return rem
}

// FitText truncates text at a rune boundary so that system plus text fit
// the model with reservedForOutput tokens left for the answer.
func FitText(modelName, system, text string, reservedForOutput int) string {
	limit := RemainingContext(modelName, system, reservedForOutput) * charsPerToken
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

// TranslationChunkChars caps a translation chunk so that both the chunk and
// a translation of similar length fit the model. It returns the smaller of
// want and that cap, and at least 1.
func TranslationChunkChars(modelName, system string, want int) int {
	capChars := RemainingContext(modelName, system, 0) / 2 * charsPerToken
	n := want
	if capChars < n {
		n = capChars
	}
	if n < 1 {
		return 1
	}
	return n
}

// knownModelMax contains rough context sizes for common model identifiers.
var knownModelMax = map[string]int{
	"gpt-4o":             128_000,
	"gpt-4o-mini":        128_000,
	"gpt-4-turbo":        128_000,
	"gpt-3.5-turbo":      16_384,
	"llama-3":            8_192,
	"llama-3.1":          128_000,
	"mistral-7b":         32_768,
	"qwen2.5-7b":         32_768,
	"openai/gpt-oss-20b": 4_096,
	"gpt-oss-20b":        4_096,
}

var suffixSizes = []struct {
	suffix string
	tokens int
}{
	{"1m", 1_000_000},
	{"512k", 512_000},
	{"200k", 200_000},
	{"128k", 128_000},
	{"32k", 32_768},
}
