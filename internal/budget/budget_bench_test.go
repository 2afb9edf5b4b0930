package budget

import (
	"fmt"
	"strings"
	"testing"
)

func BenchmarkEstimateTokens(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		s := strings.Repeat("a", n)
		b.Run(fmt.Sprintf("chars=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = EstimateTokens(s)
			}
		})
	}
}

func BenchmarkFitText(b *testing.B) {
	text := strings.Repeat("word ", 20_000)
	for _, model := range []string{"gpt-4o", "gpt-oss-20b", "mystery-model"} {
		b.Run(model, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FitText(model, "system", text, 64)
			}
		})
	}
}
