package sentiment

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"
)

func TestSourcesAreGofmtClean(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil || len(files) == 0 {
		t.Fatalf("expected go files, got %v %v", files, err)
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		want, err := format.Source(src)
		if err != nil {
			t.Fatalf("format %s: %v", f, err)
		}
		if !bytes.Equal(src, want) {
			t.Fatalf("%s is not gofmt formatted", f)
		}
	}
}
