package content

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsKindSentinelAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(KindExtraction, cause, "fetch %s", "https://example.com")

	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected errors.Is(err, ErrExtraction)")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if errors.Is(err, ErrRender) {
		t.Fatalf("did not expect render sentinel")
	}
	if got := err.Error(); got != "fetch https://example.com: dial tcp: refused" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("process: %w", Errorf(KindNoContent, "no text available"))
	if KindOf(err) != KindNoContent {
		t.Fatalf("expected no_content, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatalf("expected internal kind for plain errors")
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseInputType("LINK"); err != nil {
		t.Fatalf("expected case-insensitive input type: %v", err)
	}
	if _, err := ParseInputType("video"); err == nil {
		t.Fatalf("expected error for unknown input type")
	}
	if o, err := ParseOption("detect_objects"); err != nil || o != OptionDetectObjects {
		t.Fatalf("expected declared option to parse, got %q %v", o, err)
	}
	if _, err := ParseOption("paint"); err == nil {
		t.Fatalf("expected error for unknown option")
	}
}
