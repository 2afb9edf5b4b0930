package content

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable class of a pipeline failure.
type Kind string

const (
	KindEmptyInput             Kind = "empty_input"
	KindExtraction             Kind = "extraction_failed"
	KindUnsupportedCombination Kind = "unsupported_combination"
	KindNoContent              Kind = "no_content"
	KindTranslation            Kind = "translation_failed"
	KindRender                 Kind = "render_failed"
	KindInternal               Kind = "internal_error"
)

// Sentinels for errors.Is checks. Every *Error unwraps to the sentinel of
// its kind.
var (
	ErrEmptyInput             = errors.New("empty input")
	ErrExtraction             = errors.New("extraction failed")
	ErrUnsupportedCombination = errors.New("unsupported combination")
	ErrNoContent              = errors.New("no content")
	ErrTranslation            = errors.New("translation failed")
	ErrRender                 = errors.New("render failed")
)

var sentinels = map[Kind]error{
	KindEmptyInput:             ErrEmptyInput,
	KindExtraction:             ErrExtraction,
	KindUnsupportedCombination: ErrUnsupportedCombination,
	KindNoContent:              ErrNoContent,
	KindTranslation:            ErrTranslation,
	KindRender:                 ErrRender,
}

// Error carries a failure kind, a human-readable message and the
// underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := sentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Errorf builds an *Error of the given kind without a cause.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
