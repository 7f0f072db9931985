package timeline

import "errors"

// Error kinds reported by ErrorKind.
const (
	KindNotFound   = "not_found"
	KindValidation = "validation"
	KindLocked     = "locked"
)

// ErrorClassifier is implemented by errors that declare a kind.
type ErrorClassifier interface {
	ErrorKind() string
}

type kindError struct {
	kind string
	err  error
}

func (e *kindError) Error() string     { return e.err.Error() }
func (e *kindError) Unwrap() error     { return e.err }
func (e *kindError) ErrorKind() string { return e.kind }

func newKindError(kind, msg string) error {
	return &kindError{kind: kind, err: errors.New(msg)}
}

var (
	ErrTrackNotFound  = newKindError(KindNotFound, "track not found")
	ErrMediaNotFound  = newKindError(KindNotFound, "media not found")
	ErrNotPermutation = newKindError(KindValidation, "track order is not a permutation of existing tracks")
	ErrTypeChange     = newKindError(KindValidation, "media type cannot change")
	ErrInvalidSplit   = newKindError(KindValidation, "split point leaves a segment shorter than the minimum duration")
	ErrMissingPayload = newKindError(KindValidation, "media payload is required")
	ErrTrackLocked    = newKindError(KindLocked, "track is locked")
)

// Kind returns the classification of err, or "" when none is declared.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

// IsNotFound reports whether err refers to an unknown track or media.
func IsNotFound(err error) bool {
	return Kind(err) == KindNotFound
}
