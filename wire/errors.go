package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by a Writer or Reader matches exactly one
// of these with errors.Is.
var (
	// ErrIO means the underlying io.Writer failed.
	ErrIO = errors.New("wire: io failure")

	// ErrTruncated means fewer bytes were available than a length prefix or
	// a field value requires.
	ErrTruncated = errors.New("wire: truncated data")

	// ErrMalformed means the bytes can never form a valid message.
	ErrMalformed = errors.New("wire: malformed data")

	// ErrSizeMismatch means a Writable wrote a different number of bytes than
	// its Size method reported.
	ErrSizeMismatch = errors.New("wire: size mismatch")
)

// Malformed causes.
var (
	ErrVarintOverflow      = fmt.Errorf("%w: varint overflows 64 bits", ErrMalformed)
	ErrInvalidUTF8         = fmt.Errorf("%w: string field contains invalid utf-8", ErrMalformed)
	ErrUnsupportedWireType = fmt.Errorf("%w: unsupported wire type", ErrMalformed)
	ErrInvalidFieldNumber  = fmt.Errorf("%w: invalid field number", ErrMalformed)
	ErrDepthExceeded       = fmt.Errorf("%w: message nesting too deep", ErrMalformed)
)

// Kind classifies an error by the vocabulary above.
type Kind int

const (
	KindNone Kind = iota
	KindIO
	KindTruncated
	KindMalformed
	KindSizeMismatch
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIO:
		return "io"
	case KindTruncated:
		return "truncated"
	case KindMalformed:
		return "malformed"
	case KindSizeMismatch:
		return "size_mismatch"
	default:
		return "other"
	}
}

// KindOf returns the kind of err, KindNone for nil.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTruncated):
		return KindTruncated
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.Is(err, ErrSizeMismatch):
		return KindSizeMismatch
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindOther
	}
}

func truncated(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrTruncated, fmt.Sprintf(format, args...))
}

func ioFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath  []string // e.g., ["messages1", "messages2", "value"]
	Err        error    // underlying error
	IsDecoding bool
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	op := "encoding"
	if e.IsDecoding {
		op = "decoding"
	}
	return fmt.Sprintf("%s error at proto path %s: %v", op, strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapDecodingError prefixes fieldName to the path of err. Records call it
// from their decode loop so nested failures read as a.b.c.
func WrapDecodingError(err error, fieldName string) error {
	return wrapWithField(err, fieldName, true)
}

// WrapEncodingError is the writer-side counterpart of WrapDecodingError.
func WrapEncodingError(err error, fieldName string) error {
	return wrapWithField(err, fieldName, false)
}

// wrapWithField wraps an error with a field name
func wrapWithField(err error, fieldName string, decoding bool) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			FieldPath:  append([]string{fieldName}, fe.FieldPath...),
			Err:        fe.Err,
			IsDecoding: fe.IsDecoding,
		}
	}

	return &FieldError{
		FieldPath:  []string{fieldName},
		Err:        err,
		IsDecoding: decoding,
	}
}
