// Package donerr defines the error taxonomy shared by the tag model,
// auto-tagger, binary codec, and text codec.
package donerr

import "fmt"

// ErrorCode defines a type for specific error codes within the codec.
type ErrorCode int

// Defines the error kinds a codec operation can fail with.
const (
	// ErrUnknown is used only as a zero value; codec operations always
	// return one of the more specific codes below.
	ErrUnknown ErrorCode = iota

	// ErrUnsupportedType means Autotag received a value of a shape not
	// enumerated by its policy.
	ErrUnsupportedType

	// ErrTooWide means an integer fits none of the integer tags, up to
	// and including INT64. A value that only exceeds an explicit
	// preferred tag's range is not an error: Autotag falls back to the
	// narrowest tag that fits it.
	ErrTooWide

	// ErrUnknownTag means binary decode encountered a tag byte outside
	// the defined set.
	ErrUnknownTag

	// ErrTruncated means binary decode needed more bytes than remained.
	ErrTruncated

	// ErrTrailingBytes means a top-level binary decode left residual
	// bytes after parsing one object.
	ErrTrailingBytes

	// ErrTrailingCharacters means a top-level text decode left residual
	// non-whitespace input after parsing one object.
	ErrTrailingCharacters

	// ErrParseError means text decode could not match any grammar
	// alternative at a position.
	ErrParseError

	// ErrTrailingComma is a specific sub-kind of ErrParseError: a comma
	// was not followed by another object.
	ErrTrailingComma

	// ErrCountMismatch means a LIST or DICTIONARY item_count disagreed
	// with the number of items actually decoded from the byte_length
	// region.
	ErrCountMismatch

	// ErrBadLength means a hex literal had odd length, or a length
	// prefix exceeded the remaining buffer.
	ErrBadLength

	// ErrInvalidDictKey means a dictionary key's tag was not a text tag.
	ErrInvalidDictKey

	// ErrMixedListTags means a LIST's children disagreed on tag.
	ErrMixedListTags
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrTooWide:
		return "TooWide"
	case ErrUnknownTag:
		return "UnknownTag"
	case ErrTruncated:
		return "Truncated"
	case ErrTrailingBytes:
		return "TrailingBytes"
	case ErrTrailingCharacters:
		return "TrailingCharacters"
	case ErrParseError:
		return "ParseError"
	case ErrTrailingComma:
		return "TrailingComma"
	case ErrCountMismatch:
		return "CountMismatch"
	case ErrBadLength:
		return "BadLength"
	case ErrInvalidDictKey:
		return "InvalidDictKey"
	case ErrMixedListTags:
		return "MixedListTags"
	default:
		return "Unknown"
	}
}

// Error is the codec's error type. It carries a code, a message, and an
// optional wrapped cause.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, a ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Code, e.cause)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

// Cause returns the underlying cause of the error, or nil.
func (e *Error) Cause() error {
	return e.cause
}

// Unwrap supports errors.Is / errors.As over the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}
