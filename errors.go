package domquery

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The concrete errors
// returned by the package are *ParseError and *XPathError values carrying
// one of these as their category.
var (
	// ErrMalformed: input could not be parsed even with maximal tolerance.
	ErrMalformed = errors.New("markup is malformed beyond recovery")

	// ErrEncoding: declared or detected character encoding could not be
	// decoded.
	ErrEncoding = errors.New("character encoding cannot be decoded")

	// ErrInvalidExpression: an XPath expression failed to compile.
	ErrInvalidExpression = errors.New("invalid xpath expression")

	// ErrTypeMismatch: the evaluated result is incompatible with the
	// requested extraction and no XPath conversion applies.
	ErrTypeMismatch = errors.New("xpath result type mismatch")

	// ErrEvaluationFailure: the engine failed during evaluation for a
	// reason other than expression syntax.
	ErrEvaluationFailure = errors.New("xpath evaluation failed")

	// ErrDocumentClosed: an operation was attempted on a Document after
	// Close.
	ErrDocumentClosed = errors.New("document has been closed")
)

// ParseErrorKind classifies parse failures.
type ParseErrorKind int

const (
	ParseMalformed ParseErrorKind = iota
	ParseEncoding
)

func (k ParseErrorKind) String() string {
	if k == ParseEncoding {
		return "encoding"
	}
	return "malformed"
}

// ParseError is returned when input cannot be turned into a Document.
// Recoverable markup defects are not errors; the tolerant parse path
// absorbs them.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("parse: %s", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == ParseMalformed
	case ErrEncoding:
		return e.Kind == ParseEncoding
	}
	return false
}

// XPathErrorKind classifies query failures.
type XPathErrorKind int

const (
	XPathInvalidExpression XPathErrorKind = iota
	XPathTypeMismatch
	XPathEvaluationFailure
)

func (k XPathErrorKind) String() string {
	switch k {
	case XPathInvalidExpression:
		return "invalid-expression"
	case XPathTypeMismatch:
		return "type-mismatch"
	}
	return "evaluation-failure"
}

// XPathError is returned by query compilation and evaluation. Expr holds
// the offending expression text for diagnosability.
type XPathError struct {
	Kind XPathErrorKind
	Expr string
	Err  error
}

func (e *XPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xpath %q: %s: %v", e.Expr, e.Kind, e.Err)
	}
	return fmt.Sprintf("xpath %q: %s", e.Expr, e.Kind)
}

func (e *XPathError) Unwrap() error { return e.Err }

func (e *XPathError) Is(target error) bool {
	switch target {
	case ErrInvalidExpression:
		return e.Kind == XPathInvalidExpression
	case ErrTypeMismatch:
		return e.Kind == XPathTypeMismatch
	case ErrEvaluationFailure:
		return e.Kind == XPathEvaluationFailure
	}
	return false
}
