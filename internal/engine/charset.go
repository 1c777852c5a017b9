package engine

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel failure categories surfaced to the public error taxonomy.
var (
	// ErrMalformed means the input could not be parsed even with maximal
	// tolerance.
	ErrMalformed = errors.New("markup cannot be parsed")

	// ErrEncoding means a declared or detected character encoding could
	// not be decoded.
	ErrEncoding = errors.New("character encoding cannot be decoded")
)

// decodeInput returns markup as valid UTF-8. Input that is already valid
// UTF-8 passes through untouched; otherwise the encoding is sniffed from
// BOM and meta declarations and the bytes are transcoded.
func decodeInput(markup string) (string, error) {
	if utf8.ValidString(markup) {
		return markup, nil
	}
	enc, name, _ := charset.DetermineEncoding([]byte(markup), "")
	if enc == nil {
		return "", fmt.Errorf("%w: undetectable encoding", ErrEncoding)
	}
	out, err := enc.NewDecoder().Bytes([]byte(markup))
	if err != nil {
		return "", fmt.Errorf("%w: decode as %s: %v", ErrEncoding, name, err)
	}
	return string(out), nil
}

// resolveCharset is an encoding/xml CharsetReader. Labels are resolved
// through the WHATWG encoding index.
func resolveCharset(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported charset %q", ErrEncoding, label)
	}
	return enc.NewDecoder().Reader(input), nil
}
