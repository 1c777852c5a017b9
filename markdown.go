package domquery

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// ParseMarkdown renders Markdown to HTML and parses the result, so mixed
// corpora can be queried through one XPath surface. The rendered HTML is
// well-formed, so the tolerant defaults produce no diagnostics.
func ParseMarkdown(src string) (*Document, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return nil, &ParseError{Kind: ParseMalformed, Detail: "markdown: " + err.Error(), Err: err}
	}
	return Parse(buf.String())
}
