package engine

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Defect is one structural problem found by the strictness scan.
// Recovery and diagnostics are orthogonal: the tolerant parser repairs
// every defect regardless of whether it is reported.
type Defect struct {
	Line    int
	Msg     string
	Warning bool
}

// voidElements never take end tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// optionalEnd lists elements whose end tag HTML allows to be omitted.
// Leaving them open is reported as a warning rather than an error.
var optionalEnd = map[string]bool{
	"html": true, "head": true, "body": true, "p": true, "li": true,
	"dd": true, "dt": true, "td": true, "th": true, "tr": true,
	"tbody": true, "thead": true, "tfoot": true, "option": true,
	"optgroup": true, "colgroup": true, "caption": true,
}

// scanHTML tokenizes markup and reports tags left open and end tags with
// no matching start. It never repairs anything; the tolerant parse that
// follows does.
func scanHTML(markup string) []Defect {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		defects []Defect
		stack   []string
		line    = 1
	)
	for {
		tt := z.Next()
		tokLine := line
		line += bytes.Count(z.Raw(), []byte{'\n'})

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				defects = append(defects, Defect{Line: tokLine, Msg: fmt.Sprintf("tokenizer: %v", err)})
				return defects
			}
			for i := len(stack) - 1; i >= 0; i-- {
				defects = append(defects, Defect{
					Line:    line,
					Msg:     fmt.Sprintf("unclosed element <%s>", stack[i]),
					Warning: optionalEnd[stack[i]],
				})
			}
			return defects

		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				stack = append(stack, string(name))
			}

		case html.SelfClosingTagToken:
			// HTML has no self-closing syntax for non-void elements; the
			// tolerant parser treats <div/> as an open <div>.
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				defects = append(defects, Defect{Line: tokLine, Msg: fmt.Sprintf("self-closing tag <%s/> on non-void element", name)})
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if n := len(stack); n > 0 && stack[n-1] == tag {
				stack = stack[:n-1]
				continue
			}
			at := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == tag {
					at = i
					break
				}
			}
			if at < 0 {
				defects = append(defects, Defect{Line: tokLine, Msg: fmt.Sprintf("stray end tag </%s>", tag)})
				continue
			}
			for i := len(stack) - 1; i > at; i-- {
				defects = append(defects, Defect{
					Line:    tokLine,
					Msg:     fmt.Sprintf("end tag </%s> implies unclosed element <%s>", tag, stack[i]),
					Warning: optionalEnd[stack[i]],
				})
			}
			stack = stack[:at]
		}
	}
}
