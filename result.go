package domquery

import (
	"math"
	"strconv"
	"strings"
)

// ResultKind tags the variant held by an XPathResult. The tag is fixed by
// the expression's static result type under XPath 1.0, not guessed from
// runtime values.
type ResultKind int

const (
	ResultNodeSet ResultKind = iota
	ResultBoolean
	ResultNumber
	ResultString
)

func (k ResultKind) String() string {
	switch k {
	case ResultNodeSet:
		return "node-set"
	case ResultBoolean:
		return "boolean"
	case ResultNumber:
		return "number"
	}
	return "string"
}

// XPathResult is the typed result of evaluating an XPath expression: an
// ordered node sequence, a number, a boolean, or a string. The coercion
// methods implement XPath 1.0's cross-type conversion rules exactly.
type XPathResult struct {
	kind    ResultKind
	nodes   []Node
	num     float64
	boolean bool
	str     string
}

func nodeSetResult(nodes []Node) XPathResult { return XPathResult{kind: ResultNodeSet, nodes: nodes} }
func numberResult(n float64) XPathResult     { return XPathResult{kind: ResultNumber, num: n} }
func booleanResult(b bool) XPathResult       { return XPathResult{kind: ResultBoolean, boolean: b} }
func stringResult(s string) XPathResult      { return XPathResult{kind: ResultString, str: s} }

// Kind returns the variant tag.
func (r XPathResult) Kind() ResultKind { return r.kind }

// NodeSet returns the node sequence and whether the result is one. There
// is no conversion from the other variants to a node-set.
func (r XPathResult) NodeSet() ([]Node, bool) {
	if r.kind != ResultNodeSet {
		return nil, false
	}
	return r.nodes, true
}

// Boolean converts the result per XPath 1.0 boolean(): a number is true
// unless zero or NaN, a string is true unless empty, a node-set is true
// unless empty.
func (r XPathResult) Boolean() bool {
	switch r.kind {
	case ResultBoolean:
		return r.boolean
	case ResultNumber:
		return r.num != 0 && !math.IsNaN(r.num)
	case ResultString:
		return r.str != ""
	default:
		return len(r.nodes) > 0
	}
}

// Number converts the result per XPath 1.0 number(): true is 1 and false
// is 0, a string is parsed as an XPath number or NaN, a node-set is the
// number value of its string value.
func (r XPathResult) Number() float64 {
	switch r.kind {
	case ResultNumber:
		return r.num
	case ResultBoolean:
		if r.boolean {
			return 1
		}
		return 0
	case ResultString:
		return numberFromString(r.str)
	default:
		return numberFromString(r.String())
	}
}

// String converts the result per XPath 1.0 string(): numbers use XPath
// formatting ("2", not "2.0"; "NaN"; "Infinity"), booleans become "true"
// or "false", a node-set becomes the string value of its first node, or
// "" when empty.
func (r XPathResult) String() string {
	switch r.kind {
	case ResultString:
		return r.str
	case ResultNumber:
		return formatNumber(r.num)
	case ResultBoolean:
		return strconv.FormatBool(r.boolean)
	default:
		if len(r.nodes) == 0 {
			return ""
		}
		return r.nodes[0].Text()
	}
}

// numberFromString implements XPath 1.0 number(string). The grammar is
// narrower than Go's: optional minus, digits, optional fraction. Anything
// else is NaN.
func numberFromString(s string) float64 {
	s = strings.TrimSpace(s)
	if !validXPathNumber(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func validXPathNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	digits, dot := 0, false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// formatNumber implements XPath 1.0 string(number).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// Collapses negative zero.
		return "0"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
