// Package domquery parses real-world (possibly malformed) HTML and XML
// into a navigable tree and queries it with XPath 1.0.
//
// A Document owns exactly one parsed tree. Node values are lightweight
// references into that tree: they are created by navigation and query
// operations, never directly, and their validity is derivative of the
// Document's. Closing a Document releases the tree once; afterwards every
// operation on the Document or its Nodes fails deterministically (query
// operations return ErrDocumentClosed, navigation returns its none/empty
// value) instead of observing freed state.
//
// A Document and its Nodes are not safe for concurrent use. Queries
// mutate per-document state (the compiled-expression registry), and
// locking every traversal would be prohibitive for read-heavy workloads;
// callers needing parallelism should give each worker its own Document.
package domquery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xpath"

	"github.com/dgallion1/domquery/internal/engine"
)

// Document is a parsed HTML or XML document and the owner of its tree.
type Document struct {
	root     *engine.Node
	opts     ParseOptions
	htmlMode bool
	closed   bool

	// Compiled expressions, keyed by expression text. Lazily filled,
	// never shared across documents.
	exprs map[string]*xpath.Expr
}

// Parse parses HTML with DefaultOptions. Structural defects are repaired
// into a best-effort tree; only input the engine cannot treat as markup
// at all (for example, empty input) fails.
func Parse(markup string) (*Document, error) {
	return ParseWithOptions(markup, DefaultOptions())
}

// ParseHTML is Parse under an explicit name.
func ParseHTML(markup string) (*Document, error) {
	return Parse(markup)
}

// ParseWithOptions parses HTML with explicit options. NoError and
// NoWarning only suppress diagnostic logging; they never change the
// resulting tree shape.
func ParseWithOptions(markup string, opts ParseOptions) (*Document, error) {
	root, err := engine.ParseHTML(markup, engine.Options{
		Recover:   opts.Recover,
		NoError:   opts.NoError,
		NoWarning: opts.NoWarning,
		NoBlanks:  opts.NoBlanks,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, wrapParseErr(err)
	}
	return &Document{root: root, opts: opts, htmlMode: true}, nil
}

// ParseXML parses XML strictly with DefaultXMLOptions. There is no
// recovery: ill-formed XML fails with ErrMalformed.
func ParseXML(markup string) (*Document, error) {
	return ParseXMLWithOptions(markup, DefaultXMLOptions())
}

// ParseXMLWithOptions parses XML with explicit options.
func ParseXMLWithOptions(markup string, opts XMLParseOptions) (*Document, error) {
	root, err := engine.ParseXML(markup, engine.XMLOptions{
		NoBlanks:   opts.NoBlanks,
		NoDTD:      opts.NoDTD,
		NoEntities: opts.NoEntities,
	})
	if err != nil {
		return nil, wrapParseErr(err)
	}
	return &Document{root: root, opts: ParseOptions{}, htmlMode: false}, nil
}

func wrapParseErr(err error) error {
	kind := ParseMalformed
	if errors.Is(err, engine.ErrEncoding) {
		kind = ParseEncoding
	}
	return &ParseError{Kind: kind, Detail: err.Error(), Err: err}
}

// Close releases the tree. It is idempotent. After Close, Nodes derived
// from the document are invalid: query operations fail with
// ErrDocumentClosed and navigation returns its none/empty value.
func (d *Document) Close() {
	d.root = nil
	d.exprs = nil
	d.closed = true
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool { return d.closed }

// Root returns the document's root element.
func (d *Document) Root() (Node, bool) {
	if d.closed {
		return Node{}, false
	}
	if r := d.root.RootElement(); r != nil {
		return Node{doc: d, n: r}, true
	}
	return Node{}, false
}

// IsEmpty reports whether the document has no root element.
func (d *Document) IsEmpty() bool {
	_, ok := d.Root()
	return !ok
}

// Evaluate compiles and evaluates an XPath 1.0 expression with the
// document node as context, returning the typed result.
func (d *Document) Evaluate(expr string) (XPathResult, error) {
	if d.closed {
		return XPathResult{}, closedErr(expr)
	}
	return d.evaluateAt(d.root, expr)
}

// Select evaluates expr rooted at the document node and returns the
// matching nodes in document order. An expression that matches nothing
// returns an empty sequence, not an error; an expression whose result is
// not a node-set fails with ErrTypeMismatch.
func (d *Document) Select(expr string) ([]Node, error) {
	if d.closed {
		return nil, closedErr(expr)
	}
	return d.selectAt(d.root, expr)
}

// ExtractTexts evaluates expr and returns the trimmed text content of
// each matching node.
func (d *Document) ExtractTexts(expr string) ([]string, error) {
	nodes, err := d.Select(expr)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, strings.TrimSpace(n.Text()))
	}
	return texts, nil
}

// ExtractNumber evaluates expr and converts the result to a number per
// XPath 1.0 rules. Suits count(), sum() and comparison-free arithmetic.
func (d *Document) ExtractNumber(expr string) (float64, error) {
	r, err := d.Evaluate(expr)
	if err != nil {
		return 0, err
	}
	return r.Number(), nil
}

// ExtractBoolean evaluates expr and converts the result to a boolean per
// XPath 1.0 rules.
func (d *Document) ExtractBoolean(expr string) (bool, error) {
	r, err := d.Evaluate(expr)
	if err != nil {
		return false, err
	}
	return r.Boolean(), nil
}

// ExtractString evaluates expr and converts the result to a string per
// XPath 1.0 rules: a node-set becomes the string value of its first node.
func (d *Document) ExtractString(expr string) (string, error) {
	r, err := d.Evaluate(expr)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (d *Document) compile(expr string) (*xpath.Expr, error) {
	if e, ok := d.exprs[expr]; ok {
		return e, nil
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, &XPathError{Kind: XPathInvalidExpression, Expr: expr, Err: err}
	}
	if d.exprs == nil {
		d.exprs = make(map[string]*xpath.Expr)
	}
	d.exprs[expr] = e
	return e, nil
}

func (d *Document) selectAt(ctx *engine.Node, expr string) ([]Node, error) {
	r, err := d.evaluateAt(ctx, expr)
	if err != nil {
		return nil, err
	}
	nodes, ok := r.NodeSet()
	if !ok {
		return nil, &XPathError{Kind: XPathTypeMismatch, Expr: expr}
	}
	return nodes, nil
}

func (d *Document) evaluateAt(ctx *engine.Node, expr string) (res XPathResult, err error) {
	e, err := d.compile(expr)
	if err != nil {
		return XPathResult{}, err
	}

	// The evaluator panics on some malformed runtime states; surface
	// those as evaluation failures rather than crashing the caller.
	defer func() {
		if r := recover(); r != nil {
			res = XPathResult{}
			err = &XPathError{Kind: XPathEvaluationFailure, Expr: expr, Err: panicErr(r)}
		}
	}()

	switch v := e.Evaluate(engine.NewNavigator(d.root, ctx)).(type) {
	case *xpath.NodeIterator:
		var nodes []Node
		for v.MoveNext() {
			nav, ok := v.Current().(*engine.Navigator)
			if !ok {
				return XPathResult{}, &XPathError{Kind: XPathEvaluationFailure, Expr: expr}
			}
			nodes = append(nodes, Node{doc: d, n: nav.CurrentNode()})
		}
		return nodeSetResult(nodes), nil
	case float64:
		return numberResult(v), nil
	case bool:
		return booleanResult(v), nil
	case string:
		return stringResult(v), nil
	default:
		return XPathResult{}, &XPathError{Kind: XPathEvaluationFailure, Expr: expr}
	}
}

func panicErr(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}

func closedErr(expr string) error {
	return &XPathError{Kind: XPathEvaluationFailure, Expr: expr, Err: ErrDocumentClosed}
}
