package domquery

import (
	"fmt"
	"strings"

	"github.com/dgallion1/domquery/internal/engine"
)

// NodeKind is the type of a node in the parsed tree.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindDocument
	KindElement
	KindAttribute
	KindText
	KindCData
	KindProcessingInstruction
	KindComment
	KindDoctype
)

// Name returns the conventional lowercase name for the kind.
func (k NodeKind) Name() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	case KindText:
		return "text"
	case KindCData:
		return "cdata"
	case KindProcessingInstruction:
		return "processing-instruction"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "document-type"
	}
	return "unknown"
}

func (k NodeKind) String() string { return k.Name() }

func (k NodeKind) IsElement() bool   { return k == KindElement }
func (k NodeKind) IsText() bool      { return k == KindText || k == KindCData }
func (k NodeKind) IsAttribute() bool { return k == KindAttribute }
func (k NodeKind) IsComment() bool   { return k == KindComment }

func kindOf(k engine.Kind) NodeKind {
	switch k {
	case engine.KindDocument:
		return KindDocument
	case engine.KindElement:
		return KindElement
	case engine.KindAttribute:
		return KindAttribute
	case engine.KindText:
		return KindText
	case engine.KindCData:
		return KindCData
	case engine.KindProcInst:
		return KindProcessingInstruction
	case engine.KindComment:
		return KindComment
	case engine.KindDoctype:
		return KindDoctype
	}
	return KindUnknown
}

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is a reference into a Document's tree. Nodes are created by
// navigation and query operations, are cheap to copy (copying never
// copies the subtree), and are only valid while their Document is open.
// Navigation never fails: absence is an empty sequence or a false second
// return, and every operation on a closed Document deterministically
// returns its none/empty value.
type Node struct {
	doc *Document
	n   *engine.Node
}

func (n Node) alive() bool {
	return n.doc != nil && !n.doc.closed && n.n != nil
}

// Kind returns the node's kind.
func (n Node) Kind() NodeKind {
	if !n.alive() {
		return KindUnknown
	}
	return kindOf(n.n.Kind)
}

// TagName returns the element's tag name. Attribute nodes return the
// attribute name; every other kind returns "".
func (n Node) TagName() string {
	if !n.alive() {
		return ""
	}
	switch n.n.Kind {
	case engine.KindElement, engine.KindAttribute:
		return n.n.Name
	}
	return ""
}

// Text returns the node's text content: for elements, the concatenation
// of all descendant text in document order; for text, comment and
// attribute nodes, their own content.
func (n Node) Text() string {
	if !n.alive() {
		return ""
	}
	return n.n.StringValue()
}

// Path returns an absolute positional XPath expression identifying this
// node's location, e.g. /html/body/ul/li[1]. A positional predicate is
// emitted only when the node has same-named siblings. Evaluating the
// path against the same document yields exactly this node. Doctype
// nodes are outside the XPath data model and cannot be addressed; for
// them the path is informational only.
func (n Node) Path() string {
	if !n.alive() {
		return ""
	}
	if n.n.Kind == engine.KindDocument {
		return "/"
	}
	var steps []string
	for cur := n.n; cur != nil && cur.Kind != engine.KindDocument; cur = cur.Parent {
		steps = append(steps, pathStep(cur))
	}
	var sb strings.Builder
	for i := len(steps) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(steps[i])
	}
	return sb.String()
}

func pathStep(cur *engine.Node) string {
	switch cur.Kind {
	case engine.KindAttribute:
		return "@" + cur.Name
	case engine.KindElement:
		idx, total := positionAmong(cur, func(s *engine.Node) bool {
			return s.Kind == engine.KindElement && s.Name == cur.Name
		})
		if total > 1 {
			return fmt.Sprintf("%s[%d]", cur.Name, idx)
		}
		return cur.Name
	case engine.KindText, engine.KindCData:
		return positionalStep(cur, "text()", func(s *engine.Node) bool {
			return s.Kind == engine.KindText || s.Kind == engine.KindCData
		})
	case engine.KindComment:
		return positionalStep(cur, "comment()", func(s *engine.Node) bool {
			return s.Kind == engine.KindComment
		})
	case engine.KindProcInst:
		return fmt.Sprintf("processing-instruction('%s')", cur.Name)
	}
	return cur.Kind.Name()
}

func positionalStep(cur *engine.Node, step string, match func(*engine.Node) bool) string {
	idx, total := positionAmong(cur, match)
	if total > 1 {
		return fmt.Sprintf("%s[%d]", step, idx)
	}
	return step
}

// positionAmong returns cur's 1-based position among the matching
// siblings and how many there are in total.
func positionAmong(cur *engine.Node, match func(*engine.Node) bool) (idx, total int) {
	if cur.Parent == nil {
		return 1, 1
	}
	for s := cur.Parent.FirstChild; s != nil; s = s.NextSibling {
		if !match(s) {
			continue
		}
		total++
		if s == cur {
			idx = total
		}
	}
	return idx, total
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	if !n.alive() || name == "" {
		return "", false
	}
	return n.n.Attr(name)
}

// HasAttr reports whether the named attribute is present.
func (n Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Attrs returns all attributes in document order of appearance.
func (n Node) Attrs() []Attr {
	if !n.alive() {
		return nil
	}
	attrs := make([]Attr, 0, len(n.n.Attrs))
	for _, a := range n.n.Attrs {
		attrs = append(attrs, Attr{Name: a.Name, Value: a.Value})
	}
	return attrs
}

// AttrMap returns all attributes as a lookup map. Use Attrs when the
// document order of appearance matters.
func (n Node) AttrMap() map[string]string {
	if !n.alive() {
		return nil
	}
	m := make(map[string]string, len(n.n.Attrs))
	for _, a := range n.n.Attrs {
		m[a.Name] = a.Value
	}
	return m
}

// FirstChild returns the node's first child.
func (n Node) FirstChild() (Node, bool) {
	if !n.alive() || n.n.FirstChild == nil {
		return Node{}, false
	}
	return Node{doc: n.doc, n: n.n.FirstChild}, true
}

// LastChild returns the node's last child.
func (n Node) LastChild() (Node, bool) {
	if !n.alive() || n.n.LastChild == nil {
		return Node{}, false
	}
	return Node{doc: n.doc, n: n.n.LastChild}, true
}

// Children returns all child nodes in document order.
func (n Node) Children() []Node {
	if !n.alive() {
		return nil
	}
	var out []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, Node{doc: n.doc, n: c})
	}
	return out
}

// ElementChildren returns the child nodes that are elements.
func (n Node) ElementChildren() []Node {
	if !n.alive() {
		return nil
	}
	var out []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == engine.KindElement {
			out = append(out, Node{doc: n.doc, n: c})
		}
	}
	return out
}

// TextChildren returns the content of the child nodes that are text.
func (n Node) TextChildren() []string {
	if !n.alive() {
		return nil
	}
	var out []string
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == engine.KindText || c.Kind == engine.KindCData {
			out = append(out, c.Data)
		}
	}
	return out
}

// Parent returns the node's parent.
func (n Node) Parent() (Node, bool) {
	if !n.alive() || n.n.Parent == nil {
		return Node{}, false
	}
	return Node{doc: n.doc, n: n.n.Parent}, true
}

// NextSibling returns the following sibling.
func (n Node) NextSibling() (Node, bool) {
	if !n.alive() || n.n.NextSibling == nil {
		return Node{}, false
	}
	return Node{doc: n.doc, n: n.n.NextSibling}, true
}

// PrevSibling returns the preceding sibling.
func (n Node) PrevSibling() (Node, bool) {
	if !n.alive() || n.n.PrevSibling == nil {
		return Node{}, false
	}
	return Node{doc: n.doc, n: n.n.PrevSibling}, true
}

// Siblings returns all siblings excluding the node itself, in document
// order.
func (n Node) Siblings() []Node {
	if !n.alive() || n.n.Parent == nil {
		return nil
	}
	var out []Node
	for s := n.n.Parent.FirstChild; s != nil; s = s.NextSibling {
		if s != n.n {
			out = append(out, Node{doc: n.doc, n: s})
		}
	}
	return out
}

// HasChildren reports whether the node has any children.
func (n Node) HasChildren() bool {
	return n.alive() && n.n.FirstChild != nil
}

// HasParent reports whether the node has a parent.
func (n Node) HasParent() bool {
	return n.alive() && n.n.Parent != nil
}

// ChildCount returns the number of child nodes.
func (n Node) ChildCount() int {
	if !n.alive() {
		return 0
	}
	count := 0
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// InnerHTML serializes the node's descendants back to markup, using the
// document's canonical serialization.
func (n Node) InnerHTML() string {
	if !n.alive() {
		return ""
	}
	return engine.InnerMarkup(n.n, n.doc.htmlMode)
}

// OuterHTML serializes the node and its descendants back to markup. The
// output is normalized, not byte-identical to the input.
func (n Node) OuterHTML() string {
	if !n.alive() {
		return ""
	}
	return engine.OuterMarkup(n.n, n.doc.htmlMode)
}

// Select evaluates expr with this node as context and returns the
// matching nodes.
func (n Node) Select(expr string) ([]Node, error) {
	if !n.alive() {
		return nil, closedErr(expr)
	}
	return n.doc.selectAt(n.n, expr)
}

// Evaluate evaluates expr with this node as context, returning the typed
// result.
func (n Node) Evaluate(expr string) (XPathResult, error) {
	if !n.alive() {
		return XPathResult{}, closedErr(expr)
	}
	return n.doc.evaluateAt(n.n, expr)
}

func (n Node) String() string {
	return fmt.Sprintf("Node(%s at %s)", n.TagName(), n.Path())
}
