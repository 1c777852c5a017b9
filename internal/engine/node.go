// Package engine adapts the parsing and XPath machinery behind a narrow
// interface: a unified markup tree built from golang.org/x/net/html or
// encoding/xml tokens, and a navigator the github.com/antchfx/xpath
// evaluator walks. Nothing outside this package touches the foreign
// parser or evaluator types directly.
package engine

import "strings"

// Kind identifies the type of a tree node.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindAttribute
	KindText
	KindCData
	KindComment
	KindProcInst
	KindDoctype
	KindUnknown
)

// Name returns the conventional lowercase name for the kind.
func (k Kind) Name() string {
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
	case KindComment:
		return "comment"
	case KindProcInst:
		return "processing-instruction"
	case KindDoctype:
		return "document-type"
	}
	return "unknown"
}

func (k Kind) String() string { return k.Name() }

// Attr is a single attribute. Attribute order on a node follows document
// order of appearance.
type Attr struct {
	Name  string
	Value string
}

// Node is one node in a parsed markup tree. The document node owns the
// tree; every other node is reachable from it through the link fields.
type Node struct {
	Kind Kind

	// Name is the tag name for elements, the attribute name for attribute
	// nodes, the processing-instruction target, and the doctype name.
	Name string

	// Data holds text, CDATA and comment content, attribute values, and
	// processing-instruction instructions.
	Data string

	Attrs []Attr

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

// AppendChild links c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	c.PrevSibling = n.LastChild
	c.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// StringValue implements the XPath string-value of the node: for elements
// and the document it is the concatenation of all descendant text, for
// everything else the node's own data.
func (n *Node) StringValue() string {
	switch n.Kind {
	case KindDocument, KindElement:
		var sb strings.Builder
		n.collectText(&sb)
		return sb.String()
	default:
		return n.Data
	}
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Kind {
		case KindText, KindCData:
			sb.WriteString(c.Data)
		case KindElement:
			c.collectText(sb)
		}
	}
}

// RootElement returns the first element child of a document node.
func (n *Node) RootElement() *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == KindElement {
			return c
		}
	}
	return nil
}

// isBlank reports whether the node is a whitespace-only text node.
func (n *Node) isBlank() bool {
	if n.Kind != KindText {
		return false
	}
	return strings.TrimSpace(n.Data) == ""
}
