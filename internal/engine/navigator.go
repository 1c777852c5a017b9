package engine

import "github.com/antchfx/xpath"

// Navigator implements xpath.NodeNavigator over the engine tree. A fresh
// navigator is created per evaluation; it carries no state shared with
// other evaluations.
type Navigator struct {
	root *Node
	cur  *Node
	// attr is the index into cur.Attrs when positioned on an attribute,
	// -1 otherwise.
	attr int
}

// NewNavigator returns a navigator rooted at root and positioned at cur.
func NewNavigator(root, cur *Node) *Navigator {
	return &Navigator{root: root, cur: cur, attr: -1}
}

// CurrentNode returns the tree node at the navigator's position.
// Attribute positions are materialized on demand; the tree itself does
// not store attribute nodes.
func (nav *Navigator) CurrentNode() *Node {
	if nav.attr >= 0 {
		a := nav.cur.Attrs[nav.attr]
		return &Node{Kind: KindAttribute, Name: a.Name, Data: a.Value, Parent: nav.cur}
	}
	return nav.cur
}

func (nav *Navigator) NodeType() xpath.NodeType {
	if nav.attr >= 0 {
		return xpath.AttributeNode
	}
	switch nav.cur.Kind {
	case KindDocument:
		return xpath.RootNode
	case KindElement:
		return xpath.ElementNode
	case KindText, KindCData:
		return xpath.TextNode
	default:
		// Comments and processing instructions are kept out of the
		// element and text axes. Doctype nodes never reach here; traversal
		// skips them.
		return xpath.CommentNode
	}
}

func (nav *Navigator) LocalName() string {
	if nav.attr >= 0 {
		return nav.cur.Attrs[nav.attr].Name
	}
	switch nav.cur.Kind {
	case KindElement, KindProcInst:
		return nav.cur.Name
	}
	return ""
}

func (nav *Navigator) Prefix() string { return "" }

func (nav *Navigator) Value() string {
	if nav.attr >= 0 {
		return nav.cur.Attrs[nav.attr].Value
	}
	switch nav.cur.Kind {
	case KindDocument, KindElement:
		return nav.cur.StringValue()
	case KindDoctype:
		return ""
	default:
		return nav.cur.Data
	}
}

func (nav *Navigator) Copy() xpath.NodeNavigator {
	cp := *nav
	return &cp
}

func (nav *Navigator) MoveToRoot() {
	nav.cur = nav.root
	nav.attr = -1
}

func (nav *Navigator) MoveToParent() bool {
	if nav.attr >= 0 {
		nav.attr = -1
		return true
	}
	if nav.cur.Parent == nil {
		return false
	}
	nav.cur = nav.cur.Parent
	return true
}

func (nav *Navigator) MoveToNextAttribute() bool {
	if nav.cur.Kind != KindElement || nav.attr+1 >= len(nav.cur.Attrs) {
		return false
	}
	nav.attr++
	return true
}

// Doctype nodes stay in the tree for navigation and serialization, but
// the XPath 1.0 data model has no doctype node, so traversal skips them.

func (nav *Navigator) MoveToChild() bool {
	if nav.attr >= 0 {
		return false
	}
	c := nav.cur.FirstChild
	for c != nil && c.Kind == KindDoctype {
		c = c.NextSibling
	}
	if c == nil {
		return false
	}
	nav.cur = c
	return true
}

func (nav *Navigator) MoveToFirst() bool {
	if nav.attr >= 0 {
		return false
	}
	first := nav.cur
	for s := nav.cur.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Kind != KindDoctype {
			first = s
		}
	}
	nav.cur = first
	return true
}

func (nav *Navigator) MoveToNext() bool {
	if nav.attr >= 0 {
		return false
	}
	s := nav.cur.NextSibling
	for s != nil && s.Kind == KindDoctype {
		s = s.NextSibling
	}
	if s == nil {
		return false
	}
	nav.cur = s
	return true
}

func (nav *Navigator) MoveToPrevious() bool {
	if nav.attr >= 0 {
		return false
	}
	s := nav.cur.PrevSibling
	for s != nil && s.Kind == KindDoctype {
		s = s.PrevSibling
	}
	if s == nil {
		return false
	}
	nav.cur = s
	return true
}

func (nav *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.cur = o.cur
	nav.attr = o.attr
	return true
}
