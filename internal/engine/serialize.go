package engine

import (
	"strings"

	"golang.org/x/net/html"
)

// rawTextElements have their text children serialized without escaping in
// HTML mode, matching how browsers treat their content.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// OuterMarkup serializes the node and its descendants back to markup.
// The output is canonical, not byte-identical to the input: tolerant
// parsing already normalized structure, quoting and tag case.
func OuterMarkup(n *Node, htmlMode bool) string {
	var sb strings.Builder
	writeNode(&sb, n, htmlMode)
	return sb.String()
}

// InnerMarkup serializes only the node's descendants.
func InnerMarkup(n *Node, htmlMode bool) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(&sb, c, htmlMode)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, htmlMode bool) {
	switch n.Kind {
	case KindDocument:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(sb, c, htmlMode)
		}
	case KindElement:
		writeElement(sb, n, htmlMode)
	case KindText:
		if htmlMode && n.Parent != nil && rawTextElements[n.Parent.Name] {
			sb.WriteString(n.Data)
		} else {
			sb.WriteString(html.EscapeString(n.Data))
		}
	case KindCData:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.Data)
		sb.WriteString("]]>")
	case KindComment:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case KindProcInst:
		sb.WriteString("<?")
		sb.WriteString(n.Name)
		if n.Data != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Data)
		}
		sb.WriteString("?>")
	case KindDoctype:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	case KindAttribute:
		sb.WriteString(n.Data)
	}
}

func writeElement(sb *strings.Builder, n *Node, htmlMode bool) {
	sb.WriteByte('<')
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteByte('"')
	}
	// HTML5 serialization: void elements take no end tag and no slash.
	if htmlMode && voidElements[n.Name] {
		sb.WriteByte('>')
		return
	}
	if !htmlMode && n.FirstChild == nil {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(sb, c, htmlMode)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteByte('>')
}
