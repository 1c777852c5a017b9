package engine

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// XMLOptions controls strict XML parsing.
type XMLOptions struct {
	// NoBlanks elides whitespace-only text nodes.
	NoBlanks bool

	// NoDTD drops doctype declarations from the tree.
	NoDTD bool

	// NoEntities restricts entity references to the XML predefined five.
	// When false, the HTML named entities are also accepted.
	NoEntities bool
}

// ParseXML parses markup as XML. Unlike the HTML path there is no
// recovery: mismatched or unclosed tags fail the parse.
func ParseXML(markup string, o XMLOptions) (*Node, error) {
	var encodingFailed error
	d := xml.NewDecoder(strings.NewReader(markup))
	d.Strict = true
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		r, err := resolveCharset(label, input)
		if err != nil {
			encodingFailed = err
		}
		return r, err
	}
	if !o.NoEntities {
		d.Entity = xml.HTMLEntity
	}

	doc := &Node{Kind: KindDocument}
	cur := doc
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if encodingFailed != nil {
				return nil, encodingFailed
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: KindElement, Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			cur.AppendChild(n)
			cur = n
		case xml.EndElement:
			cur = cur.Parent
		case xml.CharData:
			n := &Node{Kind: KindText, Data: string(t)}
			if o.NoBlanks && n.isBlank() {
				continue
			}
			cur.AppendChild(n)
		case xml.Comment:
			cur.AppendChild(&Node{Kind: KindComment, Data: string(t)})
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			cur.AppendChild(&Node{Kind: KindProcInst, Name: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			if o.NoDTD {
				continue
			}
			if name, ok := doctypeName(string(t)); ok {
				cur.AppendChild(&Node{Kind: KindDoctype, Name: name})
			}
		}
	}

	if doc.RootElement() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return doc, nil
}

func attrName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func doctypeName(directive string) (string, bool) {
	fields := strings.Fields(directive)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "DOCTYPE") {
		return "", false
	}
	return fields[1], true
}
