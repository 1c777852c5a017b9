package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Options controls tolerant HTML parsing.
type Options struct {
	// Recover keeps parsing past structural defects. When false, any
	// defect found by the strictness scan fails the parse.
	Recover bool

	// NoError and NoWarning suppress diagnostic logging. They never
	// change the shape of the resulting tree.
	NoError   bool
	NoWarning bool

	// NoBlanks elides whitespace-only text nodes from the tree.
	NoBlanks bool

	// Logger receives diagnostics for recovered defects. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// ParseHTML parses markup into a tree, repairing structural defects the
// way a browser would. Only input that cannot be treated as markup at all
// (empty or blank) fails when recovery is on.
func ParseHTML(markup string, o Options) (*Node, error) {
	decoded, err := decodeInput(markup)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(decoded) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	// The scan only runs when its findings matter: strict mode turns
	// defects into failures, tolerant mode logs them unless both
	// diagnostic channels are muted.
	if !o.Recover || !o.NoError || !o.NoWarning {
		defects := scanHTML(decoded)
		if !o.Recover && len(defects) > 0 {
			return nil, fmt.Errorf("%w: %s (line %d)", ErrMalformed, defects[0].Msg, defects[0].Line)
		}
		logDefects(defects, o)
	}

	root, err := html.Parse(strings.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc := &Node{Kind: KindDocument}
	convertHTML(doc, root, o.NoBlanks)
	if doc.RootElement() == nil {
		return nil, fmt.Errorf("%w: no element content", ErrMalformed)
	}
	return doc, nil
}

func logDefects(defects []Defect, o Options) {
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	for _, d := range defects {
		if d.Warning {
			if !o.NoWarning {
				log.Warn("html parse warning", "line", d.Line, "detail", d.Msg)
			}
		} else if !o.NoError {
			log.Error("html parse error", "line", d.Line, "detail", d.Msg)
		}
	}
}

// convertHTML copies the x/net/html tree below src into dst.
func convertHTML(dst *Node, src *html.Node, noBlanks bool) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var n *Node
		switch c.Type {
		case html.ElementNode:
			n = &Node{Kind: KindElement, Name: c.Data}
			for _, a := range c.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Key, Value: a.Val})
			}
		case html.TextNode:
			n = &Node{Kind: KindText, Data: c.Data}
			if noBlanks && n.isBlank() {
				continue
			}
		case html.CommentNode:
			n = &Node{Kind: KindComment, Data: c.Data}
		case html.DoctypeNode:
			n = &Node{Kind: KindDoctype, Name: c.Data}
		default:
			continue
		}
		dst.AppendChild(n)
		if c.Type == html.ElementNode {
			convertHTML(n, c, noBlanks)
		}
	}
}
