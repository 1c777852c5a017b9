package engine

import "testing"

func parseBody(t *testing.T, markup string) *Node {
	t.Helper()
	doc, err := ParseHTML(markup, Options{Recover: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	body := findElement(doc, "body")
	if body == nil {
		t.Fatal("no body element")
	}
	return body
}

func TestOuterMarkup_HTML(t *testing.T) {
	body := parseBody(t, `<div class="x"><p>Hello</p></div>`)
	div := body.FirstChild
	if got := OuterMarkup(div, true); got != `<div class="x"><p>Hello</p></div>` {
		t.Errorf("unexpected markup: %q", got)
	}
	if got := InnerMarkup(div, true); got != `<p>Hello</p>` {
		t.Errorf("unexpected inner markup: %q", got)
	}
}

func TestOuterMarkup_VoidElements(t *testing.T) {
	body := parseBody(t, `<div>a<br>b<img src="x"></div>`)
	div := body.FirstChild
	if got := OuterMarkup(div, true); got != `<div>a<br>b<img src="x"></div>` {
		t.Errorf("unexpected markup: %q", got)
	}
}

func TestOuterMarkup_EscapesText(t *testing.T) {
	body := parseBody(t, `<p>a &lt; b &amp; c</p>`)
	p := body.FirstChild
	if got := OuterMarkup(p, true); got != `<p>a &lt; b &amp; c</p>` {
		t.Errorf("unexpected markup: %q", got)
	}
}

func TestOuterMarkup_EscapesAttributes(t *testing.T) {
	n := &Node{Kind: KindElement, Name: "a", Attrs: []Attr{{Name: "title", Value: `say "hi" & go`}}}
	got := OuterMarkup(n, false)
	want := `<a title="say &#34;hi&#34; &amp; go"/>`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestOuterMarkup_ScriptIsRawText(t *testing.T) {
	doc, err := ParseHTML(`<html><head><script>if (a < b) run();</script></head><body></body></html>`,
		Options{Recover: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	script := findElement(doc, "script")
	if got := OuterMarkup(script, true); got != `<script>if (a < b) run();</script>` {
		t.Errorf("script content should not be escaped: %q", got)
	}
}

func TestOuterMarkup_XMLSelfClose(t *testing.T) {
	doc, err := ParseXML(`<root><empty/><full>x</full></root>`, XMLOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := OuterMarkup(doc.RootElement(), false); got != `<root><empty/><full>x</full></root>` {
		t.Errorf("unexpected markup: %q", got)
	}
}

func TestOuterMarkup_CommentAndPI(t *testing.T) {
	doc, err := ParseXML(`<?xml version="1.0"?><?style sheet?><root><!-- c --></root>`, XMLOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := OuterMarkup(doc, false); got != `<?style sheet?><root><!-- c --></root>` {
		t.Errorf("unexpected markup: %q", got)
	}
}

func TestOuterMarkup_CData(t *testing.T) {
	n := &Node{Kind: KindElement, Name: "d"}
	n.AppendChild(&Node{Kind: KindCData, Data: "1 < 2"})
	if got := OuterMarkup(n, false); got != `<d><![CDATA[1 < 2]]></d>` {
		t.Errorf("unexpected markup: %q", got)
	}
}

func TestOuterMarkup_AttributeNode(t *testing.T) {
	n := &Node{Kind: KindAttribute, Name: "href", Data: "/path"}
	if got := OuterMarkup(n, true); got != "/path" {
		t.Errorf("attribute node should serialize as its value, got %q", got)
	}
}
