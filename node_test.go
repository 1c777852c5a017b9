package domquery

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseWithOptions(markup, ScraperOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(doc.Close)
	return doc
}

func mustSelectOne(t *testing.T, doc *Document, expr string) Node {
	t.Helper()
	nodes, err := doc.Select(expr)
	if err != nil {
		t.Fatalf("select %s: %v", expr, err)
	}
	if len(nodes) != 1 {
		t.Fatalf("select %s: expected 1 node, got %d", expr, len(nodes))
	}
	return nodes[0]
}

func TestNode_TagNameAndText(t *testing.T) {
	doc := mustParse(t, `<div>Hello <span>World</span></div>`)

	div := mustSelectOne(t, doc, "//div")
	if got := div.TagName(); got != "div" {
		t.Errorf("expected tag div, got %q", got)
	}
	if got := div.Text(); got != "Hello World" {
		t.Errorf("expected text %q, got %q", "Hello World", got)
	}
	if div.Kind() != KindElement {
		t.Errorf("expected element kind, got %s", div.Kind())
	}

	text := mustSelectOne(t, doc, "//span/text()")
	if text.Kind() != KindText {
		t.Errorf("expected text kind, got %s", text.Kind())
	}
	if got := text.TagName(); got != "" {
		t.Errorf("text node tag name: expected empty, got %q", got)
	}
	if got := text.Text(); got != "World" {
		t.Errorf("text node content: expected World, got %q", got)
	}
}

func TestNode_Attributes(t *testing.T) {
	doc := mustParse(t, `<div data-b="2" data-a="1" class="box">x</div>`)
	div := mustSelectOne(t, doc, "//div")

	if v, ok := div.Attr("class"); !ok || v != "box" {
		t.Errorf("Attr(class): expected box, got %q (%v)", v, ok)
	}
	if _, ok := div.Attr("style"); ok {
		t.Error("Attr(style): expected absent")
	}
	if !div.HasAttr("data-a") || div.HasAttr("nope") {
		t.Error("HasAttr mismatch")
	}

	// Attrs preserves document order of appearance.
	attrs := div.Attrs()
	wantOrder := []string{"data-b", "data-a", "class"}
	if len(attrs) != len(wantOrder) {
		t.Fatalf("expected %d attrs, got %d", len(wantOrder), len(attrs))
	}
	for i, w := range wantOrder {
		if attrs[i].Name != w {
			t.Errorf("attrs[%d]: expected %q, got %q", i, w, attrs[i].Name)
		}
	}

	m := div.AttrMap()
	if m["data-b"] != "2" || m["data-a"] != "1" || m["class"] != "box" {
		t.Errorf("AttrMap mismatch: %v", m)
	}
}

func TestNode_AttributeSelection(t *testing.T) {
	doc := mustParse(t, `<div class="container">Hello</div>`)

	attr := mustSelectOne(t, doc, "//div/@class")
	if attr.Kind() != KindAttribute {
		t.Errorf("expected attribute kind, got %s", attr.Kind())
	}
	if got := attr.TagName(); got != "class" {
		t.Errorf("attribute name: expected class, got %q", got)
	}
	if got := attr.Text(); got != "container" {
		t.Errorf("attribute value: expected container, got %q", got)
	}
	if !strings.HasSuffix(attr.Path(), "/@class") {
		t.Errorf("attribute path should end in /@class, got %q", attr.Path())
	}

	s, err := doc.ExtractString("string(//div/@class)")
	if err != nil || s != "container" {
		t.Errorf("string(//div/@class): expected container, got %q (%v)", s, err)
	}
}

func TestNode_Navigation(t *testing.T) {
	doc := mustParse(t, `<div><p id="a">A</p><p id="b">B</p><span>C</span></div>`)
	div := mustSelectOne(t, doc, "//div")

	children := div.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	elems := div.ElementChildren()
	if len(elems) != 3 {
		t.Fatalf("expected 3 element children, got %d", len(elems))
	}
	if !div.HasChildren() || div.ChildCount() != 3 {
		t.Error("HasChildren/ChildCount mismatch")
	}

	first, ok := div.FirstChild()
	if !ok || first.TagName() != "p" {
		t.Fatalf("FirstChild: expected p, got %v", first)
	}
	last, ok := div.LastChild()
	if !ok || last.TagName() != "span" {
		t.Fatalf("LastChild: expected span, got %v", last)
	}

	a := mustSelectOne(t, doc, "//p[@id='a']")
	next, ok := a.NextSibling()
	if !ok {
		t.Fatal("expected a next sibling")
	}
	if v, _ := next.Attr("id"); v != "b" {
		t.Errorf("next sibling id: expected b, got %q", v)
	}
	prev, ok := next.PrevSibling()
	if !ok || prev != a {
		t.Error("PrevSibling should return the first p")
	}
	if _, ok := a.PrevSibling(); ok {
		t.Error("first child should have no previous sibling")
	}
	if _, ok := last.NextSibling(); ok {
		t.Error("last child should have no next sibling")
	}

	parent, ok := a.Parent()
	if !ok || parent != div {
		t.Error("Parent should return the div")
	}
	if !a.HasParent() {
		t.Error("HasParent should be true")
	}

	sibs := a.Siblings()
	if len(sibs) != 2 {
		t.Fatalf("expected 2 siblings, got %d", len(sibs))
	}
	if sibs[0].TagName() != "p" || sibs[1].TagName() != "span" {
		t.Errorf("siblings out of document order: %v %v", sibs[0], sibs[1])
	}
}

func TestNode_TextChildren(t *testing.T) {
	doc := mustParse(t, `<div>alpha<p>skip</p>beta</div>`)
	div := mustSelectOne(t, doc, "//div")

	texts := div.TextChildren()
	if len(texts) != 2 || texts[0] != "alpha" || texts[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", texts)
	}
}

func TestNode_DocumentRootParent(t *testing.T) {
	doc := mustParse(t, `<html><body>x</body></html>`)

	root := mustSelectOne(t, doc, "/")
	if root.Kind() != KindDocument {
		t.Fatalf("expected document node, got %s", root.Kind())
	}
	if root.Path() != "/" {
		t.Errorf("document path: expected /, got %q", root.Path())
	}
	if _, ok := root.Parent(); ok {
		t.Error("document node should have no parent")
	}
}

func TestNode_PathRoundTrip(t *testing.T) {
	doc := mustParse(t, `
		<html><body>
			<div>
				<ul>
					<li>one</li>
					<li>two<em>!</em></li>
				</ul>
				<ul><li>other</li></ul>
			</div>
		</body></html>
	`)

	nodes, err := doc.Select("//li | //em | //ul")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatal("expected nodes")
	}
	for _, n := range nodes {
		path := n.Path()
		back, err := doc.Select(path)
		if err != nil {
			t.Fatalf("select %q: %v", path, err)
		}
		if len(back) != 1 {
			t.Fatalf("path %q: expected exactly 1 node, got %d", path, len(back))
		}
		if back[0] != n {
			t.Errorf("path %q did not round-trip to the same node", path)
		}
	}
}

func TestNode_PathIndexesOnlyAmbiguousSteps(t *testing.T) {
	doc := mustParse(t, `<html><body><ul><li>a</li><li>b</li></ul></body></html>`)

	li := mustSelectOne(t, doc, "//li[2]")
	if got := li.Path(); got != "/html/body/ul/li[2]" {
		t.Errorf("expected /html/body/ul/li[2], got %q", got)
	}

	ul := mustSelectOne(t, doc, "//ul")
	if got := ul.Path(); got != "/html/body/ul" {
		t.Errorf("expected /html/body/ul, got %q", got)
	}
}

func TestNode_InnerAndOuterHTML(t *testing.T) {
	doc := mustParse(t, `<div><p>Hello</p><span>World</span></div>`)
	div := mustSelectOne(t, doc, "//div")

	inner := div.InnerHTML()
	if inner != "<p>Hello</p><span>World</span>" {
		t.Errorf("InnerHTML: got %q", inner)
	}
	outer := div.OuterHTML()
	if outer != "<div><p>Hello</p><span>World</span></div>" {
		t.Errorf("OuterHTML: got %q", outer)
	}

	p := mustSelectOne(t, doc, "//p")
	if got := p.OuterHTML(); got != "<p>Hello</p>" {
		t.Errorf("p OuterHTML: got %q", got)
	}
}

func TestNode_SelectInContext(t *testing.T) {
	doc := mustParse(t, `
		<div id="first"><p class="a">A</p><p class="b">B</p></div>
		<div id="second"><p class="c">C</p></div>
	`)
	first := mustSelectOne(t, doc, "//div[@id='first']")

	ps, err := first.Select(".//p")
	if err != nil {
		t.Fatalf("select in context: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 paragraphs under first div, got %d", len(ps))
	}

	res, err := first.Evaluate("count(.//p)")
	if err != nil {
		t.Fatalf("evaluate in context: %v", err)
	}
	if res.Number() != 2.0 {
		t.Errorf("count(.//p): expected 2, got %v", res.Number())
	}
}

func TestNode_String(t *testing.T) {
	doc := mustParse(t, `<html><body><p>x</p></body></html>`)
	p := mustSelectOne(t, doc, "//p")
	if got := p.String(); got != "Node(p at /html/body/p)" {
		t.Errorf("unexpected String: %q", got)
	}
}

func TestNode_DoctypeStaysOutOfQueries(t *testing.T) {
	doc := mustParse(t, `<!DOCTYPE html><html><head></head><body><!-- note --><p>x</p></body></html>`)

	if nodes, err := doc.Select("/comment()"); err != nil || len(nodes) != 0 {
		t.Errorf("doctype must not match comment(): %v (%v)", nodes, err)
	}

	comments, err := doc.Select("//comment()")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(comments) != 1 || comments[0].Kind() != KindComment {
		t.Fatalf("expected only the body comment, got %v", comments)
	}
	path := comments[0].Path()
	back, err := doc.Select(path)
	if err != nil {
		t.Fatalf("select %q: %v", path, err)
	}
	if len(back) != 1 || back[0] != comments[0] {
		t.Errorf("comment path %q did not round-trip", path)
	}

	tops, err := doc.Select("/*")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(tops) != 1 || tops[0].TagName() != "html" {
		t.Errorf("expected only the html element at top level, got %v", tops)
	}

	// The doctype is still visible to tree navigation.
	root := mustSelectOne(t, doc, "/")
	first, ok := root.FirstChild()
	if !ok || first.Kind() != KindDoctype {
		t.Errorf("expected the doctype as first tree child, got %v", first)
	}
}
