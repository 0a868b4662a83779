package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atdiar/uxui"
)

const (
	textBinding = "data-text"
	attrBinding = "data-bind-"
)

// Template is a primitive definition made of parsed markup and style. The
// markup may bind live state:
//
//	<label data-text="label"></label>
//	<input data-bind-placeholder="hint"/>
//
// data-text sets the text content from a state path and data-bind-<attr> sets
// the attribute <attr>. Both are refreshed whenever the state under the path
// is written.
type Template struct {
	Name   string
	markup []*html.Node
	style  *html.Node
	script func(ctx *ui.DataContext)
}

// NewTemplate parses markup and style. style may be empty, script may be nil.
func NewTemplate(name, markup, style string, script func(ctx *ui.DataContext)) (*Template, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parsing markup of %s: %w", name, err)
	}
	t := &Template{Name: name, markup: nodes, script: script}
	if strings.TrimSpace(style) != "" {
		t.style = &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
		t.style.AppendChild(&html.Node{Type: html.TextNode, Data: style})
	}
	return t, nil
}

// MustTemplate is NewTemplate for markup known to parse.
func MustTemplate(name, markup, style string, script func(ctx *ui.DataContext)) *Template {
	t, err := NewTemplate(name, markup, style, script)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Markup(ctx *ui.DataContext) []ui.NativeElement {
	doc := documentOf(ctx)
	var res []ui.NativeElement
	for _, n := range t.markup {
		if n.Type != html.ElementNode {
			continue
		}
		el := doc.wrap(cloneNode(n))
		bind(ctx, el)
		res = append(res, el)
	}
	return res
}

func (t *Template) Style(ctx *ui.DataContext) []ui.NativeElement {
	if t.style == nil {
		return nil
	}
	return []ui.NativeElement{documentOf(ctx).wrap(cloneNode(t.style))}
}

func (t *Template) Script(ctx *ui.DataContext) {
	if t.script != nil {
		t.script(ctx)
	}
}

func documentOf(ctx *ui.DataContext) *Document {
	doc, ok := ctx.Document().(*Document)
	if !ok {
		panic(fmt.Sprintf("dom: templates render on *dom.Document, not %T", ctx.Document()))
	}
	return doc
}

// bind wires the data bindings of root and of its descendants.
func bind(ctx *ui.DataContext, root *Element) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			bindElement(ctx, root.doc.wrap(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root.node)
}

func bindElement(ctx *ui.DataContext, el *Element) {
	for _, attr := range append([]html.Attribute(nil), el.node.Attr...) {
		path := attr.Val
		switch {
		case attr.Key == textBinding:
			el.SetText(ctx.Get(path))
			ctx.OnDataUpdate(path, func() {
				el.SetText(ctx.Get(path))
			})
		case strings.HasPrefix(attr.Key, attrBinding):
			name := strings.TrimPrefix(attr.Key, attrBinding)
			if name == "" {
				continue
			}
			el.SetAttribute(name, ctx.Get(path))
			ctx.OnDataUpdate(path, func() {
				el.SetAttribute(name, ctx.Get(path))
			})
		}
	}
}
