package dom

import (
	"bytes"
	"io"

	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/atdiar/uxui"
)

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// InnerHTML renders the children of e.
func InnerHTML(e ui.NativeElement) string {
	el, ok := e.(*Element)
	if !ok || el == nil {
		return ""
	}
	var b bytes.Buffer
	for c := el.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			el.doc.logger.Sugar().Warnf("rendering %s: %v", c.Data, err)
			return b.String()
		}
	}
	return b.String()
}

// OuterHTML renders e itself.
func OuterHTML(e ui.NativeElement) string {
	el, ok := e.(*Element)
	if !ok || el == nil {
		return ""
	}
	var b bytes.Buffer
	if err := html.Render(&b, el.node); err != nil {
		return ""
	}
	return b.String()
}

// Pretty indents rendered markup for display.
func Pretty(markup string) string {
	return gohtml.Format(markup)
}
