package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/drivers/dom"
)

func parse(t *testing.T, page string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page), zaptest.NewLogger(t))
	require.NoError(t, err)
	return doc
}

func tags(l []ui.NativeElement) []string {
	var res []string
	for _, e := range l {
		res = append(res, e.Tag())
	}
	return res
}

func TestElementAttributes(t *testing.T) {
	doc := dom.NewDocument(nil)
	e := doc.CreateElement("input")

	_, ok := e.Attribute("type")
	assert.False(t, ok)

	e.SetAttribute("type", "text")
	e.SetAttribute("name", "email")
	e.SetAttribute("type", "email")
	v, ok := e.Attribute("type")
	require.True(t, ok)
	assert.Equal(t, "email", v)

	e.RemoveAttribute("name")
	e.RemoveAttribute("missing")
	assert.Equal(t, `<input type="email"/>`, dom.OuterHTML(e))
}

func TestElementTree(t *testing.T) {
	doc := dom.NewDocument(nil)
	ul := doc.CreateElement("ul")
	a, b, c := doc.CreateElement("a"), doc.CreateElement("b"), doc.CreateElement("i")

	ul.AppendChild(a)
	ul.InsertChild(b, 0)
	ul.InsertChild(c, 99)
	assert.Equal(t, []string{"b", "a", "i"}, tags(ul.Children()))
	assert.Same(t, ul, a.Parent())

	// Re-inserting moves the element.
	ul.InsertChild(c, 1)
	assert.Equal(t, []string{"b", "i", "a"}, tags(ul.Children()))

	// Text nodes are not counted.
	a.SetText("x")
	ul.InsertChild(doc.CreateElement("s"), 3)
	assert.Equal(t, []string{"b", "i", "a", "s"}, tags(ul.Children()))

	span := doc.CreateElement("span")
	b.ReplaceWith(span)
	assert.Equal(t, []string{"span", "i", "a", "s"}, tags(ul.Children()))
	assert.Nil(t, b.Parent())

	c.Remove()
	assert.Nil(t, c.Parent())
	assert.Equal(t, `<ul><span></span><a>x</a><s></s></ul>`, dom.OuterHTML(ul))
	assert.Equal(t, `<span></span><a>x</a><s></s>`, dom.InnerHTML(ul))

	doc.Body().AppendChild(ul)
	assert.Nil(t, doc.Body().Parent().Parent())
}

func TestFindAllAndClone(t *testing.T) {
	doc := parse(t, `<html><body><div id="app"><p><items for="a"></items></p><items></items></div></body></html>`)
	app, ok := doc.ElementByID("app")
	require.True(t, ok)

	markers := app.FindAll("items")
	require.Len(t, markers, 2)
	label, _ := markers[0].Attribute("for")
	assert.Equal(t, "a", label)

	app.AddEventListener("click", func(ui.Event) {})
	clone := app.Clone()
	assert.Nil(t, clone.Parent())
	assert.Equal(t, dom.OuterHTML(app), dom.OuterHTML(clone))
	assert.Equal(t, 0, clone.(*dom.Element).ListenerCount("click"))
	assert.Equal(t, 1, app.(*dom.Element).ListenerCount("click"))

	// The clone is not part of the document.
	found, _ := doc.ElementByID("app")
	assert.Same(t, app, found)

	_, ok = doc.ElementByID("nope")
	assert.False(t, ok)
	_, ok = doc.ElementByID(`x']|//*[@id='app`)
	assert.False(t, ok)
}

func TestDispatch(t *testing.T) {
	doc := parse(t, `<html><body><div id="outer"><p id="inner"><b id="target">x</b></p></div></body></html>`)
	outer, _ := doc.ElementByID("outer")
	inner, _ := doc.ElementByID("inner")
	target, _ := doc.ElementByID("target")

	var calls []string
	record := func(name string, stop func(ui.Event)) func(ui.Event) {
		return func(evt ui.Event) {
			calls = append(calls, name)
			assert.Same(t, target, evt.Target())
			if stop != nil {
				stop(evt)
			}
		}
	}

	outer.AddEventListener("click", record("outer", nil))
	removeInner := inner.AddEventListener("click", record("inner", nil))
	target.AddEventListener("click", record("target", nil))

	assert.False(t, doc.Click(target))
	assert.Equal(t, []string{"target", "inner", "outer"}, calls)

	calls = nil
	removeInner()
	inner.AddEventListener("click", record("inner-stop", ui.Event.StopPropagation))
	inner.AddEventListener("click", record("inner-2", nil))
	doc.Click(target)
	assert.Equal(t, []string{"target", "inner-stop", "inner-2"}, calls)

	calls = nil
	target.AddEventListener("click", record("target-immediate", ui.Event.StopImmediatePropagation))
	target.AddEventListener("click", record("target-skipped", nil))
	doc.Click(target)
	assert.Equal(t, []string{"target", "target-immediate"}, calls)

	calls = nil
	outer.AddEventListener("submit", record("prevent", ui.Event.PreventDefault))
	assert.True(t, doc.Dispatch(target, "submit"))
	assert.Equal(t, []string{"prevent"}, calls)
}

func TestRemovedDuringDispatch(t *testing.T) {
	doc := dom.NewDocument(nil)
	b := doc.CreateElement("button")
	doc.Body().AppendChild(b)

	var calls []string
	var remove func()
	b.AddEventListener("click", func(ui.Event) {
		calls = append(calls, "first")
		remove()
	})
	remove = b.AddEventListener("click", func(ui.Event) {
		calls = append(calls, "second")
	})

	doc.Click(b)
	doc.Click(b)
	assert.Equal(t, []string{"first", "first"}, calls)
	assert.Equal(t, 1, b.(*dom.Element).ListenerCount("click"))
}
