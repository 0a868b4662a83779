package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/drivers/dom"
)

func TestListeners(t *testing.T) {
	u, doc := newTestUI(t)
	var logs []string

	root, err := u.Render(ui.View("form.form", ui.WithItems(
		ui.View("form.text-input"),
		ui.View("form.submit-button", ui.Listen("click", func(n *ui.Node, evt ui.Event) {
			logs = append(logs, n.ID()+" "+evt.Type())
		})),
	)), "")
	require.NoError(t, err)
	form := root.Items()[0]

	button := doc.Body().FindAll("button")[0]
	assert.True(t, doc.Click(button))

	// Replacing the listener rebinds the native handler.
	form.Items()[1].Listeners().Set("click", func(n *ui.Node, evt ui.Event) {
		logs = append(logs, evt.Type()+" "+n.ID())
	})
	doc.Click(button)
	assert.Equal(t, 1, form.Items()[1].Element().(*dom.Element).ListenerCount("click"))

	// New listener.
	form.Items()[0].Listeners().Set("click", func(n *ui.Node, evt ui.Event) {
		logs = append(logs, evt.Type()+" "+n.ID())
	})
	doc.Click(doc.Body().FindAll("input")[0])

	assert.Equal(t, []string{"ux-2 click", "click ux-2", "click ux-1"}, logs)

	// Removing the listener unbinds it.
	form.Items()[0].Listeners().Set("click", nil)
	assert.False(t, doc.Click(doc.Body().FindAll("input")[0]))
	assert.Len(t, logs, 3)
	assert.Equal(t, []string{"click"}, form.Items()[1].Listeners().Keys())
	assert.Empty(t, form.Items()[0].Listeners().Keys())
}

func TestEventBubblesFromDescendant(t *testing.T) {
	u, doc := newTestUI(t)
	var calls []string

	root, err := u.Render(ui.View("box.panel",
		ui.Bubbling,
		ui.Listen("click", func(n *ui.Node, evt ui.Event) {
			calls = append(calls, n.ID()+" "+evt.Type())
		}),
		ui.WithItems(ui.View("box.label", ui.Bubbling)),
	), "")
	require.NoError(t, err)
	panel := root.Items()[0]
	label := panel.Items()[0]

	assert.True(t, doc.Click(label.Element()))
	assert.Equal(t, []string{label.ID() + " click"}, calls)

	// A click on the markup inside the label is reported for the label too.
	doc.Click(label.Element().Children()[0])
	assert.Equal(t, []string{label.ID() + " click", label.ID() + " click"}, calls)

	// Without bubbling, the listening node is reported.
	label.SetBubbleEvents(false)
	doc.Click(label.Element())
	assert.Equal(t, panel.ID()+" click", calls[2])
}

func TestEventForwardedToParent(t *testing.T) {
	u, doc := newTestUI(t)
	var calls []string
	record := func(who string) ui.Listener {
		return func(n *ui.Node, evt ui.Event) {
			calls = append(calls, who+":"+n.ID())
		}
	}

	root, err := u.Render(ui.View("box.panel",
		ui.Listen("click", record("top")),
		ui.WithItems(ui.View("box.panel",
			ui.Listen("click", record("middle")),
			ui.WithItems(ui.View("box.label",
				ui.Bubbling,
				ui.Listen("click", record("label")),
			)),
		)),
	), "")
	require.NoError(t, err)
	top := root.Items()[0]
	middle := top.Items()[0]
	label := middle.Items()[0]

	doc.Click(label.Element())
	assert.Equal(t, []string{"label:" + label.ID(), "middle:" + label.ID()}, calls)

	calls = nil
	middle.SetBubbleEvents(true)
	doc.Click(label.Element())
	// The call goes one level up, whatever the parent bubbles.
	assert.Equal(t, []string{"label:" + label.ID(), "middle:" + label.ID()}, calls)

	calls = nil
	doc.Click(middle.Element())
	assert.Equal(t, []string{"middle:" + middle.ID(), "top:" + middle.ID()}, calls)
}

func TestEventForwardingUsesCurrentListener(t *testing.T) {
	u, doc := newTestUI(t)
	var calls []string

	root, err := u.Render(ui.View("box.panel",
		ui.Listen("click", func(n *ui.Node, evt ui.Event) {
			calls = append(calls, "old")
		}),
		ui.WithItems(ui.View("box.label", ui.Bubbling)),
	), "")
	require.NoError(t, err)
	panel := root.Items()[0]
	label := panel.Items()[0]

	label.Listeners().Set("click", func(n *ui.Node, evt ui.Event) {
		calls = append(calls, "label")
		panel.Listeners().Set("click", func(n *ui.Node, evt ui.Event) {
			calls = append(calls, "new")
		})
	})

	doc.Click(label.Element())
	assert.Equal(t, []string{"label", "new"}, calls)
}

type customHandlers struct {
	bound []string
}

func (c *customHandlers) BuildItems(d ui.Descriptor) (ui.Children, error) {
	return ui.Children{}, nil
}

func (c *customHandlers) OnListenersUpdate(event string, prev, next ui.Listener) func(ui.Event) {
	c.bound = append(c.bound, event)
	if next == nil {
		return nil
	}
	return func(evt ui.Event) {
		next(nil, evt)
	}
}

func TestListenersUpdater(t *testing.T) {
	u, doc := newTestUI(t)
	var component *customHandlers
	require.NoError(t, u.Define("test.custom-handlers", ui.Composite{
		New: func(n *ui.Node) ui.Component {
			component = &customHandlers{}
			return component
		},
	}))

	var got []*ui.Node
	root, err := u.Render(ui.View("test.custom-handlers", ui.Listen("click", func(n *ui.Node, evt ui.Event) {
		got = append(got, n)
	})), "")
	require.NoError(t, err)
	n := root.Items()[0]

	// The returned handler does not stop the default action.
	assert.False(t, doc.Click(n.Element()))
	assert.Equal(t, []*ui.Node{nil}, got)
	assert.Equal(t, []string{"click"}, component.bound)
}
