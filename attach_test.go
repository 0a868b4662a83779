package ui_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atdiar/uxui"
)

// checkTree verifies that every container lists, in order, exactly the nodes
// whose surfaces sit under its insertion marker, and that no node is listed
// twice.
func checkTree(t *testing.T, containers []*ui.Node, all []*ui.Node) {
	t.Helper()
	bySurface := make(map[ui.NativeElement]*ui.Node, len(all))
	for _, n := range all {
		bySurface[n.Element()] = n
	}
	seen := make(map[*ui.Node]*ui.Node)
	for _, c := range containers {
		marker := c.Element().FindAll("items")[0]
		var rendered []*ui.Node
		for _, el := range marker.Children() {
			n, ok := bySurface[el]
			require.True(t, ok, "unknown element under %s", c.ID())
			rendered = append(rendered, n)
		}
		require.Equal(t, ids(rendered), ids(c.Items()), "items of %s", c.ID())
		for _, n := range c.Items() {
			require.Same(t, c, n.AttachedTo())
			_, dup := seen[n]
			require.False(t, dup, "%s has two parents", n.ID())
			seen[n] = c
		}
	}
	for _, n := range all {
		if _, ok := seen[n]; !ok {
			require.Nil(t, n.AttachedTo(), n.ID())
		}
	}
}

func contains(n, target *ui.Node) bool {
	for p := target; p != nil; p = p.AttachedTo() {
		if p == n {
			return true
		}
	}
	return false
}

func TestRandomAttachments(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 2024} {
		f := gofakeit.New(seed)
		u, _ := newTestUI(t)
		root, err := u.Genesis("")
		require.NoError(t, err)

		var panels, labels []*ui.Node
		for i := 0; i < 4; i++ {
			p, err := root.Add(ui.View("box.panel"))
			require.NoError(t, err)
			panels = append(panels, p)
		}
		for i := 0; i < 8; i++ {
			l, err := u.NewNode(ui.View("box.label"))
			require.NoError(t, err)
			labels = append(labels, l)
		}
		all := append(append([]*ui.Node(nil), panels...), labels...)

		for step := 0; step < 200; step++ {
			target := panels[f.IntRange(0, len(panels)-1)]
			switch f.IntRange(0, 3) {
			case 0:
				labels[f.IntRange(0, len(labels)-1)].Detach()
			case 1:
				p := panels[f.IntRange(0, len(panels)-1)]
				err := p.AttachTo(target)
				if contains(p, target) {
					require.ErrorIs(t, err, ui.ErrItemsNotAllowed)
				} else {
					require.NoError(t, err)
				}
			default:
				l := labels[f.IntRange(0, len(labels)-1)]
				position := f.IntRange(-1, 10)
				if f.Bool() {
					require.NoError(t, l.AttachTo(target, ui.At(position)))
				} else {
					_, err := target.AddItem(l, ui.At(position))
					require.NoError(t, err)
				}
				items := target.Items()
				want := position
				if want < 0 || want >= len(items) {
					want = len(items) - 1
				}
				assert.Same(t, l, items[want], "seed %d step %d", seed, step)
			}
			checkTree(t, panels, all)
		}
	}
}

type itemsLog struct {
	events []string
}

func (l *itemsLog) BuildItems(d ui.Descriptor) (ui.Children, error) {
	return d.Children(), nil
}

func (l *itemsLog) OnItemAdd(slot string, child *ui.Node) {
	l.events = append(l.events, "add "+slot+" "+child.ID())
}

func (l *itemsLog) OnItemRemove(slot string, child *ui.Node) {
	l.events = append(l.events, "remove "+slot+" "+child.ID())
}

func TestItemsObserver(t *testing.T) {
	u, _ := newTestUI(t)
	var component *itemsLog
	require.NoError(t, u.Define("test.items-log", ui.Composite{
		New: func(n *ui.Node) ui.Component {
			component = &itemsLog{}
			return component
		},
		Slots: []string{"aside"},
	}))

	n, err := u.NewNode(ui.View("test.items-log",
		ui.WithItems(ui.View("list.text")),
		ui.ItemsFor("aside", ui.View("list.text")),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "aside"}, n.Slots())

	child := n.Items("aside")[0]
	require.NotNil(t, n.RemoveNode(child))
	assert.Nil(t, n.RemoveNode(child))
	assert.Nil(t, n.RemoveItem(3))

	assert.Equal(t, []string{
		"add  ux-1",
		"add aside ux-2",
		"remove aside ux-2",
	}, component.events)
}

func TestReplaceItems(t *testing.T) {
	u, doc := newTestUI(t)
	var component *itemsLog
	require.NoError(t, u.Define("test.items-log", ui.Composite{
		New: func(n *ui.Node) ui.Component {
			component = &itemsLog{}
			return component
		},
	}))
	root, err := u.Render(ui.View("test.items-log", ui.WithItems(
		ui.View("box.label"),
		ui.View("box.label"),
		ui.View("box.label"),
	)), "")
	require.NoError(t, err)
	n := root.Items()[0]
	a, b, c := n.Items()[0], n.Items()[1], n.Items()[2]
	component.events = nil

	require.NoError(t, n.ReplaceItems([]ui.Item{c, a, ui.View("box.label")}))
	got := n.Items()
	require.Len(t, got, 3)
	assert.Same(t, c, got[0])
	assert.Same(t, a, got[1])
	assert.Nil(t, b.AttachedTo())
	assert.Equal(t, []string{
		"remove  " + a.ID(),
		"remove  " + b.ID(),
		"add  " + a.ID(),
		"add  " + got[2].ID(),
	}, component.events)

	marker := n.Element().FindAll("items")[0]
	require.Len(t, marker.Children(), 3)
	for i, el := range marker.Children() {
		assert.Same(t, got[i].Element(), el)
	}

	require.ErrorIs(t, n.ReplaceItems([]ui.Item{a, a}), ui.ErrInvalidDescriptor)
	require.ErrorIs(t, n.ReplaceItems(nil, ui.In("missing")), ui.ErrItemsNotAllowed)

	require.NoError(t, n.ReplaceItems(nil))
	assert.Empty(t, n.Items())
	assert.Empty(t, marker.Children())
	assert.Contains(t, bodyHTML(doc), `<items></items>`)
}
