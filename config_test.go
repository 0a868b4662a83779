package ui_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/drivers/dom"
)

func TestLoadConfig(t *testing.T) {
	c, err := ui.LoadConfig(strings.NewReader(`
idPrefix: app-
idScheme: sequence
mountId: app
logLevel: warn
`))
	require.NoError(t, err)
	want := ui.Config{IDPrefix: "app-", IDScheme: "sequence", MountID: "app", LogLevel: "warn"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	c, err = ui.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, ui.Config{}, c)
}

func TestLoadConfigErrors(t *testing.T) {
	tcs := []struct {
		name, doc string
	}{
		{"unknown field", "idPrefx: app-"},
		{"unknown scheme", "idScheme: random"},
		{"unknown level", "logLevel: verbose"},
		{"prefix too long", "idPrefix: " + strings.Repeat("x", 33)},
		{"not a mapping", "- a"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ui.LoadConfig(strings.NewReader(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestConfigOptions(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<html><body><div id="app"></div></body></html>`), nil)
	require.NoError(t, err)
	c := ui.Config{IDPrefix: "app-", MountID: "app", LogLevel: "debug"}
	u := ui.New(doc, c.Options(zaptest.NewLogger(t))...)
	require.NoError(t, u.Define("list.text", dom.MustTemplate("list.text", `<span data-text="text"></span>`, "", nil)))

	g, err := u.Render(ui.View("list.text"), "")
	require.NoError(t, err)
	_, err = g.Add(ui.View("list.text"))
	require.NoError(t, err)

	got := ids(g.Items())
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], "app-"), got[0])
	assert.True(t, strings.HasPrefix(got[1], "app-"), got[1])
	assert.NotEqual(t, got[0], got[1])
	mount, _ := doc.ElementByID("app")
	assert.Same(t, mount, g.Element())
}

func TestUUIDs(t *testing.T) {
	u, _ := newTestUI(t, ui.Config{IDScheme: "uuid"}.Options(nil)...)
	a, err := u.NewNode(ui.View("list.text"))
	require.NoError(t, err)
	b, err := u.NewNode(ui.View("list.text"))
	require.NoError(t, err)

	_, err = uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSequence(t *testing.T) {
	next := ui.Sequence("n")
	got := []string{next(), next(), next()}
	if diff := cmp.Diff([]string{"n0", "n1", "n2"}, got); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestIDsUniqueAcrossUIs(t *testing.T) {
	r := ui.NewRegistry(nil)
	require.NoError(t, r.Define("list.text", dom.MustTemplate("list.text", `<span data-text="text"></span>`, "", nil)))

	tcs := []struct {
		name string
		opts []ui.Option
	}{
		{"default", nil},
		{"prefix", []ui.Option{ui.WithIDPrefix("shared-")}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			doc := dom.NewDocument(nil)
			a := ui.New(doc, append([]ui.Option{ui.WithRegistry(r)}, tc.opts...)...)
			b := ui.New(doc, append([]ui.Option{ui.WithRegistry(r)}, tc.opts...)...)

			seen := make(map[string]bool)
			for i := 0; i < 3; i++ {
				for _, u := range []*ui.UI{a, b} {
					n, err := u.NewNode(ui.View("list.text"))
					require.NoError(t, err)
					require.False(t, seen[n.ID()], n.ID())
					seen[n.ID()] = true
				}
			}
		})
	}
}
