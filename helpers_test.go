package ui_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/drivers/dom"
)

// testTemplates are the primitives shared by the tests of this package.
var testTemplates = []struct {
	name, markup string
}{
	{"form.field", `<div class="form-group"><label data-text="label"></label><items></items></div>`},
	{"form.form", `<form><items></items></form>`},
	{"form.text-input", `<input type="text"/>`},
	{"form.email-input", `<input type="email" data-bind-id="exampleInputEmail2"/>`},
	{"form.submit-button", `<button type="submit">Submit</button>`},
	{"layout.columns", `<div class="columns"><items for="left"></items><items for="right"></items></div>`},
	{"list.bullets", `<ul><items><template><li class="bullet"><item></item></li></template></items></ul>`},
	{"list.text", `<span data-text="text"></span>`},
	{"box.panel", `<div class="panel"><items></items></div>`},
	{"box.label", `<span class="label">label</span>`},
}

func newTestUI(t *testing.T, opts ...ui.Option) (*ui.UI, *dom.Document) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	doc := dom.NewDocument(logger)
	base := []ui.Option{ui.WithLogger(logger), ui.WithIDGenerator(ui.Sequence("ux-"))}
	u := ui.New(doc, append(base, opts...)...)
	for _, tt := range testTemplates {
		require.NoError(t, u.Define(tt.name, dom.MustTemplate(tt.name, tt.markup, "", nil)))
	}
	return u, doc
}

func bodyHTML(doc *dom.Document) string {
	return dom.InnerHTML(doc.Body())
}

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func ids(nodes []*ui.Node) []string {
	res := make([]string, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, n.ID())
	}
	return res
}
