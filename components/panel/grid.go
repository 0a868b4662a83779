// Package panel defines the panel.grid composite and the primitives it is
// made of.
package panel

import (
	"fmt"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/drivers/dom"
)

const (
	GridUX      = "panel.grid"
	HeaderRowUX = "panel.grid.header-row"
	HeaderUX    = "panel.grid.header"
	RowUX       = "panel.grid.row"
	CellUX      = "panel.grid.cell"

	HeadersSlot = "headers"
	RowsSlot    = "rows"
)

// Define registers the grid and its primitives.
func Define(d dom.Definer) error {
	primitives := []*dom.Template{
		dom.MustTemplate(HeaderRowUX, `<div class="header-row"><items></items></div>`, "", nil),
		dom.MustTemplate(HeaderUX, `<span class="header" data-bind-data-name="name" data-text="label"></span>`, "", nil),
		dom.MustTemplate(RowUX, `<div class="row"><items></items></div>`, "", nil),
		dom.MustTemplate(CellUX, `<span class="cell" data-text="value"></span>`, "", nil),
	}
	for _, p := range primitives {
		if err := d.Define(p.Name, p); err != nil {
			return err
		}
	}
	return d.Define(GridUX, ui.Composite{
		New: func(n *ui.Node) ui.Component { return &Grid{node: n} },
		Methods: map[string]ui.Method{
			"addHeader": ui.Bind((*Grid).AddHeader),
			"addRow":    ui.Bind((*Grid).AddRow),
		},
		Slots: []string{HeadersSlot, RowsSlot},
	})
}

// Grid lays out a header row built from the "headers" state, a list of
// {id, label} objects, and one row per entry of the "data" state, a list of
// lists of cell values.
type Grid struct {
	node *ui.Node
}

func (g *Grid) BuildItems(d ui.Descriptor) (ui.Children, error) {
	row := ui.View(HeaderRowUX)
	headers, err := headerViews(d.Fields["headers"])
	if err != nil {
		return ui.Children{}, err
	}
	row.Items = headers

	var rows []ui.Descriptor
	if data, ok := d.Fields["data"].(ui.List); ok {
		for _, r := range data {
			cells, ok := r.(ui.List)
			if !ok {
				return ui.Children{}, fmt.Errorf("grid row must be a list, got %T", r)
			}
			rows = append(rows, rowView(cells...))
		}
	}
	return ui.Children{For: map[string][]ui.Descriptor{
		HeadersSlot: {row},
		RowsSlot:    rows,
	}}, nil
}

// OnStateUpdate reconciles the header cells with new headers. Cells whose
// name is still listed are kept, relabeled and moved; the others are
// replaced.
func (g *Grid) OnStateUpdate(key string, prev, next ui.Value) error {
	if key != "headers" {
		return nil
	}
	headers, err := headerViews(next)
	if err != nil {
		return err
	}
	row := g.headerRow()
	if row == nil {
		return nil
	}

	existing := make(map[string]*ui.Node)
	for _, h := range row.Items() {
		if name, ok := h.State().Get("name"); ok {
			existing[name.String()] = h
		}
	}
	items := make([]ui.Item, 0, len(headers))
	for _, d := range headers {
		name, ok := d.Fields["name"]
		if !ok {
			items = append(items, d)
			continue
		}
		h, ok := existing[name.String()]
		if !ok {
			items = append(items, d)
			continue
		}
		delete(existing, name.String())
		if err := h.State().Set("label", d.Fields["label"]); err != nil {
			return err
		}
		items = append(items, h)
	}
	return row.ReplaceItems(items)
}

// AddHeader appends a header cell. It expects the header id and label.
func (g *Grid) AddHeader(args ...ui.Value) (ui.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("addHeader expects an id and a label, got %d arguments", len(args))
	}
	row := g.headerRow()
	if row == nil {
		return nil, fmt.Errorf("grid %s has no header row", g.node.ID())
	}
	n, err := row.AddItem(headerView(args[0], args[1]))
	if err != nil {
		return nil, err
	}
	return ui.String(n.ID()), nil
}

// AddRow appends a row holding one cell per argument.
func (g *Grid) AddRow(args ...ui.Value) (ui.Value, error) {
	n, err := g.node.AddItem(rowView(args...), ui.In(RowsSlot))
	if err != nil {
		return nil, err
	}
	return ui.String(n.ID()), nil
}

func (g *Grid) headerRow() *ui.Node {
	rows := g.node.Items(HeadersSlot)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func headerViews(v ui.Value) ([]ui.Descriptor, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.(ui.List)
	if !ok {
		return nil, fmt.Errorf("grid headers must be a list, got %T", v)
	}
	res := make([]ui.Descriptor, 0, len(list))
	for _, h := range list {
		o, ok := h.(ui.Object)
		if !ok {
			return nil, fmt.Errorf("grid header must be an object, got %T", h)
		}
		res = append(res, headerView(o["id"], o["label"]))
	}
	return res, nil
}

func headerView(id, label ui.Value) ui.Descriptor {
	d := ui.View(HeaderUX)
	if id != nil {
		d = d.With("name", id)
	}
	if label != nil {
		d = d.With("label", label)
	}
	return d
}

func rowView(cells ...ui.Value) ui.Descriptor {
	row := ui.View(RowUX)
	for _, c := range cells {
		row.Items = append(row.Items, ui.View(CellUX, ui.Field("value", c)))
	}
	return row
}
