// Command dev renders a small panel.grid tree, adds a header and a row
// through the promoted grid methods, and prints the document body.
package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/atdiar/uxui"
	"github.com/atdiar/uxui/components/panel"
	"github.com/atdiar/uxui/drivers/dom"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	doc := dom.NewDocument(logger)
	u := ui.New(doc, ui.WithLogger(logger))
	if err := panel.Define(u); err != nil {
		logger.Fatal("defining panel components", zap.Error(err))
	}

	root, err := u.Render(ui.View(panel.GridUX,
		ui.Field("headers", ui.MustValue([]interface{}{
			map[string]interface{}{"id": "name", "label": "Name"},
			map[string]interface{}{"id": "role", "label": "Role"},
		})),
		ui.Field("data", ui.MustValue([][]string{
			{"Ada", "engineer"},
			{"Grace", "admiral"},
		})),
		ui.Listen("click", func(n *ui.Node, evt ui.Event) {
			logger.Info("grid clicked", zap.String("node", n.ID()))
		}),
	), "")
	if err != nil {
		logger.Fatal("rendering grid", zap.Error(err))
	}
	grid := root.Items()[0]

	if _, err := grid.Invoke("addHeader", ui.String("since"), ui.String("Since")); err != nil {
		logger.Fatal("adding header", zap.Error(err))
	}
	if _, err := grid.Invoke("addRow", ui.String("Linus"), ui.String("maintainer"), ui.Number(1991)); err != nil {
		logger.Fatal("adding row", zap.Error(err))
	}
	doc.Click(grid.Element())

	fmt.Println(dom.Pretty(dom.InnerHTML(doc.Body())))
}
