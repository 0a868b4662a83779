package dom

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/atdiar/uxui"
)

// Dispatch fires a bubbling event of the given type at target. Handlers of
// the target run first, then those of its ancestors, until one of them stops
// the propagation. It reports whether the default action was prevented.
func (d *Document) Dispatch(target ui.NativeElement, typ string) bool {
	t := d.element(target)
	evt := ui.NewEvent(typ, true, t, nil)

	for n := t.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		el, ok := d.cached(n)
		if !ok || len(el.listeners[typ]) == 0 {
			continue
		}
		evt.SetCurrentTarget(el)
		for _, l := range el.listeners[typ] {
			if l.removed {
				continue
			}
			l.fn(evt)
			if evt.ImmediatelyStopped() {
				break
			}
		}
		if evt.Stopped() || !evt.Bubbles() {
			break
		}
	}

	d.logger.Debug("event dispatched",
		zap.String("type", typ),
		zap.String("target", t.node.Data),
		zap.Bool("defaultPrevented", evt.DefaultPrevented()),
	)
	return evt.DefaultPrevented()
}

// Click dispatches a click event at target.
func (d *Document) Click(target ui.NativeElement) bool {
	return d.Dispatch(target, "click")
}
