package ui

import (
	"go.uber.org/zap"
)

// Event is the event object handed to listeners. Document drivers build
// them with NewEvent or provide their own implementation.
type Event interface {
	Type() string
	Target() NativeElement
	CurrentTarget() NativeElement

	PreventDefault()
	StopPropagation()
	StopImmediatePropagation()
	SetCurrentTarget(NativeElement)

	Bubbles() bool
	DefaultPrevented() bool
	Stopped() bool
	ImmediatelyStopped() bool

	Native() interface{} // returns the native event object
}

type eventObject struct {
	typ           string
	target        NativeElement
	currentTarget NativeElement

	defaultPrevented   bool
	bubbles            bool
	stopped            bool
	immediatelyStopped bool

	nativeObject interface{}
}

type defaultPreventer interface {
	PreventDefault()
}

func (e *eventObject) Type() string                     { return e.typ }
func (e *eventObject) Target() NativeElement            { return e.target }
func (e *eventObject) CurrentTarget() NativeElement     { return e.currentTarget }
func (e *eventObject) SetCurrentTarget(t NativeElement) { e.currentTarget = t }

func (e *eventObject) PreventDefault() {
	if v, ok := e.nativeObject.(defaultPreventer); ok {
		v.PreventDefault()
	}
	e.defaultPrevented = true
}

func (e *eventObject) StopPropagation() { e.stopped = true }

func (e *eventObject) StopImmediatePropagation() {
	e.stopped = true
	e.immediatelyStopped = true
}

func (e *eventObject) Bubbles() bool            { return e.bubbles }
func (e *eventObject) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *eventObject) Stopped() bool            { return e.stopped }
func (e *eventObject) ImmediatelyStopped() bool { return e.immediatelyStopped }
func (e *eventObject) Native() interface{}      { return e.nativeObject }

func NewEvent(typ string, bubbles bool, target NativeElement, nativeEvent interface{}) Event {
	return &eventObject{
		typ:           typ,
		target:        target,
		currentTarget: target,
		bubbles:       bubbles,
		nativeObject:  nativeEvent,
	}
}

// onListenersUpdate rebinds the native handler of event after a listener
// write.
func (n *Node) onListenersUpdate(event string, prev, next Listener) {
	n.unlisteners.Apply(event)

	var handler func(Event)
	if lu, ok := n.component.(ListenersUpdater); ok {
		handler = lu.OnListenersUpdate(event, prev, next)
	} else if next != nil {
		handler = n.Handler(event)
	}
	if handler == nil {
		n.logger.Debug("listener unbound", zap.String("event", event))
		return
	}
	n.unlisteners.Add(event, n.surface.AddEventListener(event, handler))
	n.logger.Debug("listener bound", zap.String("event", event))
}

// Handler returns the native handler of the node for event. It stops the
// native propagation, prevents the default action and calls the current
// listener. When the node bubbles its events, the call is then forwarded to
// the listener of its parent.
// Listeners are looked up when the event is handled, not when it is bound.
func (n *Node) Handler(event string) func(Event) {
	return func(evt Event) {
		evt.StopPropagation()
		evt.PreventDefault()

		target := n.attribute(evt)
		if cb, ok := n.listeners.Get(event); ok {
			cb(target, evt)
		}
		if !n.bubbleEvents || n.parent == nil {
			return
		}
		if cb, ok := n.parent.listeners.Get(event); ok {
			cb(target, evt)
		}
	}
}

// attribute returns the node an event handled by n is reported for: the
// deepest node between the event target and n such that it and every node
// up to n bubble their events. Defaults to n.
func (n *Node) attribute(evt Event) *Node {
	var origin *Node
	for e := evt.Target(); e != nil; e = e.Parent() {
		if e == n.surface {
			return n
		}
		if _, ok := e.Attribute("ux"); !ok {
			continue
		}
		id, _ := e.Attribute("id")
		if origin = n.descendant(id); origin != nil {
			break
		}
	}
	if origin == nil {
		return n
	}

	var chain []*Node
	for c := origin; c != nil && c != n; c = c.parent {
		chain = append(chain, c)
	}
	target := n
	for i := len(chain) - 1; i >= 0; i-- {
		if !chain[i].bubbleEvents {
			break
		}
		target = chain[i]
	}
	return target
}
