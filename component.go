package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Primitive is a precompiled renderable definition. Each fragment is invoked
// with the per-instance data context of the node being built.
type Primitive interface {
	Markup(ctx *DataContext) []NativeElement
	// Style may return nil.
	Style(ctx *DataContext) []NativeElement
	// Script runs once per node instance, after the node is first rendered.
	Script(ctx *DataContext)
}

// Component is the behavior owned by a composite node. BuildItems derives the
// initial children of the node from its descriptor. It is called once, during
// node construction.
type Component interface {
	BuildItems(d Descriptor) (Children, error)
}

// Readier is implemented by components that need to run once their initial
// children are attached.
type Readier interface {
	OnReady()
}

// StateUpdater is notified of every state write on the owning node. The new
// value is already stored when the hook runs; a returned error is handed
// back to the writer and does not undo the write.
type StateUpdater interface {
	OnStateUpdate(key string, prev, next Value) error
}

// ListenersUpdater is notified of every listener write on the owning node and
// returns the native handler to bind for the event, usually built from
// (*Node).Handler. A nil handler leaves the event unbound.
type ListenersUpdater interface {
	OnListenersUpdate(event string, prev, next Listener) func(Event)
}

// ItemsObserver is notified when the owning node gains or loses a direct
// child.
type ItemsObserver interface {
	OnItemAdd(slot string, child *Node)
	OnItemRemove(slot string, child *Node)
}

// Method is a component method promoted onto the owning node.
type Method func(c Component, args ...Value) (Value, error)

// Bind adapts a method of a concrete component type, typically a method
// expression such as (*Grid).AddHeader.
func Bind[T Component](fn func(c T, args ...Value) (Value, error)) Method {
	return func(c Component, args ...Value) (Value, error) {
		t, ok := c.(T)
		if !ok {
			return nil, fmt.Errorf("%w: component is %T", ErrInvalidDefinition, c)
		}
		return fn(t, args...)
	}
}

// Composite is the registry definition of a composite ux.
type Composite struct {
	// New instantiates the component owned by a freshly built node.
	New func(n *Node) Component
	// Methods are promoted onto every node of this ux. Their names may not
	// collide with a Node method.
	Methods map[string]Method
	// Slots are the labels of the insertion markers created next to the
	// default one.
	Slots []string
}

// reservedMethods lists the names a promoted method may not use.
var reservedMethods = []string{
	"id", "ux", "name", "kind", "state", "listeners", "bubbleEvents",
	"items", "getItems", "slots", "slot", "attachedTo",
	"addItem", "removeItem", "removeNode", "replaceItems", "attachTo", "detach",
	"up", "down", "invoke", "methods", "element", "component", "handler",
}

func isReserved(method string) bool {
	for _, r := range reservedMethods {
		if strings.EqualFold(r, method) {
			return true
		}
	}
	return false
}

// validate checks the definition of a composite named ux.
func (c Composite) validate(ux string) error {
	if c.New == nil {
		return fmt.Errorf("%w: %s has no constructor", ErrInvalidDefinition, ux)
	}
	var offending []string
	for name, m := range c.Methods {
		if m == nil {
			return fmt.Errorf("%w: %s has no body for method %q", ErrInvalidDefinition, ux, name)
		}
		if isReserved(name) {
			offending = append(offending, name)
		}
	}
	if len(offending) > 0 {
		sort.Strings(offending)
		return reservedKeys(ux, offending)
	}
	seen := make(map[string]bool, len(c.Slots))
	for _, s := range c.Slots {
		if s == DefaultSlot || seen[s] {
			return multipleSlotRefs(ux, s)
		}
		seen[s] = true
	}
	return nil
}
