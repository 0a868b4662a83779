package ui

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Node is the runtime instance of a Descriptor. It owns a reactive state, a
// set of listeners, a rendered surface and the named slots found on that
// surface. A Node is attached to at most one parent at any time.
type Node struct {
	ui     *UI
	logger *zap.Logger

	id   string
	ux   string
	name string
	kind Kind

	state       *State
	listeners   *Listeners
	unlisteners NativeEventUnlisteners

	bubbleEvents bool

	// surface is created once. mounted is what was inserted in the parent:
	// the surface itself or the repeat-template clone wrapping it.
	surface NativeElement
	mounted NativeElement

	slots     map[string]*slot
	slotOrder []string

	parent  *Node
	slot    string
	genesis *Genesis

	component Component
	methods   map[string]func(args ...Value) (Value, error)

	primitive Primitive
	data      *DataContext
	rendered  bool
	pending   Children
}

// NewNode builds the node described by d along with its declared children.
// An unknown ux fails with ErrUndefined before anything is built.
func (u *UI) NewNode(d Descriptor) (*Node, error) {
	kind, def, err := u.registry.Lookup(d.UX)
	if err != nil {
		return nil, err
	}

	n := &Node{
		ui:           u,
		id:           u.newID(),
		ux:           d.UX,
		name:         Normalize(d.UX),
		kind:         kind,
		unlisteners:  NewNativeEventUnlisteners(),
		bubbleEvents: d.BubbleEvents,
		slots:        make(map[string]*slot),
	}
	n.logger = u.logger.With(zap.String("id", n.id), zap.String("ux", n.name))

	initial, stripped := d.state()
	if len(stripped) > 0 {
		n.logger.Debug("reserved fields ignored", zap.Strings("keys", stripped))
	}
	n.state = newState(n, initial, n.onStateUpdate)
	n.data = &DataContext{node: n}

	switch kind {
	case KindComposite:
		err = n.buildComposite(def.(Composite))
	case KindPrimitive:
		err = n.buildPrimitive(def.(Primitive))
	}
	if err != nil {
		return nil, err
	}

	n.listeners = newListeners(d.Listeners, n.onListenersUpdate)
	for _, event := range n.listeners.Keys() {
		cb, _ := n.listeners.Get(event)
		n.onListenersUpdate(event, nil, cb)
	}

	n.logger.Debug("node built", zap.Stringer("kind", kind))

	switch kind {
	case KindComposite:
		children, err := n.component.BuildItems(d)
		if err != nil {
			return nil, fmt.Errorf("building items of %s: %w", n.name, err)
		}
		if err := n.addChildren(children); err != nil {
			return nil, err
		}
		if r, ok := n.component.(Readier); ok {
			r.OnReady()
		}
	case KindPrimitive:
		n.pending = d.Children()
	}

	if d.CSSClass != "" {
		addClass(n.surface, d.CSSClass)
	}
	return n, nil
}

func (n *Node) buildComposite(c Composite) error {
	if err := c.validate(n.name); err != nil {
		return err
	}
	doc := n.ui.document
	surface := doc.CreateElement("div")
	surface.SetAttribute("id", n.id)
	surface.SetAttribute("ux", n.name)
	surface.AppendChild(doc.CreateElement(markerTag))
	for _, label := range c.Slots {
		m := doc.CreateElement(markerTag)
		m.SetAttribute(markerLabel, label)
		surface.AppendChild(m)
	}
	n.surface = surface
	if err := n.scanSlots(); err != nil {
		return err
	}

	n.component = c.New(n)
	if n.component == nil {
		return fmt.Errorf("%w: %s constructor returned no component", ErrInvalidDefinition, n.name)
	}
	n.methods = make(map[string]func(args ...Value) (Value, error), len(c.Methods))
	for name, m := range c.Methods {
		m := m
		component := n.component
		n.methods[name] = func(args ...Value) (Value, error) {
			return m(component, args...)
		}
	}
	return nil
}

func (n *Node) buildPrimitive(p Primitive) error {
	n.primitive = p
	surface := n.ui.document.CreateElement(n.name)
	surface.SetAttribute("id", n.id)
	surface.SetAttribute("ux", n.name)
	n.surface = surface

	for _, s := range p.Style(n.data) {
		surface.AppendChild(s)
	}
	for _, m := range p.Markup(n.data) {
		surface.AppendChild(m)
	}
	return n.scanSlots()
}

// postRender runs once, on the first attachment of the node. Primitive
// nodes run their script and add their declared children.
func (n *Node) postRender() error {
	if n.rendered {
		return nil
	}
	n.rendered = true
	if n.primitive == nil {
		return nil
	}
	n.primitive.Script(n.data)
	children := n.pending
	n.pending = Children{}
	return n.addChildren(children)
}

// addChildren adds the default items first, then the labeled ones in the
// order their markers appear on the surface.
func (n *Node) addChildren(c Children) error {
	for _, d := range c.Items {
		if _, err := n.AddItem(d); err != nil {
			return err
		}
	}
	if len(c.For) == 0 {
		return nil
	}
	labels := make([]string, 0, len(c.For))
	for label := range c.For {
		labels = append(labels, label)
	}
	position := func(label string) int {
		for i, s := range n.slotOrder {
			if s == label {
				return i
			}
		}
		return len(n.slotOrder)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		pi, pj := position(labels[i]), position(labels[j])
		if pi != pj {
			return pi < pj
		}
		return labels[i] < labels[j]
	})
	for _, label := range labels {
		for _, d := range c.For[label] {
			if _, err := n.AddItem(d, In(label)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Node) onStateUpdate(key string, prev, next Value) error {
	n.data.notify(key)
	if su, ok := n.component.(StateUpdater); ok {
		if err := su.OnStateUpdate(key, prev, next); err != nil {
			n.logger.Warn("state update rejected", zap.String("key", key), zap.Error(err))
			return err
		}
	}
	return nil
}

func (n *Node) ID() string { return n.id }

// UX returns the name the node was described with, before normalization.
func (n *Node) UX() string { return n.ux }

// Name returns the normalized ux name.
func (n *Node) Name() string { return n.name }

func (n *Node) Kind() Kind                { return n.kind }
func (n *Node) State() *State             { return n.state }
func (n *Node) Listeners() *Listeners     { return n.listeners }
func (n *Node) BubbleEvents() bool        { return n.bubbleEvents }
func (n *Node) Element() NativeElement    { return n.surface }
func (n *Node) Component() Component      { return n.component }
func (n *Node) UI() *UI                   { return n.ui }
func (n *Node) DataContext() *DataContext { return n.data }

// SetBubbleEvents changes whether the events handled by this node are
// forwarded to its parent.
func (n *Node) SetBubbleEvents(b bool) { n.bubbleEvents = b }

// Invoke calls a method promoted from the node's component.
func (n *Node) Invoke(method string, args ...Value) (Value, error) {
	m, ok := n.methods[method]
	if !ok {
		return nil, &Error{Code: ErrUnknownMethod, UX: n.name, Keys: []string{method}}
	}
	return m(args...)
}

// Methods lists the promoted method names in lexical order.
func (n *Node) Methods() []string {
	names := make([]string, 0, len(n.methods))
	for name := range n.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *Node) String() string {
	return n.name + "#" + n.id
}

// Nodes is an ordered list of nodes.
type Nodes struct {
	List []*Node
}

func NewNodes(nodes ...*Node) *Nodes {
	return &Nodes{nodes}
}

func (e *Nodes) InsertLast(nodes ...*Node) *Nodes {
	e.List = append(e.List, nodes...)
	return e
}

// Insert places el at index. An out of range index appends.
func (e *Nodes) Insert(el *Node, index int) *Nodes {
	if index < 0 || index > len(e.List) {
		index = len(e.List)
	}
	nel := make([]*Node, 0, len(e.List)+1)
	nel = append(nel, e.List[:index]...)
	nel = append(nel, el)
	nel = append(nel, e.List[index:]...)
	e.List = nel
	return e
}

func (e *Nodes) Remove(el *Node) *Nodes {
	index := e.Index(el)
	if index >= 0 {
		e.List = append(e.List[:index], e.List[index+1:]...)
	}
	return e
}

func (e *Nodes) Index(el *Node) int {
	for k, node := range e.List {
		if node == el {
			return k
		}
	}
	return -1
}

// Copy returns a copy of the list that is safe to keep.
func (e *Nodes) Copy() []*Node {
	if len(e.List) == 0 {
		return nil
	}
	return append([]*Node(nil), e.List...)
}
