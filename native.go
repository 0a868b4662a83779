package ui

import "strings"

// NativeElement is the handle on a rendered element provided by a document
// driver. The engine only needs the operations below; drivers are free to
// back them with a real browser DOM or an in-memory tree.
type NativeElement interface {
	Tag() string

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	SetText(text string)

	Parent() NativeElement
	Children() []NativeElement
	AppendChild(child NativeElement)
	// InsertChild inserts child before the element child at index. An index
	// out of range appends.
	InsertChild(child NativeElement, index int)
	ReplaceWith(other NativeElement)
	Remove()

	// FindAll returns the descendants with the given tag, in document order.
	FindAll(tag string) []NativeElement
	Clone() NativeElement

	AddEventListener(event string, handler func(Event)) (remove func())
}

// NativeDocument creates elements and resolves mount points.
type NativeDocument interface {
	CreateElement(tag string) NativeElement
	ElementByID(id string) (NativeElement, bool)
	Body() NativeElement
}

// NativeEventUnlisteners keeps the removal functions of the native handlers
// bound for a node, one per event name.
type NativeEventUnlisteners struct {
	List map[string]func()
}

func NewNativeEventUnlisteners() NativeEventUnlisteners {
	return NativeEventUnlisteners{make(map[string]func())}
}

// Add records the removal function for an event. A previously recorded
// function for the same event is run first.
func (n NativeEventUnlisteners) Add(event string, f func()) {
	n.Apply(event)
	n.List[event] = f
}

func (n NativeEventUnlisteners) Apply(event string) {
	removeNativeEventListener, ok := n.List[event]
	if !ok {
		return
	}
	delete(n.List, event)
	removeNativeEventListener()
}

// addClass appends classes to the class attribute of an element, skipping
// those already present.
func addClass(e NativeElement, classes ...string) {
	current, _ := e.Attribute("class")
	present := make(map[string]bool)
	var list []string
	for _, c := range strings.Fields(current) {
		if present[c] {
			continue
		}
		present[c] = true
		list = append(list, c)
	}
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if present[f] {
				continue
			}
			present[f] = true
			list = append(list, f)
		}
	}
	if len(list) == 0 {
		return
	}
	e.SetAttribute("class", strings.Join(list, " "))
}
