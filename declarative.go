package ui

// ItemOption selects where an item goes when it is attached.
type ItemOption func(*itemOptions)

type itemOptions struct {
	slot     string
	position int
}

func newItemOptions(opts []ItemOption) itemOptions {
	o := itemOptions{slot: DefaultSlot, position: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// In targets the slot with the given label instead of the default slot.
func In(slot string) ItemOption {
	return func(o *itemOptions) {
		o.slot = slot
	}
}

// At sets the insertion position within the slot. A position past the end of
// the slot appends.
func At(position int) ItemOption {
	return func(o *itemOptions) {
		o.position = position
	}
}

// View builds a Descriptor declaratively.
//
//	ui.View("form.form",
//		ui.Field("title", ui.String("Sign in")),
//		ui.WithItems(ui.View("form.text-input")),
//	)
func View(ux string, modifiers ...func(Descriptor) Descriptor) Descriptor {
	d := Descriptor{UX: ux, Fields: NewObject()}
	for _, mod := range modifiers {
		d = mod(d)
	}
	return d
}

func Field(key string, value Value) func(Descriptor) Descriptor {
	return func(d Descriptor) Descriptor {
		return d.With(key, value)
	}
}

func WithItems(items ...Descriptor) func(Descriptor) Descriptor {
	return func(d Descriptor) Descriptor {
		d.Items = append(append([]Descriptor(nil), d.Items...), items...)
		return d
	}
}

func ItemsFor(slot string, items ...Descriptor) func(Descriptor) Descriptor {
	return func(d Descriptor) Descriptor {
		m := make(map[string][]Descriptor, len(d.ItemsFor)+1)
		for k, v := range d.ItemsFor {
			m[k] = v
		}
		m[slot] = append(append([]Descriptor(nil), m[slot]...), items...)
		d.ItemsFor = m
		return d
	}
}

func Listen(event string, cb Listener) func(Descriptor) Descriptor {
	return func(d Descriptor) Descriptor {
		m := make(map[string]Listener, len(d.Listeners)+1)
		for k, v := range d.Listeners {
			m[k] = v
		}
		m[event] = cb
		d.Listeners = m
		return d
	}
}

func Bubbling(d Descriptor) Descriptor {
	d.BubbleEvents = true
	return d
}

func CSSClass(class string) func(Descriptor) Descriptor {
	return func(d Descriptor) Descriptor {
		d.CSSClass = class
		return d
	}
}
