package ui

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is the declarative description of a view: the ux name, the
// data that becomes the node state, its children and its event bindings.
type Descriptor struct {
	UX     string
	Fields Object

	// Items go to the default slot; ItemsFor maps slot labels to their items.
	Items    []Descriptor
	ItemsFor map[string][]Descriptor

	Listeners    map[string]Listener
	BubbleEvents bool
	CSSClass     string
}

// Item is what can be added to a node or to the root anchor: a Descriptor or
// an already built *Node.
type Item interface {
	item()
}

func (d Descriptor) item() {}
func (n *Node) item()      {}

// reservedFields are the descriptor keys that never become state.
var reservedFields = map[string]bool{
	"ux":           true,
	"identifier":   true,
	"items":        true,
	"itemsFor":     true,
	"children":     true,
	"listeners":    true,
	"bubbleEvents": true,
	"cssClass":     true,
}

// Children is the set of child descriptors of a node.
type Children struct {
	Items []Descriptor
	For   map[string][]Descriptor
}

func (d Descriptor) Children() Children {
	return Children{d.Items, d.ItemsFor}
}

// Empty reports whether there is no child at all.
func (c Children) Empty() bool {
	if len(c.Items) > 0 {
		return false
	}
	for _, l := range c.For {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// state extracts the initial state of a node, without the reserved keys.
func (d Descriptor) state() (Object, []string) {
	o := NewObject()
	var stripped []string
	for k, v := range d.Fields {
		if reservedFields[k] {
			stripped = append(stripped, k)
			continue
		}
		o[k] = v
	}
	return o, stripped
}

// With returns a copy of the descriptor with an additional field.
func (d Descriptor) With(key string, value Value) Descriptor {
	fields := NewObject()
	for k, v := range d.Fields {
		fields[k] = v
	}
	fields[key] = value
	d.Fields = fields
	return d
}

// ParseDescriptor decodes a YAML (or JSON) document into a Descriptor.
// Listeners cannot be expressed as data and must be set on the built node.
func ParseDescriptor(data []byte) (Descriptor, error) {
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	return DescriptorFromMap(m)
}

// DescriptorFromMap builds a Descriptor from decoded data. The ux name is read
// from "ux" or "identifier". "items" (or "children") is either a list for the
// default slot or a mapping of slot labels to lists.
func DescriptorFromMap(m map[string]interface{}) (Descriptor, error) {
	var d Descriptor
	d.Fields = NewObject()

	for k, raw := range m {
		var err error
		switch k {
		case "ux", "identifier":
			s, ok := raw.(string)
			if !ok {
				return d, fmt.Errorf("%w: %s must be a string", ErrInvalidDescriptor, k)
			}
			d.UX = s
		case "items", "children":
			err = d.decodeItems(k, raw)
		case "itemsFor":
			slots, ok := raw.(map[string]interface{})
			if !ok {
				return d, fmt.Errorf("%w: itemsFor must be a mapping", ErrInvalidDescriptor)
			}
			err = d.decodeItems(k, slots)
		case "bubbleEvents":
			b, ok := raw.(bool)
			if !ok {
				return d, fmt.Errorf("%w: bubbleEvents must be a boolean", ErrInvalidDescriptor)
			}
			d.BubbleEvents = b
		case "cssClass":
			s, ok := raw.(string)
			if !ok {
				return d, fmt.Errorf("%w: cssClass must be a string", ErrInvalidDescriptor)
			}
			d.CSSClass = s
		case "listeners":
			return d, fmt.Errorf("%w: listeners cannot be decoded", ErrInvalidDescriptor)
		default:
			v, verr := ValueOf(raw)
			if verr != nil {
				return d, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, k, verr)
			}
			if v != nil {
				d.Fields[k] = v
			}
		}
		if err != nil {
			return d, err
		}
	}
	if d.UX == "" {
		return d, fmt.Errorf("%w: missing ux", ErrInvalidDescriptor)
	}
	return d, nil
}

func (d *Descriptor) decodeItems(key string, raw interface{}) error {
	switch t := raw.(type) {
	case []interface{}:
		items, err := decodeList(key, t)
		if err != nil {
			return err
		}
		d.Items = append(d.Items, items...)
	case map[string]interface{}:
		if d.ItemsFor == nil {
			d.ItemsFor = make(map[string][]Descriptor, len(t))
		}
		for slot, l := range t {
			list, ok := l.([]interface{})
			if !ok {
				return fmt.Errorf("%w: %s.%s must be a list", ErrInvalidDescriptor, key, slot)
			}
			items, err := decodeList(key+"."+slot, list)
			if err != nil {
				return err
			}
			d.ItemsFor[slot] = append(d.ItemsFor[slot], items...)
		}
	case nil:
	default:
		return fmt.Errorf("%w: %s must be a list or a mapping", ErrInvalidDescriptor, key)
	}
	return nil
}

func decodeList(key string, l []interface{}) ([]Descriptor, error) {
	res := make([]Descriptor, 0, len(l))
	for i, raw := range l {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a mapping", ErrInvalidDescriptor, key, i)
		}
		d, err := DescriptorFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		res = append(res, d)
	}
	return res, nil
}
