// Package ui is a library of functions for declarative view trees.
package ui

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type discriminant string // just here to pin the definition of the Value interface to this package

// Value is the type for Node state values.
//
// It is a closed union: String, Number, Bool, List, Object and Func. The engine
// never interprets values beyond copying them and forwarding them to hooks.
type Value interface {
	discriminant() discriminant
	ValueType() string
	String() string
}

type Bool bool

func (b Bool) discriminant() discriminant { return "uxui" }
func (b Bool) ValueType() string          { return "Bool" }
func (b Bool) String() string             { return strconv.FormatBool(bool(b)) }

type String string

func (s String) discriminant() discriminant { return "uxui" }
func (s String) ValueType() string          { return "String" }
func (s String) String() string             { return string(s) }

type Number float64

func (n Number) discriminant() discriminant { return "uxui" }
func (n Number) ValueType() string          { return "Number" }
func (n Number) String() string             { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

// Func is an opaque callback carried as state. The engine only stores and
// forwards it.
type Func func(args ...Value) Value

func (f Func) discriminant() discriminant { return "uxui" }
func (f Func) ValueType() string          { return "Func" }
func (f Func) String() string             { return "" }

type List []Value

func (l List) discriminant() discriminant { return "uxui" }
func (l List) ValueType() string          { return "List" }

// String joins the items with commas.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		if v != nil {
			parts[i] = v.String()
		}
	}
	return strings.Join(parts, ",")
}

func (l List) Filter(validator func(Value) bool) List {
	var insertIndex int
	nl := Copy(l).(List)
	for _, e := range nl {
		if validator(e) {
			nl[insertIndex] = e
			insertIndex++
		}
	}
	return nl[:insertIndex]
}

func NewList(val ...Value) List {
	if val != nil {
		return List(val)
	}
	return List(make([]Value, 0))
}

type Object map[string]Value

func (o Object) discriminant() discriminant { return "uxui" }
func (o Object) ValueType() string          { return "Object" }

// String renders the object as JSON with sorted keys. Func entries are skipped.
func (o Object) String() string {
	b, err := json.Marshal(Raw(o))
	if err != nil {
		return ""
	}
	return string(b)
}

func (o Object) Get(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

func (o Object) Set(key string, value Value) Object {
	o[key] = value
	return o
}

// Keys returns the object keys in lexical order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func NewObject() Object {
	return Object(make(map[string]Value))
}

// ValueOf converts plain Go data, typically decoded YAML or JSON, into a Value.
// A nil input returns a nil Value and no error.
func ValueOf(i interface{}) (Value, error) {
	switch t := i.(type) {
	case nil:
		return nil, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Number(t), nil
	case int32:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case uint:
		return Number(t), nil
	case uint64:
		return Number(t), nil
	case float32:
		return Number(t), nil
	case float64:
		return Number(t), nil
	case func(args ...Value) Value:
		return Func(t), nil
	case []interface{}:
		l := make(List, 0, len(t))
		for k, item := range t {
			v, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", k, err)
			}
			l = append(l, v)
		}
		return l, nil
	case map[string]interface{}:
		o := NewObject()
		for k, item := range t {
			v, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			if v == nil {
				continue
			}
			o[k] = v
		}
		return o, nil
	}

	rv := reflect.ValueOf(i)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		l := make(List, 0, rv.Len())
		for k := 0; k < rv.Len(); k++ {
			v, err := ValueOf(rv.Index(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", k, err)
			}
			l = append(l, v)
		}
		return l, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		o := NewObject()
		iter := rv.MapRange()
		for iter.Next() {
			v, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", iter.Key().String(), err)
			}
			if v == nil {
				continue
			}
			o[iter.Key().String()] = v
		}
		return o, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", i)
}

// MustValue is ValueOf for literals known to convert.
func MustValue(i interface{}) Value {
	v, err := ValueOf(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Raw converts a Value back into plain Go data. Func values convert to nil.
func Raw(v Value) interface{} {
	switch t := v.(type) {
	case String:
		return string(t)
	case Number:
		return float64(t)
	case Bool:
		return bool(t)
	case List:
		r := make([]interface{}, len(t))
		for i, item := range t {
			r[i] = Raw(item)
		}
		return r
	case Object:
		r := make(map[string]interface{}, len(t))
		for k, item := range t {
			if _, ok := item.(Func); ok {
				continue
			}
			r[k] = Raw(item)
		}
		return r
	}
	return nil
}

// Copy creates a deep-copy of a value.
func Copy(v Value) Value {
	switch t := v.(type) {
	case List:
		r := List(make([]Value, len(t), cap(t)))
		for i, v := range t {
			r[i] = Copy(v)
		}
		return r
	case Object:
		o := NewObject()
		for k, v := range t {
			o[k] = Copy(v)
		}
		return o
	}
	return v
}

// Equal reports whether two values hold the same data. Func values are only
// equal to themselves when both are nil.
func Equal(v Value, w Value) bool {
	if v == nil || w == nil {
		return v == nil && w == nil
	}
	if v.ValueType() != w.ValueType() {
		return false
	}

	switch vt := v.(type) {
	case List:
		wl := w.(List)
		if len(vt) != len(wl) {
			return false
		}
		for i, item := range vt {
			if !Equal(item, wl[i]) {
				return false
			}
		}
		return true
	case Object:
		wo := w.(Object)
		if len(vt) != len(wo) {
			return false
		}
		for k, item := range vt {
			witem, ok := wo[k]
			if !ok || !Equal(item, witem) {
				return false
			}
		}
		return true
	case Func:
		return vt == nil && w.(Func) == nil
	}
	return v == w
}

// lookupPath resolves a dotted path ("headers.0.label") inside a value.
func lookupPath(v Value, path []string) (Value, bool) {
	for _, p := range path {
		switch t := v.(type) {
		case Object:
			next, ok := t[p]
			if !ok {
				return nil, false
			}
			v = next
		case List:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			v = t[i]
		default:
			return nil, false
		}
	}
	return v, v != nil
}
