package ui

import (
	"errors"
	"sort"
	"strings"
)

// State is the reactive state of a Node. Every write is stored first, then
// the node hook and the watchers run before Set returns.
type State struct {
	node     *Node
	values   Object
	hook     func(key string, prev, next Value) error
	watchers *MutationCallbacks
}

func newState(n *Node, initial Object, hook func(key string, prev, next Value) error) *State {
	values := NewObject()
	for k, v := range initial {
		values[k] = Copy(v)
	}
	return &State{n, values, hook, NewMutationCallbacks()}
}

func (s *State) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Lookup resolves a dotted path such as "headers.0.label".
func (s *State) Lookup(path string) (Value, bool) {
	if path == "" {
		return nil, false
	}
	shards := strings.Split(path, ".")
	v, ok := s.values[shards[0]]
	if !ok {
		return nil, false
	}
	return lookupPath(v, shards[1:])
}

// Set stores value under key and notifies. Setting a nil value deletes the
// key. The returned error comes from the update hooks: the value is stored
// regardless.
func (s *State) Set(key string, value Value) error {
	prev := s.values[key]
	if value == nil {
		delete(s.values, key)
	} else {
		s.values[key] = value
	}

	var errs []error
	if s.hook != nil {
		if err := s.hook(key, prev, value); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.watchers.DispatchEvent(s.node.newMutationEvent("state", key, prev, value)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Keys returns the state keys in lexical order.
func (s *State) Keys() []string {
	return s.values.Keys()
}

// Object returns a deep copy of the state.
func (s *State) Object() Object {
	return Copy(s.values).(Object)
}

// Watch registers a handler run after every write to key or to a dotted path
// below it.
func (s *State) Watch(key string, h *MutationHandler) *State {
	s.watchers.Add(key, h)
	return s
}

func (s *State) Unwatch(key string, h *MutationHandler) *State {
	s.watchers.Remove(key, h)
	return s
}

// Listener is an event callback bound to a Node. n is the node the event is
// attributed to, which differs from the listening node when the event bubbled
// from a descendant.
type Listener func(n *Node, evt Event)

// Listeners is the reactive set of event callbacks of a Node. Every write
// rebinds the native handler of the event.
type Listeners struct {
	list map[string]Listener
	hook func(event string, prev, next Listener)
}

func newListeners(initial map[string]Listener, hook func(event string, prev, next Listener)) *Listeners {
	l := &Listeners{make(map[string]Listener, len(initial)), hook}
	for event, cb := range initial {
		if cb != nil {
			l.list[event] = cb
		}
	}
	return l
}

func (l *Listeners) Get(event string) (Listener, bool) {
	cb, ok := l.list[event]
	return cb, ok
}

// Set replaces the callback for event. A nil callback removes it and unbinds
// the native handler.
func (l *Listeners) Set(event string, cb Listener) {
	prev := l.list[event]
	if cb == nil {
		delete(l.list, event)
	} else {
		l.list[event] = cb
	}
	if l.hook != nil {
		l.hook(event, prev, cb)
	}
}

func (l *Listeners) Keys() []string {
	keys := make([]string, 0, len(l.list))
	for k := range l.list {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
