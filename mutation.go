package ui

import (
	"errors"
	"strings"
)

// MutationCallbacks stores the handlers watching the keys of an observable
// container.
type MutationCallbacks struct {
	list map[string]*mutationHandlers
}

func NewMutationCallbacks() *MutationCallbacks {
	return &MutationCallbacks{make(map[string]*mutationHandlers)}
}

func (m *MutationCallbacks) Add(key string, h *MutationHandler) *MutationCallbacks {
	mhs, ok := m.list[key]
	if !ok {
		mhs = newMutationHandlers()
		m.list[key] = mhs
	}
	mhs.Add(h)
	return m
}

func (m *MutationCallbacks) Remove(key string, h *MutationHandler) *MutationCallbacks {
	mhs, ok := m.list[key]
	if !ok {
		return m
	}
	mhs.Remove(h)
	return m
}

// DispatchEvent runs the handlers registered for the mutated key, then those
// registered for any dotted path below it. Handler errors are joined.
func (m *MutationCallbacks) DispatchEvent(evt MutationEvent) error {
	key := evt.ObservedKey()
	var errs []error
	if mhs, ok := m.list[key]; ok {
		errs = append(errs, mhs.Handle(evt))
	}
	for path, mhs := range m.list {
		if strings.HasPrefix(path, key+".") {
			errs = append(errs, mhs.Handle(evt))
		}
	}
	return errors.Join(errs...)
}

type mutationHandlers struct {
	list []*MutationHandler
}

func newMutationHandlers() *mutationHandlers {
	return &mutationHandlers{make([]*MutationHandler, 0)}
}

func (m *mutationHandlers) Add(h *MutationHandler) *mutationHandlers {
	m.list = append(m.list, h)
	return m
}

func (m *mutationHandlers) Remove(h *MutationHandler) *mutationHandlers {
	index := -1
	for k, v := range m.list {
		if v != h {
			continue
		}
		index = k
		break
	}
	if index >= 0 {
		m.list = append(m.list[:index], m.list[index+1:]...)
	}
	return m
}

func (m *mutationHandlers) Handle(evt MutationEvent) error {
	var errs []error
	for _, h := range m.list {
		if err := h.Handle(evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MutationHandler is a wrapper type around a callback function run after a
// mutation occurred.
type MutationHandler struct {
	Fn func(MutationEvent) error
}

func NewMutationHandler(f func(evt MutationEvent) error) *MutationHandler {
	return &MutationHandler{f}
}

func (m *MutationHandler) Handle(evt MutationEvent) error {
	return m.Fn(evt)
}

// MutationEvent defines a common interface for mutation notifying events.
type MutationEvent interface {
	ObservedKey() string
	Type() string
	Origin() *Node
	OldValue() Value
	NewValue() Value
}

// Mutation defines a basic implementation for Mutation Events.
type Mutation struct {
	KeyName string
	typ     string
	Old     Value
	Value   Value
	Src     *Node
}

func (m Mutation) ObservedKey() string { return m.KeyName }
func (m Mutation) Origin() *Node       { return m.Src }
func (m Mutation) Type() string        { return m.typ }
func (m Mutation) OldValue() Value     { return m.Old }
func (m Mutation) NewValue() Value     { return m.Value }

func (n *Node) newMutationEvent(category, key string, prev, next Value) Mutation {
	return Mutation{key, category, prev, next, n}
}
