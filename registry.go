package ui

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Kind tells how a registered ux is rendered.
type Kind int

const (
	KindUndefined Kind = iota
	KindPrimitive
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindComposite:
		return "composite"
	}
	return "undefined"
}

type entry struct {
	kind Kind
	def  any
}

// Registry maps normalized ux names to their definitions. Entries are never
// removed nor redefined.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]entry),
		logger:  logger.Named("registry"),
	}
}

// Define registers def, a Primitive or a Composite, under the normalized name.
func (r *Registry) Define(name string, def any) error {
	key := Normalize(name)
	if key == "" {
		return fmt.Errorf("%w: empty name %q", ErrInvalidDefinition, name)
	}

	var kind Kind
	switch d := def.(type) {
	case Composite:
		if err := d.validate(key); err != nil {
			return err
		}
		kind = KindComposite
	case *Composite:
		if d == nil {
			return fmt.Errorf("%w: %s is nil", ErrInvalidDefinition, key)
		}
		return r.Define(name, *d)
	case Primitive:
		kind = KindPrimitive
	default:
		return fmt.Errorf("%w: %s has type %T", ErrInvalidDefinition, key, def)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return &Error{Code: ErrAlreadyDefined, UX: key}
	}
	r.entries[key] = entry{kind, def}
	r.logger.Debug("defined", zap.String("ux", key), zap.Stringer("kind", kind))
	return nil
}

// Lookup returns the definition registered for name.
func (r *Registry) Lookup(name string) (Kind, any, error) {
	key := Normalize(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok {
		return KindUndefined, nil, undefinedError(name)
	}
	return e.kind, e.def, nil
}

func (r *Registry) KindOf(name string) Kind {
	k, _, _ := r.Lookup(name)
	return k
}
