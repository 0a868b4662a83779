package ui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUndefined         = errors.New("ux is not defined")
	ErrAlreadyDefined    = errors.New("ux is already defined")
	ErrReservedKey       = errors.New("reserved node method name")
	ErrItemsNotAllowed   = errors.New("items are not allowed")
	ErrMultipleSlotRefs  = errors.New("multiple items references")
	ErrElementMissing    = errors.New("element is missing")
	ErrInvalidDefinition = errors.New("invalid ux definition")
	ErrUnknownMethod     = errors.New("unknown method")
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// Error is the structured form of the engine failures. Code holds one of the
// sentinel errors above so that errors.Is keeps working on the wrapped value.
type Error struct {
	Code error
	UX   string
	Slot string
	Keys []string
	ID   string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.Error())
	switch {
	case e.ID != "":
		fmt.Fprintf(&b, ": #%s", e.ID)
	case e.UX != "":
		fmt.Fprintf(&b, ": %s", e.UX)
	}
	if e.Slot != "" {
		fmt.Fprintf(&b, " (items for %q)", e.Slot)
	}
	if len(e.Keys) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Keys, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Code }

func undefinedError(ux string) error {
	return &Error{Code: ErrUndefined, UX: ux}
}

func itemsNotAllowed(ux, slot string) error {
	return &Error{Code: ErrItemsNotAllowed, UX: ux, Slot: slot}
}

func multipleSlotRefs(ux, slot string) error {
	return &Error{Code: ErrMultipleSlotRefs, UX: ux, Slot: slot}
}

func reservedKeys(ux string, keys []string) error {
	return &Error{Code: ErrReservedKey, UX: ux, Keys: keys}
}

func elementMissing(id string) error {
	return &Error{Code: ErrElementMissing, ID: id}
}

// AsError extracts the structured form of an engine failure.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
