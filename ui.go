package ui

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UI builds node trees on a document. It holds the registry the ux names are
// resolved against and the root anchors of its mount points.
type UI struct {
	document NativeDocument
	registry *Registry
	logger   *zap.Logger
	newID    func() string
	mountID  string

	genesis map[NativeElement]*Genesis
}

// Option configures a UI.
type Option func(*UI) *UI

// WithRegistry shares a registry between several UI values.
func WithRegistry(r *Registry) Option {
	return func(u *UI) *UI {
		u.registry = r
		return u
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(u *UI) *UI {
		u.logger = l
		return u
	}
}

// WithIDGenerator replaces the node id generator. Generated ids must never
// repeat.
func WithIDGenerator(f func() string) Option {
	return func(u *UI) *UI {
		u.newID = f
		return u
	}
}

// WithIDPrefix uses sequential ids with the given prefix. The counter of a
// prefix is shared by every UI of the process.
func WithIDPrefix(prefix string) Option {
	return WithIDGenerator(sharedSequence(prefix))
}

// WithMountID sets the id of the element Render mounts on when it is not
// given one.
func WithMountID(id string) Option {
	return func(u *UI) *UI {
		u.mountID = id
		return u
	}
}

// New returns a UI rendering on doc. By default node ids are ux-0, ux-1...
// drawn from a counter shared by all the UI values of the process.
func New(doc NativeDocument, options ...Option) *UI {
	u := &UI{
		document: doc,
		logger:   zap.NewNop(),
		newID:    sharedSequence("ux-"),
		genesis:  make(map[NativeElement]*Genesis),
	}
	for _, option := range options {
		u = option(u)
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	if u.registry == nil {
		u.registry = NewRegistry(u.logger)
	}
	u.logger = u.logger.Named("ui")
	return u
}

// Sequence returns a generator of ids made of prefix and an increasing
// counter starting at 0. The counter belongs to the generator: two sequences
// with the same prefix yield the same ids.
func Sequence(prefix string) func() string {
	return sequence(prefix, new(atomic.Int64))
}

// sequences holds the process-wide counter of each id prefix.
var sequences sync.Map

func sharedSequence(prefix string) func() string {
	c, _ := sequences.LoadOrStore(prefix, new(atomic.Int64))
	return sequence(prefix, c.(*atomic.Int64))
}

func sequence(prefix string, counter *atomic.Int64) func() string {
	return func() string {
		return prefix + strconv.FormatInt(counter.Add(1)-1, 10)
	}
}

// UUIDs returns a generator of random UUID ids.
func UUIDs() func() string {
	return uuid.NewString
}

func (u *UI) Registry() *Registry      { return u.registry }
func (u *UI) Document() NativeDocument { return u.document }
func (u *UI) Logger() *zap.Logger      { return u.logger }

// Define registers a definition in the registry of the UI.
func (u *UI) Define(name string, def any) error {
	return u.registry.Define(name, def)
}

// Render builds d and mounts it on the element with the given id. An empty id
// falls back to the configured mount id, then to the document body. A missing
// element fails with ErrElementMissing.
func (u *UI) Render(d Descriptor, mountID string) (*Genesis, error) {
	g, err := u.Genesis(mountID)
	if err != nil {
		return nil, err
	}
	if _, err := g.Add(d); err != nil {
		return g, err
	}
	return g, nil
}

// Genesis returns the root anchor of a mount point. There is one per mount
// element for the lifetime of the UI.
func (u *UI) Genesis(mountID string) (*Genesis, error) {
	if mountID == "" {
		mountID = u.mountID
	}
	var mount NativeElement
	if mountID == "" {
		mount = u.document.Body()
	} else {
		el, ok := u.document.ElementByID(mountID)
		if !ok {
			return nil, elementMissing(mountID)
		}
		mount = el
	}
	if mount == nil {
		return nil, elementMissing(mountID)
	}
	if g, ok := u.genesis[mount]; ok {
		return g, nil
	}
	g := &Genesis{ui: u, mount: mount, items: NewNodes()}
	u.genesis[mount] = g
	return g, nil
}

func (u *UI) nodeOf(item Item) (*Node, error) {
	switch t := item.(type) {
	case Descriptor:
		return u.NewNode(t)
	case *Node:
		if t == nil {
			return nil, fmt.Errorf("%w: nil node", ErrInvalidDescriptor)
		}
		if t.ui != u {
			return nil, fmt.Errorf("%w: %s belongs to another UI", ErrInvalidDescriptor, t)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unsupported item %T", ErrInvalidDescriptor, item)
}
