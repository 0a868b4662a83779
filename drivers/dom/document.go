// Package dom is an in-memory document driver built on golang.org/x/net/html.
// It provides the rendered surface the ui engine mounts node trees on, along
// with a small event dispatcher that follows the browser bubbling model.
package dom

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"weak"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atdiar/uxui"
)

const skeleton = `<!DOCTYPE html><html><head></head><body></body></html>`

// Document is a parsed HTML document. Element wrappers are cached per node so
// that the same html.Node always yields the same *Element while that wrapper
// is in use. The cache holds wrappers weakly, except the ones carrying event
// listeners.
type Document struct {
	root *html.Node

	mu        sync.Mutex
	elements  map[*html.Node]weak.Pointer[Element]
	listening map[*Element]struct{}

	logger *zap.Logger
}

// NewDocument returns an empty document.
func NewDocument(logger *zap.Logger) *Document {
	d, err := Parse(strings.NewReader(skeleton), logger)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse loads an existing page. Mount points are then found by id.
func Parse(r io.Reader, logger *zap.Logger) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]weak.Pointer[Element]),
		listening: make(map[*Element]struct{}),
		logger:    logger.Named("dom"),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

func (d *Document) CreateElement(tag string) ui.NativeElement {
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	})
}

// ElementByID looks the id up among the elements attached to the document.
func (d *Document) ElementByID(id string) (ui.NativeElement, bool) {
	if strings.ContainsAny(id, `'"`) {
		return nil, false
	}
	n, err := htmlquery.Query(d.root, fmt.Sprintf("//*[@id='%s']", id))
	if err != nil {
		d.logger.Warn("invalid id query", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	if n == nil {
		return nil, false
	}
	return d.wrap(n), true
}

func (d *Document) Body() ui.NativeElement {
	n := htmlquery.FindOne(d.root, "//body")
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) Head() ui.NativeElement {
	n := htmlquery.FindOne(d.root, "//head")
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// Lookup returns the element wrapping n.
func (d *Document) Lookup(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) wrap(n *html.Node) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.elements[n]; ok {
		if e := p.Value(); e != nil {
			return e
		}
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = weak.Make(e)
	runtime.AddCleanup(e, d.evict, n)
	return e
}

// cached returns the wrapper of n if it is still alive.
func (d *Document) cached(n *html.Node) (*Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.elements[n].Value()
	return e, e != nil
}

func (d *Document) evict(n *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.elements[n]; ok && p.Value() == nil {
		delete(d.elements, n)
	}
}

// pin keeps an element with listeners cached, so that dispatch finds them.
func (d *Document) pin(e *Element, listening bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if listening {
		d.listening[e] = struct{}{}
	} else {
		delete(d.listening, e)
	}
}

// element converts an engine handle back to an element of d.
func (d *Document) element(e ui.NativeElement) *Element {
	el, ok := e.(*Element)
	if !ok || el == nil {
		panic(fmt.Sprintf("dom: foreign element %T", e))
	}
	if el.doc != d {
		panic("dom: element belongs to another document")
	}
	return el
}
