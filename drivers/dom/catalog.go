package dom

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"gopkg.in/yaml.v3"
)

// CatalogEntry is one precompiled primitive of a catalog document:
//
//	templates:
//	  - name: form.text-input
//	    markup: <input type="text" data-bind-placeholder="hint"/>
//	    style: input { width: 100% }
type CatalogEntry struct {
	Name   string `yaml:"name" validate:"required"`
	Markup string `yaml:"markup" validate:"required"`
	Style  string `yaml:"style"`
}

type catalog struct {
	Templates []CatalogEntry `yaml:"templates" validate:"required,min=1,dive"`
}

var (
	minifier *minify.M
	once     sync.Once
	validate = validator.New(validator.WithRequiredStructEnabled())
)

func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &mhtml.Minifier{
			KeepDefaultAttrVals: true,
			KeepEndTags:         true,
			KeepDocumentTags:    true,
		})
		minifier.AddFunc("text/css", css.Minify)
	})
	return minifier
}

// LoadCatalog reads a YAML catalog of templates. Markup and style are
// minified before parsing so that layout whitespace does not end up in the
// rendered document.
func LoadCatalog(r io.Reader) ([]*Template, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	m := getMinifier()
	res := make([]*Template, 0, len(c.Templates))
	for _, entry := range c.Templates {
		markup, err := m.String("text/html", entry.Markup)
		if err != nil {
			return nil, fmt.Errorf("minifying markup of %s: %w", entry.Name, err)
		}
		style := entry.Style
		if style != "" {
			if style, err = m.String("text/css", style); err != nil {
				return nil, fmt.Errorf("minifying style of %s: %w", entry.Name, err)
			}
		}
		t, err := NewTemplate(entry.Name, markup, style, nil)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

// Definer registers definitions. *ui.UI and *ui.Registry implement it.
type Definer interface {
	Define(name string, def any) error
}

// RegisterCatalog loads a catalog and defines every template it holds.
func RegisterCatalog(d Definer, r io.Reader) error {
	templates, err := LoadCatalog(r)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := d.Define(t.Name, t); err != nil {
			return err
		}
	}
	return nil
}
