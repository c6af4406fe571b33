// file: internal/preview/overrides.go
// version: 1.0.0
// guid: 3e4c41e9-e914-4574-a592-1eb262cc86a5

package preview

import (
	"errors"
	"fmt"
	"maps"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

// NoneKey is the override key used when nothing is selected.
const NoneKey = "[[none]]"

// PlaceholderBlurb is shown when neither an override nor the catalog has a blurb.
const PlaceholderBlurb = "TODO"

// ErrUnknownField is returned for an override field that does not exist.
var ErrUnknownField = errors.New("unknown override field")

// Field is an overridable piece of cover content
type Field string

const (
	FieldBlurb Field = "blurb"
	FieldCSS   Field = "css"
	FieldHTML  Field = "html"
)

// Scope decides which composite key an override is stored under
type Scope int

const (
	// ScopeDocument keys by friend name + document title.
	ScopeDocument Scope = iota
	// ScopeCover keys by friend name + document title + edition type.
	ScopeCover
)

// Scope returns where the field's overrides are keyed.
func (f Field) Scope() Scope {
	if f == FieldBlurb {
		return ScopeCover
	}
	return ScopeDocument
}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	switch Field(name) {
	case FieldBlurb, FieldCSS, FieldHTML:
		return Field(name), nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownField)
}

// Overrides holds user supplied content. A present key is an explicit
// override, even when its value is empty. Values are never mutated in place;
// With and Cleared return copies so earlier states stay intact.
type Overrides struct {
	Blurbs map[string]string `json:"customBlurbs"`
	CSS    map[string]string `json:"customCss"`
	HTML   map[string]string `json:"customHtml"`
}

// NewOverrides returns an empty store.
func NewOverrides() Overrides {
	return Overrides{
		Blurbs: map[string]string{},
		CSS:    map[string]string{},
		HTML:   map[string]string{},
	}
}

func (o Overrides) table(f Field) map[string]string {
	switch f {
	case FieldBlurb:
		return o.Blurbs
	case FieldCSS:
		return o.CSS
	case FieldHTML:
		return o.HTML
	}
	return nil
}

// Get returns the override for key, if any.
func (o Overrides) Get(f Field, key string) (string, bool) {
	text, ok := o.table(f)[key]
	return text, ok
}

// With returns a copy of o with key set to text in field f.
func (o Overrides) With(f Field, key, text string) Overrides {
	next := Overrides{
		Blurbs: maps.Clone(o.Blurbs),
		CSS:    maps.Clone(o.CSS),
		HTML:   maps.Clone(o.HTML),
	}
	if next.Blurbs == nil {
		next.Blurbs = map[string]string{}
	}
	if next.CSS == nil {
		next.CSS = map[string]string{}
	}
	if next.HTML == nil {
		next.HTML = map[string]string{}
	}
	if t := next.table(f); t != nil {
		t[key] = text
	}
	return next
}

// Cleared drops every override in every field.
func (o Overrides) Cleared() Overrides {
	return NewOverrides()
}

// Len returns the number of overrides across all fields.
func (o Overrides) Len() int {
	return len(o.Blurbs) + len(o.CSS) + len(o.HTML)
}

// DocumentKey is friend name + document title, or NoneKey.
func (s Selection) DocumentKey(cat *catalog.Catalog) string {
	e := s.Entities(cat)
	if e.Friend == nil || e.Document == nil {
		return NoneKey
	}
	return e.Friend.Name + e.Document.Title
}

// CoverKey is the document key + edition type, or NoneKey.
func (s Selection) CoverKey(cat *catalog.Catalog) string {
	e := s.Entities(cat)
	if !e.Complete() {
		return NoneKey
	}
	return e.Friend.Name + e.Document.Title + e.Edition.Type
}

// Key returns the composite key f is stored under for this selection.
func (s Selection) Key(cat *catalog.Catalog, f Field) string {
	if f.Scope() == ScopeCover {
		return s.CoverKey(cat)
	}
	return s.DocumentKey(cat)
}

// Resolve returns the effective content for f: the override if present,
// otherwise catalog content, otherwise the field's placeholder.
func (o Overrides) Resolve(cat *catalog.Catalog, sel Selection, f Field) string {
	if text, ok := o.Get(f, sel.Key(cat, f)); ok {
		return text
	}
	e := sel.Entities(cat)
	switch f {
	case FieldBlurb:
		if e.Document != nil && e.Document.Description != "" {
			return e.Document.Description
		}
		if e.Friend != nil && e.Friend.Description != "" {
			return e.Friend.Description
		}
		return PlaceholderBlurb
	case FieldCSS:
		if e.Document != nil {
			return e.Document.CustomCSS
		}
	case FieldHTML:
		if e.Document != nil {
			return e.Document.CustomHTML
		}
	}
	return ""
}
