// file: internal/catalog/catalog.go
// version: 1.0.0
// guid: 7284c3f9-84b0-45a1-b1c1-e7b25d7ecad3

package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no edition matches a path.
var ErrNotFound = errors.New("cover not found")

// Catalog is the read-only friend -> document -> edition tree.
// A Catalog is never mutated after Parse; reloading produces a new value.
type Catalog struct {
	Friends []Friend `json:"friends" yaml:"friends"`
}

// Location addresses one edition in the tree
type Location struct {
	Friend   int `json:"friendIndex"`
	Document int `json:"docIndex"`
	Edition  int `json:"edIndex"`
}

// Load reads and validates a catalog file. YAML and JSON are both accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", filepath.Base(path), err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", filepath.Base(path), err)
	}
	return cat, nil
}

// Parse decodes and validates catalog data.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid catalog data: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every entry and returns all problems found.
func (c *Catalog) Validate() error {
	var errs error
	seen := make(map[string]Location)
	for fi, friend := range c.Friends {
		if strings.TrimSpace(friend.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("friend %d: name is required", fi))
		}
		for di, doc := range friend.Documents {
			if strings.TrimSpace(doc.Title) == "" {
				errs = multierr.Append(errs, fmt.Errorf("friend %q document %d: title is required", friend.Name, di))
			}
			if _, err := language.Parse(doc.Lang); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("document %q: invalid lang %q: %w", doc.Title, doc.Lang, err))
			}
			for ei, ed := range doc.Editions {
				if !ValidSize(ed.Size) {
					errs = multierr.Append(errs, fmt.Errorf("edition %s: invalid size %q", ed.Path, ed.Size))
				}
				if ed.Pages < 0 {
					errs = multierr.Append(errs, fmt.Errorf("edition %s: negative page count", ed.Path))
				}
				if ed.Path == "" {
					errs = multierr.Append(errs, fmt.Errorf("document %q edition %d: path is required", doc.Title, ei))
					continue
				}
				if prev, dup := seen[ed.Path]; dup {
					errs = multierr.Append(errs, fmt.Errorf("edition path %s duplicated (first at %d/%d/%d)",
						ed.Path, prev.Friend, prev.Document, prev.Edition))
					continue
				}
				seen[ed.Path] = Location{Friend: fi, Document: di, Edition: ei}
			}
		}
	}
	return errs
}

// Warnings reports entries that load fine but cannot be navigated away from:
// a friend with no documents or a document with no editions keeps cover
// level moves clamped in place.
func (c *Catalog) Warnings() error {
	if c == nil {
		return nil
	}
	var errs error
	for _, friend := range c.Friends {
		if len(friend.Documents) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("friend %q has no documents", friend.Name))
			continue
		}
		for _, doc := range friend.Documents {
			if len(doc.Editions) == 0 {
				errs = multierr.Append(errs, fmt.Errorf("friend %q document %q has no editions", friend.Name, doc.Title))
			}
		}
	}
	return errs
}

// Friend returns the friend at index i.
func (c *Catalog) Friend(i int) (*Friend, bool) {
	if c == nil || i < 0 || i >= len(c.Friends) {
		return nil, false
	}
	return &c.Friends[i], true
}

// Documents returns the documents of friend fi, or nil if fi is out of range.
func (c *Catalog) Documents(fi int) []Document {
	friend, ok := c.Friend(fi)
	if !ok {
		return nil
	}
	return friend.Documents
}

// Editions returns the editions of document di of friend fi, or nil.
func (c *Catalog) Editions(fi, di int) []Edition {
	docs := c.Documents(fi)
	if di < 0 || di >= len(docs) {
		return nil
	}
	return docs[di].Editions
}

// FriendCount returns the number of friends.
func (c *Catalog) FriendCount() int {
	if c == nil {
		return 0
	}
	return len(c.Friends)
}

// EditionCount returns the number of editions across the whole catalog.
func (c *Catalog) EditionCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, friend := range c.Friends {
		for _, doc := range friend.Documents {
			total += len(doc.Editions)
		}
	}
	return total
}

// FindByPath searches the tree in order for the edition with the given path.
func (c *Catalog) FindByPath(path string) (Location, error) {
	if c != nil {
		for fi, friend := range c.Friends {
			for di, doc := range friend.Documents {
				for ei, ed := range doc.Editions {
					if ed.Path == path {
						return Location{Friend: fi, Document: di, Edition: ei}, nil
					}
				}
			}
		}
	}
	return Location{}, fmt.Errorf("cover with path %q: %w", path, ErrNotFound)
}

// Walk calls fn for every edition in catalog order.
func (c *Catalog) Walk(fn func(loc Location, friend *Friend, doc *Document, ed *Edition)) {
	if c == nil {
		return
	}
	for fi := range c.Friends {
		friend := &c.Friends[fi]
		for di := range friend.Documents {
			doc := &friend.Documents[di]
			for ei := range doc.Editions {
				fn(Location{Friend: fi, Document: di, Edition: ei}, friend, doc, &doc.Editions[ei])
			}
		}
	}
}

// AlphabeticalOrder returns friend indices ordered by alphabetical name,
// using English collation so accented names sort where readers expect.
func (c *Catalog) AlphabeticalOrder() []int {
	order := make([]int, c.FriendCount())
	for i := range order {
		order[i] = i
	}
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(order, func(a, b int) bool {
		return col.CompareString(sortName(&c.Friends[order[a]]), sortName(&c.Friends[order[b]])) < 0
	})
	return order
}

func sortName(f *Friend) string {
	if f.AlphabeticalName != "" {
		return f.AlphabeticalName
	}
	return f.Name
}
