// file: internal/manifest/manifest.go
// version: 1.0.0
// guid: d14b7e92-6a3c-4f81-9c05-2b8e7f1a3d60

// Package manifest derives the props of every edition for a screenshot run
// and writes them as a YAML capture manifest.
package manifest

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/preview"
)

// Entry is one screenshot to take.
type Entry struct {
	Path       string             `yaml:"path"`
	Label      string             `yaml:"label"`
	Screenshot string             `yaml:"screenshot"`
	Query      string             `yaml:"query"`
	Props      preview.CoverProps `yaml:"props"`
}

// Manifest lists every screenshot of one capture run.
type Manifest struct {
	Capture     string           `yaml:"capture"`
	Viewport    preview.Viewport `yaml:"viewport"`
	GeneratedAt time.Time        `yaml:"generatedAt"`
	Entries     []Entry          `yaml:"entries"`
}

// ScreenshotName is the file a capture of path is saved under.
func ScreenshotName(path string, capture preview.Capture) string {
	suffix := string(capture)
	if capture == preview.CaptureNone {
		suffix = "cover"
	}
	return slug.Make(path) + "--" + slug.Make(suffix) + ".png"
}

// Build derives every edition of cat the way a page opened with
// ?capture=<capture>&path=<edition> would. progress, if set, is called once
// per edition.
func Build(cat *catalog.Catalog, capture string, vp preview.Viewport, now time.Time, progress func()) (Manifest, error) {
	c := preview.ParseCapture(capture)
	if capture != "" && c == preview.CaptureNone {
		return Manifest{}, fmt.Errorf("unknown capture %q (want ebook, audio or threeD)", capture)
	}

	m := Manifest{Capture: string(c), Viewport: vp, GeneratedAt: now.UTC(), Entries: []Entry{}}
	var walkErr error
	cat.Walk(func(loc catalog.Location, friend *catalog.Friend, doc *catalog.Document, ed *catalog.Edition) {
		if walkErr != nil {
			return
		}
		q := url.Values{preview.ParamPath: {ed.Path}}
		if c != preview.CaptureNone {
			q.Set(preview.ParamCapture, string(c))
		}
		state, err := preview.ApplyQuery(cat, preview.Default(), q)
		if err != nil {
			walkErr = err
			return
		}
		props, ok := preview.Derive(cat, state, vp)
		if !ok {
			walkErr = fmt.Errorf("edition %s: %w", ed.Path, preview.ErrNotFound)
			return
		}
		m.Entries = append(m.Entries, Entry{
			Path:       ed.Path,
			Label:      catalog.Label(friend, doc, ed),
			Screenshot: ScreenshotName(ed.Path, c),
			Query:      "?" + q.Encode(),
			Props:      props,
		})
		if progress != nil {
			progress()
		}
	})
	if walkErr != nil {
		return Manifest{}, walkErr
	}
	return m, nil
}

// Write encodes m as YAML.
func Write(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}
