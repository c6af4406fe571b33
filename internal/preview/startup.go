// file: internal/preview/startup.go
// version: 1.0.0
// guid: 1b0f7f0e-8f8b-4d4b-9d1e-4a3f6f3b9a55

package preview

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

// Query parameters understood at startup
const (
	ParamCapture = "capture"
	ParamPath    = "path"
)

// Snapshot serializes the whole state for the snapshot store.
func Snapshot(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Restore overlays a snapshot onto the default state. Missing fields keep
// their defaults and unknown enum values revert to them. If the snapshot
// cannot be decoded at all the defaults are returned along with the error.
func Restore(snapshot []byte) (State, error) {
	if len(snapshot) == 0 {
		return Default(), nil
	}
	s := Default()
	if err := json.Unmarshal(snapshot, &s); err != nil {
		return Default(), fmt.Errorf("decode snapshot: %w", err)
	}
	return s.sanitized(), nil
}

// ApplyCapture switches s into the screenshot preset named by c.
func ApplyCapture(s State, c Capture) State {
	s.Capturing = c
	switch c {
	case CaptureEbook, CaptureAudio:
		s.Mode = ModeEbook
		s.Scale = ScaleOne
	case CaptureThreeD:
		s.Mode = Mode3D
		s.Scale = ScaleOne
		s.BookSize = BookSizeMedium
	}
	return s
}

// ApplyQuery applies the capture and path parameters to s. An unknown path
// is returned as ErrNotFound.
func ApplyQuery(cat *catalog.Catalog, s State, query url.Values) (State, error) {
	s = ApplyCapture(s, ParseCapture(query.Get(ParamCapture)))
	if !query.Has(ParamPath) {
		return s, nil
	}
	sel, err := SelectByPath(cat, query.Get(ParamPath))
	if err != nil {
		return s, err
	}
	s.Selection = sel
	return s, nil
}

// Resolve builds the initial state of a preview: defaults, then the
// snapshot, then the query. A broken snapshot is ignored.
func Resolve(cat *catalog.Catalog, snapshot []byte, query url.Values) (State, error) {
	s, _ := Restore(snapshot)
	return ApplyQuery(cat, s, query)
}
