// file: internal/preview/state.go
// version: 1.0.0
// guid: 5e139ef6-a9b3-4674-99e3-182ea805e8cd

// Package preview holds the cover preview state machine: selection cursors,
// view toggles, content overrides, the reducer that applies user actions and
// the deriver that turns a state into render props.
package preview

// State is the complete UI state of one preview. It is a value; Reduce
// returns a new State and never modifies its input.
type State struct {
	Selection

	Scale       Scale       `json:"scale"`
	ShowGuides  bool        `json:"showGuides"`
	MaskBleed   bool        `json:"maskBleed"`
	ShowCode    bool        `json:"showCode"`
	Mode        Mode        `json:"mode"`
	BookSize    BookSize    `json:"bookSize"`
	FauxVol     FauxVol     `json:"fauxVol"`
	Perspective Perspective `json:"perspective"`
	Capturing   Capture     `json:"capturing"`

	Overrides
}

// Default returns the state a fresh preview starts in.
func Default() State {
	return State{
		BookSize:    BookSizeActual,
		Scale:       ScaleOne,
		MaskBleed:   true,
		Mode:        Mode3D,
		Perspective: PerspectiveAngleFront,
		Capturing:   CaptureNone,
		Overrides:   NewOverrides(),
	}
}

// sanitized replaces unknown enum values with their defaults and fills nil
// override tables. Restored snapshots pass through here.
func (s State) sanitized() State {
	def := Default()
	if !s.Scale.Valid() {
		s.Scale = def.Scale
	}
	if !s.Mode.Valid() {
		s.Mode = def.Mode
	}
	if !s.BookSize.Valid() {
		s.BookSize = def.BookSize
	}
	if !s.Perspective.Valid() {
		s.Perspective = def.Perspective
	}
	if s.Blurbs == nil {
		s.Blurbs = map[string]string{}
	}
	if s.CSS == nil {
		s.CSS = map[string]string{}
	}
	if s.HTML == nil {
		s.HTML = map[string]string{}
	}
	return s
}
