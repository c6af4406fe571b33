// file: internal/preview/derive.go
// version: 1.0.0
// guid: 3216978a-d765-4c88-90bb-cbf4b22a3be3

package preview

import (
	"github.com/jdfalk/cover-preview/internal/catalog"
)

const (
	// minThreeDPages keeps 3D captures of thin books from rendering a sliver spine.
	minThreeDPages = 75
	captureScaler  = 2.0
	captureScope   = "2x"
)

// CoverProps is everything a cover renderer needs
type CoverProps struct {
	Author        string  `json:"author" yaml:"author"`
	Lang          string  `json:"lang" yaml:"lang"`
	Title         string  `json:"title" yaml:"title"`
	IsCompilation bool    `json:"isCompilation" yaml:"isCompilation"`
	Size          string  `json:"size" yaml:"size"`
	Pages         int     `json:"pages" yaml:"pages"`
	Edition       string  `json:"edition" yaml:"edition"`
	Blurb         string  `json:"blurb" yaml:"blurb"`
	ISBN          string  `json:"isbn" yaml:"isbn"`
	ShowGuides    bool    `json:"showGuides" yaml:"showGuides"`
	CustomCSS     string  `json:"customCss" yaml:"customCss"`
	CustomHTML    string  `json:"customHtml" yaml:"customHtml"`
	FauxVolumeNum FauxVol `json:"fauxVolumeNum,omitempty" yaml:"fauxVolumeNum,omitempty"`
	Scaler        float64 `json:"scaler" yaml:"scaler"`
	Scope         string  `json:"scope" yaml:"scope"`
	Bleed         bool    `json:"bleed" yaml:"bleed"`
}

// EffectiveSize returns the trim size a cover renders at.
func EffectiveSize(s State, ed *catalog.Edition) string {
	switch {
	case s.Mode == ModeEbook:
		return catalog.SizeXL
	case s.BookSize == BookSizeActual:
		return ed.Size
	default:
		return string(s.BookSize)
	}
}

// EffectivePages returns the page count used for the spine.
func EffectivePages(s State, ed *catalog.Edition) int {
	if s.Capturing == CaptureThreeD {
		return max(ed.Pages, minThreeDPages)
	}
	return ed.Pages
}

// Derive maps a state to render props. ok is false unless the selection
// resolves to a friend, document and edition. Derive has no side effects;
// equal inputs always give equal output.
func Derive(cat *catalog.Catalog, s State, vp Viewport) (CoverProps, bool) {
	e := s.Entities(cat)
	if !e.Complete() {
		return CoverProps{}, false
	}

	size := EffectiveSize(s, e.Edition)
	scaler, scope := ScalerAndScope(size, e.Edition.Pages, s.Scale, s.Mode, s.ShowCode, vp)
	if s.Capturing == CaptureThreeD {
		scaler, scope = captureScaler, captureScope
	}

	return CoverProps{
		Author:        e.Friend.Name,
		Lang:          e.Document.Lang,
		Title:         e.Document.Title,
		IsCompilation: e.Document.IsCompilation,
		Size:          size,
		Pages:         EffectivePages(s, e.Edition),
		Edition:       e.Edition.Type,
		Blurb:         s.Overrides.Resolve(cat, s.Selection, FieldBlurb),
		ISBN:          e.Edition.ISBN,
		ShowGuides:    s.ShowGuides,
		CustomCSS:     s.Overrides.Resolve(cat, s.Selection, FieldCSS),
		CustomHTML:    s.Overrides.Resolve(cat, s.Selection, FieldHTML),
		FauxVolumeNum: s.FauxVol,
		Scaler:        scaler,
		Scope:         scope,
		Bleed:         !s.MaskBleed,
	}, true
}
