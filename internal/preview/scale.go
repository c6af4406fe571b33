// file: internal/preview/scale.go
// version: 1.0.0
// guid: 6fe92786-b222-4644-94d0-fdcc5a906cd3

package preview

import (
	"math"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

// Viewport is the visible drawing area in CSS pixels. It is an input to
// derivation, not part of State: resizing re-derives without a state change.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DefaultViewport is used when a surface has not reported its size.
var DefaultViewport = Viewport{Width: 1440, Height: 900}

const (
	dpi           = 96.0
	bleedInches   = 0.125
	pagesPerInch  = 444.0
	boardInches   = 0.06
	chromePixels  = 180
	gutterPixels  = 32
	scalerPrecise = 1e4
)

// trim sizes in inches (width, height)
var trimInches = map[string][2]float64{
	catalog.SizeSmall:  {4.25, 6.875},
	catalog.SizeMedium: {5.5, 8.5},
	catalog.SizeXL:     {6, 9},
}

var fixedScalers = map[Scale]float64{
	ScaleOne:        1,
	ScaleFourFifth:  0.8,
	ScaleThreeFifth: 0.6,
	ScaleHalf:       0.5,
	ScaleThird:      1.0 / 3.0,
	ScaleQuarter:    0.25,
}

// scopes from largest to smallest ratio
var scopeOrder = []Scale{ScaleOne, ScaleFourFifth, ScaleThreeFifth, ScaleHalf, ScaleThird, ScaleQuarter}

// SpineInches returns the spine width for a page count.
func SpineInches(pages int) float64 {
	if pages < 0 {
		pages = 0
	}
	return float64(pages)/pagesPerInch + boardInches
}

// CoverPixels returns the unscaled pixel box of a cover rendered in mode.
func CoverPixels(size string, pages int, mode Mode) (width, height float64) {
	trim, ok := trimInches[size]
	if !ok {
		trim = trimInches[catalog.SizeMedium]
	}
	w, h := trim[0], trim[1]
	switch mode {
	case ModeEbook:
	case ModePDF:
		w = 2*w + SpineInches(pages) + 2*bleedInches
		h += 2 * bleedInches
	default:
		w += SpineInches(pages)
	}
	return w * dpi, h * dpi
}

// ScalerAndScope computes the render scale factor and the CSS scope name
// used by the cover stylesheets. Fixed scales map directly; ScaleFit sizes
// the cover to the viewport, which loses half its width to the code panel.
func ScalerAndScope(size string, pages int, scale Scale, mode Mode, showCode bool, vp Viewport) (float64, string) {
	if r, ok := fixedScalers[scale]; ok {
		return r, string(scale)
	}

	availW := vp.Width
	if showCode {
		availW /= 2
	}
	availW -= 2 * gutterPixels
	availH := vp.Height - chromePixels
	availW = max(availW, 1)
	availH = max(availH, 1)

	w, h := CoverPixels(size, pages, mode)
	ratio := math.Min(float64(availW)/w, float64(availH)/h)
	ratio = math.Floor(ratio*scalerPrecise) / scalerPrecise

	return ratio, string(scopeFor(ratio))
}

// scopeFor picks the largest named scale not above ratio.
func scopeFor(ratio float64) Scale {
	for _, s := range scopeOrder {
		if ratio >= fixedScalers[s] {
			return s
		}
	}
	return ScaleQuarter
}
