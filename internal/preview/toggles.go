// file: internal/preview/toggles.go
// version: 1.0.0
// guid: 4b3d2262-438d-4bbc-9df2-1ffd80925084

package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scale is the zoom level of the preview
type Scale string

const (
	ScaleFit        Scale = "fit"
	ScaleOne        Scale = "1"
	ScaleHalf       Scale = "1-2"
	ScaleThird      Scale = "1-3"
	ScaleQuarter    Scale = "1-4"
	ScaleThreeFifth Scale = "3-5"
	ScaleFourFifth  Scale = "4-5"
)

var nextScale = map[Scale]Scale{
	ScaleFit:        ScaleOne,
	ScaleOne:        ScaleHalf,
	ScaleHalf:       ScaleThird,
	ScaleThird:      ScaleQuarter,
	ScaleQuarter:    ScaleThreeFifth,
	ScaleThreeFifth: ScaleFourFifth,
	ScaleFourFifth:  ScaleFit,
}

// Next returns the following scale in toolbar order.
func (s Scale) Next() Scale {
	if n, ok := nextScale[s]; ok {
		return n
	}
	return ScaleFit
}

// Valid reports whether s is a known scale.
func (s Scale) Valid() bool {
	_, ok := nextScale[s]
	return ok
}

// Mode selects which cover renderer is used
type Mode string

const (
	ModePDF   Mode = "pdf"
	Mode3D    Mode = "3d"
	ModeEbook Mode = "ebook"
)

// Next cycles pdf -> 3d -> ebook -> pdf.
func (m Mode) Next() Mode {
	switch m {
	case ModePDF:
		return Mode3D
	case Mode3D:
		return ModeEbook
	default:
		return ModePDF
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePDF || m == Mode3D || m == ModeEbook
}

// BookSize is the trim size toggle. BookSizeActual defers to the edition.
type BookSize string

const (
	BookSizeActual BookSize = "actual"
	BookSizeSmall  BookSize = "s"
	BookSizeMedium BookSize = "m"
	BookSizeXL     BookSize = "xl"
)

// Next cycles actual -> s -> m -> xl -> actual.
func (b BookSize) Next() BookSize {
	switch b {
	case BookSizeActual:
		return BookSizeSmall
	case BookSizeSmall:
		return BookSizeMedium
	case BookSizeMedium:
		return BookSizeXL
	default:
		return BookSizeActual
	}
}

// Valid reports whether b is a known size toggle.
func (b BookSize) Valid() bool {
	switch b {
	case BookSizeActual, BookSizeSmall, BookSizeMedium, BookSizeXL:
		return true
	}
	return false
}

// Perspective is the camera angle of the 3D render
type Perspective string

const (
	PerspectiveFront      Perspective = "front"
	PerspectiveAngleFront Perspective = "angle-front"
	PerspectiveSpine      Perspective = "spine"
	PerspectiveAngleBack  Perspective = "angle-back"
	PerspectiveBack       Perspective = "back"
)

var nextPerspective = map[Perspective]Perspective{
	PerspectiveFront:      PerspectiveAngleFront,
	PerspectiveAngleFront: PerspectiveSpine,
	PerspectiveSpine:      PerspectiveAngleBack,
	PerspectiveAngleBack:  PerspectiveBack,
	PerspectiveBack:       PerspectiveFront,
}

// Next spins the cover one step.
func (p Perspective) Next() Perspective {
	if n, ok := nextPerspective[p]; ok {
		return n
	}
	return PerspectiveFront
}

// Valid reports whether p is a known perspective.
func (p Perspective) Valid() bool {
	_, ok := nextPerspective[p]
	return ok
}

// FauxVol marks a cover as volume 1 or 2 of a set. Zero means none and is
// encoded as null.
type FauxVol int

// Next cycles none -> 1 -> 2 -> none.
func (f FauxVol) Next() FauxVol {
	switch f {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 0
	}
}

// MarshalJSON encodes the zero value as null.
func (f FauxVol) MarshalJSON() ([]byte, error) {
	if f == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(int(f))
}

// UnmarshalJSON accepts null, 1 or 2.
func (f *FauxVol) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 || n > 2 {
		return fmt.Errorf("invalid faux volume %d", n)
	}
	*f = FauxVol(n)
	return nil
}

// Capture is the screenshot preset the page was opened with. The empty value
// means no capture and is encoded as null.
type Capture string

const (
	CaptureNone   Capture = ""
	CaptureEbook  Capture = "ebook"
	CaptureAudio  Capture = "audio"
	CaptureThreeD Capture = "threeD"
)

// ParseCapture maps a query value to a preset; unknown values mean none.
func ParseCapture(v string) Capture {
	switch Capture(v) {
	case CaptureEbook, CaptureAudio, CaptureThreeD:
		return Capture(v)
	}
	return CaptureNone
}

// MarshalJSON encodes CaptureNone as null.
func (c Capture) MarshalJSON() ([]byte, error) {
	if c == CaptureNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts null or a preset name.
func (c *Capture) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = CaptureNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCapture(s)
	return nil
}
