// file: internal/render/render.go
// version: 1.0.0
// guid: 4c7e1b2a-9d3f-4f60-8e15-b2a7d6c3e901

// Package render turns derived cover props into a drawable cover. Each
// render mode is one method of Renderer; Cover picks the method for a state.
package render

import (
	"strings"

	"github.com/jdfalk/cover-preview/internal/preview"
)

// Renderer draws covers. Implementations must not retain props.
type Renderer interface {
	Front(p preview.CoverProps) string
	ThreeD(p preview.CoverProps, perspective preview.Perspective) string
	PrintPDF(p preview.CoverProps) string
	AudioLogo(lang string) string
}

// Cover renders p the way state s asks for: ebook mode draws the front only,
// pdf the full wrap, 3d the current perspective. Audio captures get the
// audio logo above the cover.
func Cover(r Renderer, s preview.State, p preview.CoverProps) string {
	var body string
	switch s.Mode {
	case preview.ModeEbook:
		body = r.Front(p)
	case preview.ModePDF:
		body = r.PrintPDF(p)
	default:
		body = r.ThreeD(p, s.Perspective)
	}
	if s.Capturing == preview.CaptureAudio {
		return strings.Join([]string{r.AudioLogo(p.Lang), body}, "\n")
	}
	return body
}
