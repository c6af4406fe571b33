// file: internal/render/terminal.go
// version: 1.0.0
// guid: 8b2d5f6e-1a4c-4b7d-9e3f-0c6a8d2e4f17

package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jdfalk/cover-preview/internal/preview"
)

// character cells per inch of trim
const (
	colsPerInch = 4.0
	rowsPerInch = 2.0
)

var trimInches = map[string][2]float64{
	"s":  {4.25, 6.875},
	"m":  {5.5, 8.5},
	"xl": {6, 9},
}

var guideBorder = lipgloss.Border{
	Top:         "┄",
	Bottom:      "┄",
	Left:        "┆",
	Right:       "┆",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// TerminalRenderer draws a schematic cover with box characters. Box sizes
// follow the trim size, page count and scaler of the props.
type TerminalRenderer struct {
	Title  lipgloss.Style
	Author lipgloss.Style
	Muted  lipgloss.Style
	Logo   lipgloss.Style
}

// NewTerminalRenderer returns a renderer with the default palette.
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		Title:  lipgloss.NewStyle().Bold(true),
		Author: lipgloss.NewStyle().Italic(true),
		Muted:  lipgloss.NewStyle().Faint(true),
		Logo:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	}
}

// faceSize returns the inner width and height of one cover face in cells.
func faceSize(p preview.CoverProps) (int, int) {
	trim, ok := trimInches[p.Size]
	if !ok {
		trim = trimInches["m"]
	}
	scale := p.Scaler
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(trim[0] * colsPerInch * scale))
	h := int(math.Round(trim[1] * rowsPerInch * scale))
	return max(w, 8), max(h, 4)
}

func spineWidth(p preview.CoverProps) int {
	scale := p.Scaler
	if scale <= 0 {
		scale = 1
	}
	return max(int(math.Round(preview.SpineInches(p.Pages)*colsPerInch*scale)), 1)
}

func (r *TerminalRenderer) face(p preview.CoverProps, w, h int, content string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(w).
		Height(h).
		MaxHeight(h + 2).
		Align(lipgloss.Center)
	if p.ShowGuides {
		style = style.Border(guideBorder)
	}
	return style.Render(content)
}

func (r *TerminalRenderer) withBleed(p preview.CoverProps, s string) string {
	if !p.Bleed {
		return s
	}
	return lipgloss.NewStyle().
		Border(lipgloss.BlockBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}

func (r *TerminalRenderer) frontContent(p preview.CoverProps) string {
	lines := []string{
		r.Title.Render(p.Title),
		"",
		r.Author.Render(p.Author),
	}
	if p.FauxVolumeNum > 0 {
		lines = append(lines, "", fmt.Sprintf("VOL %d", int(p.FauxVolumeNum)))
	}
	if p.IsCompilation {
		lines = append(lines, r.Muted.Render("compilation"))
	}
	lines = append(lines, "", r.Muted.Render(p.Edition))
	return strings.Join(lines, "\n")
}

func (r *TerminalRenderer) backContent(p preview.CoverProps) string {
	lines := []string{p.Blurb, ""}
	if p.ISBN != "" {
		lines = append(lines, r.Muted.Render("ISBN "+p.ISBN))
	}
	return strings.Join(lines, "\n")
}

func (r *TerminalRenderer) spine(p preview.CoverProps, h int) string {
	w := spineWidth(p)
	label := []rune(p.Title)
	var b strings.Builder
	for i := 0; i < h; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		ch := " "
		if i < len(label) && w >= 1 {
			ch = string(label[i])
		}
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, ch))
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Render(b.String())
}

// Front draws the front cover only.
func (r *TerminalRenderer) Front(p preview.CoverProps) string {
	w, h := faceSize(p)
	return r.withBleed(p, r.face(p, w, h, r.frontContent(p)))
}

// ThreeD draws the faces visible from perspective.
func (r *TerminalRenderer) ThreeD(p preview.CoverProps, perspective preview.Perspective) string {
	w, h := faceSize(p)
	front := r.face(p, w, h, r.frontContent(p))
	back := r.face(p, w, h, r.backContent(p))
	spine := r.spine(p, h)

	var body string
	switch perspective {
	case preview.PerspectiveFront:
		body = front
	case preview.PerspectiveSpine:
		body = spine
	case preview.PerspectiveAngleBack:
		body = lipgloss.JoinHorizontal(lipgloss.Top, back, spine)
	case preview.PerspectiveBack:
		body = back
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, spine, front)
	}
	return lipgloss.JoinVertical(lipgloss.Center, body, r.Muted.Render(string(perspective)))
}

// PrintPDF draws the full wrap: back, spine and front side by side.
func (r *TerminalRenderer) PrintPDF(p preview.CoverProps) string {
	w, h := faceSize(p)
	wrap := lipgloss.JoinHorizontal(lipgloss.Top,
		r.face(p, w, h, r.backContent(p)),
		r.spine(p, h),
		r.face(p, w, h, r.frontContent(p)),
	)
	return r.withBleed(p, wrap)
}

var audioLabels = map[string]string{
	"en": "♪ AUDIOBOOK",
	"es": "♪ AUDIOLIBRO",
}

// AudioLogo draws the audiobook badge in the language of the cover.
func (r *TerminalRenderer) AudioLogo(lang string) string {
	label, ok := audioLabels[lang]
	if !ok {
		label = audioLabels["en"]
	}
	return r.Logo.Render(label)
}
