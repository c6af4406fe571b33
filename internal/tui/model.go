// file: internal/tui/model.go
// version: 1.0.0
// guid: 9b41d7e2-0c6f-4a38-8d95-e3a2f1c7b054

// Package tui is the terminal preview: a selector header, the rendered
// cover, a status toolbar and an override editor, all driving one session.
package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/render"
	"github.com/jdfalk/cover-preview/internal/session"
)

// Terminal cells are converted to CSS pixels so the fit scale sees a
// viewport of the same shape the terminal has.
const (
	pixelsPerColumn = 24
	pixelsPerRow    = 48
)

var editorFields = []preview.Field{preview.FieldBlurb, preview.FieldCSS, preview.FieldHTML}

// StateMsg announces that a session changed outside Update, such as a
// debounced spin landing. Messages can arrive late and out of order, so the
// payload only names the session; the live view is read back from the
// manager.
type StateMsg session.View

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	codeStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	editorTitle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Model is the bubbletea model of one terminal preview.
type Model struct {
	sessions *session.Manager
	renderer render.Renderer
	keys     KeyMap
	log      *zap.Logger

	view session.View

	editor  textarea.Model
	editing bool
	field   int

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	err      error
	quitting bool
}

// New returns a model showing the already opened session view.
func New(sessions *session.Manager, view session.View, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Placeholder = "override text"

	return Model{
		sessions: sessions,
		renderer: render.NewTerminalRenderer(),
		keys:     DefaultKeyMap,
		log:      log.Named("tui"),
		view:     view,
		editor:   editor,
	}
}

// SessionView returns the session view currently shown.
func (model Model) SessionView() session.View {
	return model.view
}

// Editing reports whether the override editor is open.
func (model Model) Editing() bool {
	return model.editing
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case StateMsg:
		if message.ID != model.view.ID {
			return model, nil
		}
		if live, err := model.sessions.Get(model.view.ID); err == nil {
			model.view = live
		}
		return model, nil

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.editor.SetWidth(max(message.Width-4, 20))
		model.editor.SetHeight(max(message.Height/4, 3))
		model.apply(model.sessions.Resize(model.view.ID, preview.Viewport{
			Width:  message.Width * pixelsPerColumn,
			Height: message.Height * pixelsPerRow,
		}))
		return model, nil

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model.quit()
		}
		if model.editing {
			return model.updateEditor(message)
		}
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	model.err = nil
	switch {
	case key.Matches(message, model.keys.Quit):
		return model.quit()
	case key.Matches(message, model.keys.Edit):
		if model.view.Props == nil {
			return model, nil
		}
		model.editing = true
		model.field = 0
		model.loadField()
		return model, model.editor.Focus()
	case key.Matches(message, model.keys.Mode):
		model.dispatch(preview.Simple(preview.ActionCycleMode))
	case key.Matches(message, model.keys.Scale):
		model.dispatch(preview.Simple(preview.ActionCycleScale))
	case key.Matches(message, model.keys.BookSize):
		model.dispatch(preview.Simple(preview.ActionCycleBookSize))
	case key.Matches(message, model.keys.FauxVol):
		model.dispatch(preview.Simple(preview.ActionCycleFauxVol))
	case key.Matches(message, model.keys.MaskBleed):
		model.dispatch(preview.Simple(preview.ActionToggleMaskBleed))
	case key.Matches(message, model.keys.Code):
		model.dispatch(preview.Simple(preview.ActionToggleCode))
	case key.Matches(message, model.keys.SpinNow):
		model.dispatch(preview.Simple(preview.ActionSpin))
	default:
		view, err := model.sessions.Press(model.view.ID, canonicalKey(message))
		if errors.Is(err, preview.ErrUnknownKey) {
			return model, nil
		}
		model.apply(view, err)
	}
	return model, nil
}

func (model Model) updateEditor(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.editing = false
		model.editor.Blur()
		return model, nil
	case key.Matches(message, model.keys.NextField):
		model.field = (model.field + 1) % len(editorFields)
		model.loadField()
		return model, nil
	case key.Matches(message, model.keys.Save):
		field := editorFields[model.field]
		model.apply(model.sessions.SetOverride(model.view.ID, string(field), model.editor.Value()))
		model.editing = false
		model.editor.Blur()
		return model, nil
	}
	var cmd tea.Cmd
	model.editor, cmd = model.editor.Update(message)
	return model, cmd
}

// loadField fills the editor with the resolved value of the current field.
func (model *Model) loadField() {
	p := model.view.Props
	if p == nil {
		model.editor.SetValue("")
		return
	}
	switch editorFields[model.field] {
	case preview.FieldCSS:
		model.editor.SetValue(p.CustomCSS)
	case preview.FieldHTML:
		model.editor.SetValue(p.CustomHTML)
	default:
		model.editor.SetValue(p.Blurb)
	}
}

func (model *Model) dispatch(a preview.Action) {
	model.apply(model.sessions.Dispatch(model.view.ID, a))
}

func (model *Model) apply(view session.View, err error) {
	if err != nil {
		model.err = err
		model.log.Debug("action failed", zap.Error(err))
		return
	}
	model.view = view
}

// quit persists the session before leaving.
func (model Model) quit() (tea.Model, tea.Cmd) {
	model.quitting = true
	if err := model.sessions.Unload(model.view.ID); err != nil {
		model.log.Warn("saving snapshot failed", zap.Error(err))
	}
	return model, tea.Quit
}

// View implements tea.Model.
func (model Model) View() string {
	if model.quitting {
		return ""
	}

	sections := []string{model.header()}

	body := mutedStyle.Render("nothing selected")
	if p := model.view.Props; p != nil {
		body = render.Cover(model.renderer, model.view.State, *p)
		if model.view.State.ShowCode {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", codeStyle.Render(propsJSON(*p)))
		}
	}
	sections = append(sections, body, model.toolbar())

	if model.editing {
		title := editorTitle.Render("editing " + string(editorFields[model.field]))
		hint := mutedStyle.Render("tab next field · ctrl+s save · esc cancel")
		sections = append(sections, title, model.editor.View(), hint)
	}
	if model.err != nil {
		sections = append(sections, errorStyle.Render(model.err.Error()))
	}
	return strings.Join(sections, "\n")
}

// header names the selected friend, document and edition with positions.
func (model Model) header() string {
	cat := model.sessions.Catalog()
	e := model.view.State.Entities(cat)
	parts := []string{"-", "-", "-"}
	if e.Friend != nil {
		parts[0] = fmt.Sprintf("%s (%d/%d)", e.Friend.Name, model.view.State.FriendIndex+1, cat.FriendCount())
	}
	if e.Document != nil {
		parts[1] = fmt.Sprintf("%s (%d/%d)", e.Document.Title, model.view.State.DocIndex+1, len(cat.Documents(model.view.State.FriendIndex)))
	}
	if e.Edition != nil {
		parts[2] = fmt.Sprintf("%s (%d/%d)", e.Edition.Type, model.view.State.EdIndex+1,
			len(cat.Editions(model.view.State.FriendIndex, model.view.State.DocIndex)))
	}
	return headerStyle.Render(strings.Join(parts, " ▸ "))
}

func (model Model) toolbar() string {
	s := model.view.State
	status := fmt.Sprintf("mode:%s  scale:%s  size:%s  view:%s  vol:%d  guides:%t  bleed-mask:%t",
		s.Mode, s.Scale, s.BookSize, s.Perspective, s.FauxVol, s.ShowGuides, s.MaskBleed)
	if p := model.view.Props; p != nil {
		status += fmt.Sprintf("  scaler:%.4g (%s)", p.Scaler, p.Scope)
	}
	var help []string
	for _, b := range model.keys.ShortHelp() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	return mutedStyle.Render(status + "\n" + strings.Join(help, " · "))
}

func propsJSON(p preview.CoverProps) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
