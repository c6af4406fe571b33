// file: internal/tui/model_test.go
// version: 1.0.0
// guid: 6c2e8f14-b7a9-4d30-91e5-0af4d3c2b871

package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/clock"
	"github.com/jdfalk/cover-preview/internal/database"
	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/session"
)

type harness struct {
	model   Model
	clock   *clock.FakeClock
	store   *database.MemoryStore
	mu      sync.Mutex
	changes []session.View
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat, err := catalog.Load("../catalog/testdata/catalog.yaml")
	require.NoError(t, err)

	h := &harness{
		clock: clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		store: database.NewMemoryStore(),
	}
	mgr := session.NewManager(cat, session.Options{
		Store: h.store,
		Clock: h.clock,
		OnChange: func(v session.View) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.changes = append(h.changes, v)
		},
	})
	view, err := mgr.Open("tui", nil)
	require.NoError(t, err)
	h.model = New(mgr, view, nil)
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func (h *harness) press(runes string) {
	for _, r := range runes {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) state() preview.State {
	return h.model.SessionView().State
}

func (h *harness) lastChange() session.View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.changes[len(h.changes)-1]
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, "f"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'F'}}, "shift+f"},
		{tea.KeyMsg{Type: tea.KeyPgUp}, "pageup"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "pagedown"},
		{tea.KeyMsg{Type: tea.KeyRight}, "right"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalKey(tt.msg))
		})
	}
}

func TestModelNavigation(t *testing.T) {
	h := newHarness(t)

	h.press("f")
	assert.Equal(t, 1, h.state().FriendIndex)
	h.press("F")
	assert.Equal(t, 0, h.state().FriendIndex)

	h.send(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 1, h.state().EdIndex)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, preview.Selection{FriendIndex: 0, DocIndex: 1, EdIndex: 0}, h.state().Selection)

	// unbound keys are ignored
	h.press("y")
	assert.Nil(t, h.model.err)
}

func TestModelToggles(t *testing.T) {
	h := newHarness(t)

	h.press("m")
	assert.Equal(t, preview.Mode3D.Next(), h.state().Mode)
	h.press("z")
	assert.Equal(t, preview.ScaleOne.Next(), h.state().Scale)
	h.press("t")
	assert.Equal(t, preview.BookSizeActual.Next(), h.state().BookSize)
	h.press("v")
	assert.Equal(t, preview.FauxVol(0).Next(), h.state().FauxVol)
	h.press("x")
	assert.False(t, h.state().MaskBleed)
	h.press("g")
	assert.True(t, h.state().ShowGuides)

	h.press("c")
	assert.True(t, h.state().ShowCode)
	assert.Contains(t, h.model.View(), `"isbn"`)
}

func TestModelSpinIsDebounced(t *testing.T) {
	h := newHarness(t)

	h.press("sss")
	assert.Equal(t, preview.PerspectiveAngleFront, h.state().Perspective)

	h.clock.Advance(preview.SpinDebounce)
	landed := h.lastChange()
	assert.Equal(t, preview.PerspectiveSpine, landed.State.Perspective)

	h.send(StateMsg(landed))
	assert.Equal(t, preview.PerspectiveSpine, h.state().Perspective)
}

func TestModelIgnoresStaleStateMessages(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyRight})
	first := h.lastChange()
	require.Equal(t, preview.Selection{FriendIndex: 0, DocIndex: 0, EdIndex: 1}, first.State.Selection)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	want := preview.Selection{FriendIndex: 0, DocIndex: 1, EdIndex: 0}
	require.Equal(t, want, h.state().Selection)

	// the change notification for the first press lands after the second
	h.send(StateMsg(first))

	live, err := h.model.sessions.Get("tui")
	require.NoError(t, err)
	assert.Equal(t, want, live.State.Selection)
	assert.Equal(t, live.State, h.state())
	require.NotNil(t, h.model.SessionView().Props)
	assert.Equal(t, "Fruits of Solitude", h.model.SessionView().Props.Title)
}

func TestModelSpinNow(t *testing.T) {
	h := newHarness(t)
	h.press("S")
	assert.Equal(t, preview.PerspectiveSpine, h.state().Perspective)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestModelIgnoresOtherSessions(t *testing.T) {
	h := newHarness(t)
	other := h.model.SessionView()
	other.ID = "someone-else"
	other.State.ShowGuides = true

	h.send(StateMsg(other))
	assert.False(t, h.state().ShowGuides)
}

func TestModelWindowResize(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, preview.Viewport{Width: 2400, Height: 1920}, h.model.SessionView().Viewport)
	assert.Equal(t, 100, h.model.width)
}

func TestModelEditor(t *testing.T) {
	h := newHarness(t)
	original := h.model.SessionView().Props.Blurb

	h.press("i")
	require.True(t, h.model.Editing())
	assert.Equal(t, original, h.model.editor.Value())
	assert.Contains(t, h.model.View(), "editing blurb")

	// keys go to the editor, not the preview
	h.press("f!")
	assert.Equal(t, 0, h.state().FriendIndex)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, h.model.Editing())
	assert.Equal(t, original+"f!", h.model.SessionView().Props.Blurb)

	h.press("i")
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, h.model.SessionView().Props.CustomCSS, h.model.editor.Value())
	assert.Contains(t, h.model.View(), "editing css")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.model.Editing())
	assert.Equal(t, original+"f!", h.model.SessionView().Props.Blurb, "cancel keeps overrides")
}

func TestModelView(t *testing.T) {
	h := newHarness(t)
	view := h.model.View()
	assert.Contains(t, view, "William Penn (1/3)")
	assert.Contains(t, view, "No Cross, No Crown (1/2)")
	assert.Contains(t, view, "updated (1/2)")
	assert.Contains(t, view, "mode:3d")
}

func TestModelQuitPersists(t *testing.T) {
	h := newHarness(t)
	h.press("f")

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Empty(t, h.model.View())

	data, err := h.store.LoadSnapshot("tui")
	require.NoError(t, err)
	restored, err := preview.Restore(data)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.FriendIndex)
}
