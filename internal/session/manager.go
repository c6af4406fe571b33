// file: internal/session/manager.go
// version: 1.0.0
// guid: 5a8c3e1f-7b24-4d96-a0e8-c1f9b6d3a274

// Package session keeps one preview state per browser tab (or terminal),
// routes key presses and actions through the reducer, debounces spins and
// persists snapshots on unload.
package session

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"sync"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/clock"
	"github.com/jdfalk/cover-preview/internal/database"
	"github.com/jdfalk/cover-preview/internal/metrics"
	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/realtime"
)

var (
	// ErrSessionNotFound is returned for an ID with no open session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidID is returned for a client supplied ID that cannot be a key.
	ErrInvalidID = errors.New("invalid session id")
	// ErrInvalidViewport is returned for a non-positive viewport.
	ErrInvalidViewport = errors.New("invalid viewport")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// View is what a surface needs to draw one session.
type View struct {
	ID       string              `json:"id"`
	State    preview.State       `json:"state"`
	Props    *preview.CoverProps `json:"props"`
	Viewport preview.Viewport    `json:"viewport"`
}

// Options configures a Manager. Zero values pick sensible defaults.
type Options struct {
	Store        database.Store
	Hub          *realtime.EventHub
	Clock        clock.Clock
	Logger       *zap.Logger
	SpinDebounce time.Duration
	Viewport     preview.Viewport
	// OnChange is called after every state change, outside the manager lock.
	OnChange func(View)
}

type session struct {
	id       string
	state    preview.State
	viewport preview.Viewport
	spin     *preview.Debouncer
	// spinMode is the mode the last spin press saw.
	spinMode preview.Mode
}

// Manager owns every open session. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	catGen   uint64
	sessions map[string]*session

	store    database.Store
	hub      *realtime.EventHub
	clock    clock.Clock
	log      *zap.Logger
	window   time.Duration
	viewport preview.Viewport
	onChange func(View)
}

// NewManager returns a manager serving cat.
func NewManager(cat *catalog.Catalog, opts Options) *Manager {
	m := &Manager{
		cat:      cat,
		sessions: map[string]*session{},
		store:    opts.Store,
		hub:      opts.Hub,
		clock:    opts.Clock,
		log:      opts.Logger,
		window:   opts.SpinDebounce,
		viewport: opts.Viewport,
		onChange: opts.OnChange,
	}
	if m.store == nil {
		m.store = database.NewMemoryStore()
	}
	if m.clock == nil {
		m.clock = clock.Real()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.log = m.log.Named("session")
	if m.window <= 0 {
		m.window = preview.SpinDebounce
	}
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		m.viewport = preview.DefaultViewport
	}
	return m
}

// NewID mints a session ID.
func NewID() string {
	return ulid.Make().String()
}

// Catalog returns the catalog sessions are currently resolved against.
func (m *Manager) Catalog() *catalog.Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cat
}

// CatalogGeneration returns the catalog with a counter that SetCatalog
// bumps, so callers can key derived data by the catalog it came from.
func (m *Manager) CatalogGeneration() (*catalog.Catalog, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cat, m.catGen
}

// SetCatalog swaps the catalog. Open sessions keep their indices; stale
// ones are clamped by the next change.
func (m *Manager) SetCatalog(cat *catalog.Catalog) {
	m.mu.Lock()
	m.cat = cat
	m.catGen++
	views := make([]View, 0, len(m.sessions))
	for _, s := range m.sessions {
		views = append(views, m.viewLocked(s))
	}
	m.mu.Unlock()

	m.hub.Publish(realtime.EventCatalogReloaded, "", map[string]any{
		"friends":  cat.FriendCount(),
		"editions": cat.EditionCount(),
	})
	for _, v := range views {
		m.notify(v)
	}
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IDs lists open session IDs, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Open starts or resumes session id. An empty id mints a new one. A stored
// snapshot is restored first, then query (capture, path) is applied. An
// unknown path fails with preview.ErrNotFound and opens nothing. Opening an
// already open session applies query to its live state.
func (m *Manager) Open(id string, query url.Values) (View, error) {
	if id == "" {
		id = NewID()
	} else if !idPattern.MatchString(id) {
		return View{}, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		next, err := preview.ApplyQuery(m.cat, s.state, query)
		if err != nil {
			m.mu.Unlock()
			return View{}, err
		}
		s.state = next
		v := m.viewLocked(s)
		m.mu.Unlock()
		m.notify(v)
		return v, nil
	}

	state, err := preview.ApplyQuery(m.cat, m.restore(id), query)
	if err != nil {
		m.mu.Unlock()
		return View{}, err
	}

	s := &session{id: id, state: state, viewport: m.viewport}
	s.spin = preview.NewDebouncer(m.clock, m.window, func() { m.spinFired(id) })
	m.sessions[id] = s
	metrics.SetSessions(len(m.sessions))
	v := m.viewLocked(s)
	m.mu.Unlock()

	m.log.Debug("session opened", zap.String("id", id))
	m.notify(v)
	return v, nil
}

// restore loads the stored snapshot for id. Missing or unreadable
// snapshots fall back to defaults.
func (m *Manager) restore(id string) preview.State {
	data, err := m.store.LoadSnapshot(id)
	if err != nil {
		if !errors.Is(err, database.ErrSnapshotNotFound) {
			m.log.Warn("snapshot load failed", zap.String("id", id), zap.Error(err))
		}
		return preview.Default()
	}
	state, err := preview.Restore(data)
	if err != nil {
		metrics.IncSnapshotRestoreFailure()
		m.log.Debug("discarding unreadable snapshot", zap.String("id", id), zap.Error(err))
	}
	return state
}

// Get returns the current view of session id.
func (m *Manager) Get(id string) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return View{}, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return m.viewLocked(s), nil
}

// Dispatch applies a to session id.
func (m *Manager) Dispatch(id string, a preview.Action) (View, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return View{}, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	start := time.Now()
	next, err := preview.Reduce(m.cat, s.state, a)
	metrics.IncAction(string(a.Type), err)
	metrics.ObserveOperationDuration("reduce", time.Since(start))
	if err != nil {
		m.mu.Unlock()
		return View{}, err
	}
	s.state = next
	v := m.viewLocked(s)
	m.mu.Unlock()

	m.notify(v)
	return v, nil
}

// Press handles a canonical key name. The spin key is debounced: the
// returned view is unchanged and the spin lands once presses stop, judged
// against the mode of the last press.
func (m *Manager) Press(id, key string) (View, error) {
	metrics.IncKey(key)
	if key != preview.KeySpin {
		a, ok := preview.KeyAction(key)
		if !ok {
			return View{}, fmt.Errorf("%q: %w", key, preview.ErrUnknownKey)
		}
		return m.Dispatch(id, a)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return View{}, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.spinMode = s.state.Mode
	if s.spin.Trigger() {
		metrics.IncSpinCoalesced()
	}
	return m.viewLocked(s), nil
}

func (m *Manager) spinFired(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	mode := s.spinMode
	m.mu.Unlock()

	if _, err := m.Dispatch(id, preview.Spin(mode)); err != nil && !errors.Is(err, ErrSessionNotFound) {
		m.log.Warn("debounced spin failed", zap.String("id", id), zap.Error(err))
	}
}

// SetOverride stores text for field on the current selection of session id.
func (m *Manager) SetOverride(id, field, text string) (View, error) {
	f, err := preview.ParseField(field)
	if err != nil {
		return View{}, err
	}
	return m.Dispatch(id, preview.SetOverride(f, text))
}

// Resize changes the viewport props are derived for. State is untouched.
func (m *Manager) Resize(id string, vp preview.Viewport) (View, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return View{}, fmt.Errorf("%dx%d: %w", vp.Width, vp.Height, ErrInvalidViewport)
	}
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return View{}, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.viewport = vp
	v := m.viewLocked(s)
	m.mu.Unlock()

	m.notify(v)
	return v, nil
}

// Unload persists the snapshot of session id and forgets it.
func (m *Manager) Unload(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.spin.Stop()
	delete(m.sessions, id)
	metrics.SetSessions(len(m.sessions))
	m.mu.Unlock()

	err := m.persist(s)
	m.hub.Publish(realtime.EventSessionClosed, id, nil)
	m.log.Debug("session unloaded", zap.String("id", id), zap.Error(err))
	return err
}

// Close stops every debouncer and persists every open session.
func (m *Manager) Close() error {
	m.mu.Lock()
	sessions := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		s.spin.Stop()
		sessions = append(sessions, s)
	}
	m.sessions = map[string]*session{}
	metrics.SetSessions(0)
	m.mu.Unlock()

	var errs error
	for _, s := range sessions {
		errs = multierr.Append(errs, m.persist(s))
	}
	return errs
}

func (m *Manager) persist(s *session) error {
	data, err := preview.Snapshot(s.state)
	if err == nil {
		err = m.store.SaveSnapshot(s.id, data)
	}
	metrics.IncSnapshotWrite(err)
	if err != nil {
		return fmt.Errorf("persist session %s: %w", s.id, err)
	}
	return nil
}

func (m *Manager) viewLocked(s *session) View {
	v := View{ID: s.id, State: s.state, Viewport: s.viewport}
	if props, ok := preview.Derive(m.cat, s.state, s.viewport); ok {
		v.Props = &props
	}
	return v
}

func (m *Manager) notify(v View) {
	m.hub.Publish(realtime.EventSessionState, v.ID, v)
	if m.onChange != nil {
		m.onChange(v)
	}
}
