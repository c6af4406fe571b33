// file: internal/preview/selection.go
// version: 1.0.0
// guid: b7dda6ed-ac25-47f5-9e21-3e6e7eb118a5

package preview

import (
	"errors"
	"fmt"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

var (
	// ErrNotFound is returned when a path matches no edition.
	ErrNotFound = catalog.ErrNotFound
	// ErrIndexOutOfRange is returned by direct selection of a missing entity.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Unset is the canonical value of an index that points at nothing.
const Unset = -1

// Selection holds the three coupled cursor indices. An index is either a
// valid position in its parent's sequence or out of range, meaning unset.
type Selection struct {
	FriendIndex int `json:"friendIndex"`
	DocIndex    int `json:"docIndex"`
	EdIndex     int `json:"edIndex"`
}

// Level names which index a change applies to. LevelCover walks every
// edition of the catalog in order, carrying into documents and friends.
type Level int

const (
	LevelCover Level = iota
	LevelFriend
	LevelDocument
	LevelEdition
)

var levelNames = map[Level]string{
	LevelCover:    "cover",
	LevelFriend:   "friend",
	LevelDocument: "document",
	LevelEdition:  "edition",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a level name to a Level.
func ParseLevel(name string) (Level, error) {
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", name)
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Direction of a change
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection maps "forward"/"backward" to a Direction.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "forward", "":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", name)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes "forward" or "backward".
func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// Entities is the resolved selection. Fields are nil from the first level
// that does not resolve.
type Entities struct {
	Friend   *catalog.Friend
	Document *catalog.Document
	Edition  *catalog.Edition
}

// Complete reports whether all three levels resolved.
func (e Entities) Complete() bool {
	return e.Friend != nil && e.Document != nil && e.Edition != nil
}

// Entities resolves the selection against cat.
func (s Selection) Entities(cat *catalog.Catalog) Entities {
	if s.FriendIndex == Unset || s.DocIndex == Unset || s.EdIndex == Unset {
		return Entities{}
	}
	friend, ok := cat.Friend(s.FriendIndex)
	if !ok {
		return Entities{}
	}
	if s.DocIndex < 0 || s.DocIndex >= len(friend.Documents) {
		return Entities{Friend: friend}
	}
	doc := &friend.Documents[s.DocIndex]
	if s.EdIndex < 0 || s.EdIndex >= len(doc.Editions) {
		return Entities{Friend: friend, Document: doc}
	}
	return Entities{Friend: friend, Document: doc, Edition: &doc.Editions[s.EdIndex]}
}

// Change moves the selection one step at level in dir. If an index the step
// depends on is stale, the stale index and its descendants reset to 0 instead.
func (s Selection) Change(cat *catalog.Catalog, level Level, dir Direction) Selection {
	if reset, stale := s.clampStale(cat, level); stale {
		return reset
	}

	switch level {
	case LevelFriend:
		return Selection{FriendIndex: wrap(s.FriendIndex, cat.FriendCount(), dir)}
	case LevelDocument:
		docs := cat.Documents(s.FriendIndex)
		return Selection{FriendIndex: s.FriendIndex, DocIndex: wrap(s.DocIndex, len(docs), dir)}
	case LevelEdition:
		eds := cat.Editions(s.FriendIndex, s.DocIndex)
		return Selection{FriendIndex: s.FriendIndex, DocIndex: s.DocIndex, EdIndex: wrap(s.EdIndex, len(eds), dir)}
	}

	if dir == Forward {
		return s.nextCover(cat)
	}
	return s.prevCover(cat)
}

// clampStale resets the first stale index that level depends on.
func (s Selection) clampStale(cat *catalog.Catalog, level Level) (Selection, bool) {
	friend, ok := cat.Friend(s.FriendIndex)
	if !ok {
		return Selection{}, true
	}
	if level == LevelFriend {
		return s, false
	}
	if s.DocIndex < 0 || s.DocIndex >= len(friend.Documents) {
		return Selection{FriendIndex: s.FriendIndex}, true
	}
	if level == LevelDocument {
		return s, false
	}
	if s.EdIndex < 0 || s.EdIndex >= len(friend.Documents[s.DocIndex].Editions) {
		return Selection{FriendIndex: s.FriendIndex, DocIndex: s.DocIndex}, true
	}
	return s, false
}

func (s Selection) nextCover(cat *catalog.Catalog) Selection {
	docs := cat.Documents(s.FriendIndex)
	eds := docs[s.DocIndex].Editions
	switch {
	case s.EdIndex < len(eds)-1:
		s.EdIndex++
	case s.DocIndex < len(docs)-1:
		s.DocIndex, s.EdIndex = s.DocIndex+1, 0
	case s.FriendIndex < cat.FriendCount()-1:
		s = Selection{FriendIndex: s.FriendIndex + 1}
	default:
		s = Selection{}
	}
	return s
}

func (s Selection) prevCover(cat *catalog.Catalog) Selection {
	docs := cat.Documents(s.FriendIndex)
	switch {
	case s.EdIndex > 0:
		s.EdIndex--
	case s.DocIndex > 0:
		s.DocIndex--
		s.EdIndex = len(docs[s.DocIndex].Editions) - 1
	case s.FriendIndex > 0:
		s = lastCoverOf(cat, s.FriendIndex-1)
	default:
		s = lastCoverOf(cat, cat.FriendCount()-1)
	}
	return s
}

// lastCoverOf selects the last edition of the last document of friend fi.
// Empty sequences leave the corresponding index Unset.
func lastCoverOf(cat *catalog.Catalog, fi int) Selection {
	docs := cat.Documents(fi)
	if len(docs) == 0 {
		return Selection{FriendIndex: fi, DocIndex: Unset, EdIndex: Unset}
	}
	di := len(docs) - 1
	return Selection{FriendIndex: fi, DocIndex: di, EdIndex: len(docs[di].Editions) - 1}
}

// wrap steps i within [0, n) cyclically.
func wrap(i, n int, dir Direction) int {
	if n <= 0 {
		return 0
	}
	if dir == Forward {
		if i >= n-1 {
			return 0
		}
		return i + 1
	}
	if i <= 0 {
		return n - 1
	}
	return i - 1
}

// SelectFriend selects friend i directly and resets document and edition.
func (s Selection) SelectFriend(cat *catalog.Catalog, i int) (Selection, error) {
	if _, ok := cat.Friend(i); !ok {
		return s, fmt.Errorf("friend %d: %w", i, ErrIndexOutOfRange)
	}
	return Selection{FriendIndex: i}, nil
}

// SelectDocument selects document i of the current friend and resets the edition.
func (s Selection) SelectDocument(cat *catalog.Catalog, i int) (Selection, error) {
	if i < 0 || i >= len(cat.Documents(s.FriendIndex)) {
		return s, fmt.Errorf("document %d: %w", i, ErrIndexOutOfRange)
	}
	return Selection{FriendIndex: s.FriendIndex, DocIndex: i}, nil
}

// SelectEdition selects edition i of the current document.
func (s Selection) SelectEdition(cat *catalog.Catalog, i int) (Selection, error) {
	if i < 0 || i >= len(cat.Editions(s.FriendIndex, s.DocIndex)) {
		return s, fmt.Errorf("edition %d: %w", i, ErrIndexOutOfRange)
	}
	s.EdIndex = i
	return s, nil
}

// SelectByPath finds the edition with exactly the given path.
func SelectByPath(cat *catalog.Catalog, path string) (Selection, error) {
	loc, err := cat.FindByPath(path)
	if err != nil {
		return Selection{}, err
	}
	return Selection{FriendIndex: loc.Friend, DocIndex: loc.Document, EdIndex: loc.Edition}, nil
}
