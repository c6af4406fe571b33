// file: internal/preview/reduce.go
// version: 1.1.0
// guid: a6571751-658c-4347-ba71-c71e983cd12a

package preview

import (
	"fmt"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

// Reduce applies a to s and returns the next state. s is left untouched.
// On error the returned state equals s.
func Reduce(cat *catalog.Catalog, s State, a Action) (State, error) {
	switch a.Type {
	case ActionChange:
		s.Selection = s.Selection.Change(cat, a.Level, a.Direction)

	case ActionSelectFriend:
		sel, err := s.Selection.SelectFriend(cat, a.Index)
		if err != nil {
			return s, err
		}
		s.Selection = sel

	case ActionSelectDocument:
		sel, err := s.Selection.SelectDocument(cat, a.Index)
		if err != nil {
			return s, err
		}
		s.Selection = sel

	case ActionSelectEdition:
		sel, err := s.Selection.SelectEdition(cat, a.Index)
		if err != nil {
			return s, err
		}
		s.Selection = sel

	case ActionSelectPath:
		sel, err := SelectByPath(cat, a.Path)
		if err != nil {
			return s, err
		}
		s.Selection = sel

	case ActionToggleGuides:
		s.ShowGuides = !s.ShowGuides
	case ActionToggleMaskBleed:
		s.MaskBleed = !s.MaskBleed
	case ActionToggleCode:
		s.ShowCode = !s.ShowCode
	case ActionCycleScale:
		s.Scale = s.Scale.Next()
	case ActionCycleBookSize:
		s.BookSize = s.BookSize.Next()
	case ActionCycleMode:
		s.Mode = s.Mode.Next()
	case ActionCycleFauxVol:
		s.FauxVol = s.FauxVol.Next()

	case ActionSpin:
		// the cover only has sides to show in 3D
		mode := s.Mode
		if a.Mode != "" {
			if !a.Mode.Valid() {
				return s, fmt.Errorf("spin mode %q: %w", a.Mode, ErrUnknownAction)
			}
			mode = a.Mode
		}
		if mode == Mode3D {
			s.Perspective = s.Perspective.Next()
		}

	case ActionSetOverride:
		if _, err := ParseField(string(a.Field)); err != nil {
			return s, err
		}
		s.Overrides = s.Overrides.With(a.Field, s.Selection.Key(cat, a.Field), a.Text)

	case ActionClearOverrides:
		s.Overrides = s.Overrides.Cleared()

	default:
		return s, fmt.Errorf("%q: %w", a.Type, ErrUnknownAction)
	}
	return s, nil
}
