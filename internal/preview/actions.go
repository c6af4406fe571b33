// file: internal/preview/actions.go
// version: 1.1.0
// guid: 740c44a7-22d9-4e2a-b940-a5aa36015790

package preview

import (
	"errors"
	"sort"
)

var (
	// ErrUnknownAction is returned by Reduce for an unrecognized action type.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnknownKey is returned for a key with no binding.
	ErrUnknownKey = errors.New("unknown key")
)

// ActionType identifies a user action
type ActionType string

const (
	ActionChange          ActionType = "change"
	ActionSelectFriend    ActionType = "select_friend"
	ActionSelectDocument  ActionType = "select_document"
	ActionSelectEdition   ActionType = "select_edition"
	ActionSelectPath      ActionType = "select_path"
	ActionToggleGuides    ActionType = "toggle_guides"
	ActionToggleMaskBleed ActionType = "toggle_mask_bleed"
	ActionToggleCode      ActionType = "toggle_code"
	ActionCycleScale      ActionType = "cycle_scale"
	ActionCycleBookSize   ActionType = "cycle_book_size"
	ActionCycleMode       ActionType = "cycle_mode"
	ActionCycleFauxVol    ActionType = "cycle_faux_vol"
	ActionSpin            ActionType = "spin"
	ActionSetOverride     ActionType = "set_override"
	ActionClearOverrides  ActionType = "clear_overrides"
)

// Action is a single user intent. Only the fields relevant to Type are read.
type Action struct {
	Type      ActionType `json:"type"`
	Level     Level      `json:"level,omitempty"`
	Direction Direction  `json:"direction,omitempty"`
	Index     int        `json:"index,omitempty"`
	Path      string     `json:"path,omitempty"`
	Field     Field      `json:"field,omitempty"`
	Text      string     `json:"text,omitempty"`
	// Mode is the mode a spin was requested in. Empty means the current one.
	Mode Mode `json:"mode,omitempty"`
}

// Change builds a cursor movement action.
func Change(level Level, dir Direction) Action {
	return Action{Type: ActionChange, Level: level, Direction: dir}
}

// SetOverride builds an override edit for the current selection.
func SetOverride(f Field, text string) Action {
	return Action{Type: ActionSetOverride, Field: f, Text: text}
}

// Spin builds a perspective rotation requested while the preview was in mode.
func Spin(mode Mode) Action {
	return Action{Type: ActionSpin, Mode: mode}
}

// Simple builds an action that carries no arguments.
func Simple(t ActionType) Action {
	return Action{Type: t}
}

// KeySpin is debounced by every surface before it reaches Reduce.
const KeySpin = "s"

var keyBindings = map[string]Action{
	"right":    Change(LevelCover, Forward),
	"left":     Change(LevelCover, Backward),
	"f":        Change(LevelFriend, Forward),
	"shift+f":  Change(LevelFriend, Backward),
	"up":       Change(LevelDocument, Forward),
	"d":        Change(LevelDocument, Forward),
	"down":     Change(LevelDocument, Backward),
	"shift+d":  Change(LevelDocument, Backward),
	"pageup":   Change(LevelEdition, Forward),
	"e":        Change(LevelEdition, Forward),
	"pagedown": Change(LevelEdition, Backward),
	"shift+e":  Change(LevelEdition, Backward),
	"g":        Simple(ActionToggleGuides),
	KeySpin:    Simple(ActionSpin),
	"esc":      Simple(ActionClearOverrides),
}

// KeyAction returns the action bound to a canonical key name.
func KeyAction(key string) (Action, bool) {
	a, ok := keyBindings[key]
	return a, ok
}

// Keys lists every bound key name, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyBindings))
	for k := range keyBindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
