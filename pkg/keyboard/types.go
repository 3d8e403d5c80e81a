package keyboard

import (
	"fmt"
	"strings"
)

type KeyKind string

const (
	KindLetter      KeyKind = "letter"
	KindNumber      KeyKind = "number"
	KindSymbol      KeyKind = "symbol"
	KindShift       KeyKind = "shift"
	KindSpacebar    KeyKind = "spacebar"
	KindBackspace   KeyKind = "backspace"
	KindReturn      KeyKind = "returnKey"
	KindSwitchInput KeyKind = "switchInput"
)

var kinds = []KeyKind{
	KindLetter,
	KindNumber,
	KindSymbol,
	KindShift,
	KindSpacebar,
	KindBackspace,
	KindReturn,
	KindSwitchInput,
}

func (k KeyKind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

func ParseKeyKind(s string) (KeyKind, error) {
	kind := KeyKind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("key kind %q: %w", s, ErrInvalidKey)
	}
	return kind, nil
}

type Icon string

const (
	IconNone      Icon = ""
	IconShift     Icon = "shift"
	IconBackspace Icon = "backspace"
	IconGlobe     Icon = "globe"
)

// Key describes a single key. Label is kept even when an icon is set.
type Key struct {
	Kind  KeyKind `json:"kind"`
	Value string  `json:"value"`
	Label string  `json:"label"`
	Icon  Icon    `json:"icon,omitempty"`
}

func (k Key) HasIcon() bool {
	return k.Icon != IconNone
}

// Caption is the text drawn on the key, empty when the icon is drawn instead.
func (k Key) Caption() string {
	if k.HasIcon() {
		return ""
	}
	return k.Label
}

func (k Key) String() string {
	if k.Label != "" {
		return fmt.Sprintf("%s(%s)", k.Kind, k.Label)
	}
	return string(k.Kind)
}

func (k Key) withCase(fold func(string) string) Key {
	if k.Kind != KindLetter {
		return k
	}
	k.Value = fold(k.Value)
	k.Label = fold(k.Label)
	return k
}

type Row []Key

type State string

const (
	Lowercase State = "lowercase"
	Uppercase State = "uppercase"
	Numbers   State = "numbers"
	Symbols   State = "symbols"
)

var BuiltinStates = []State{Lowercase, Uppercase, Numbers, Symbols}

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case Portrait, Landscape:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

type EngineState struct {
	Layout      State       `json:"layout"`
	Orientation Orientation `json:"orientation"`
}

func DefaultEngineState() EngineState {
	return EngineState{
		Layout:      Lowercase,
		Orientation: Landscape,
	}
}

func (s EngineState) String() string {
	return fmt.Sprintf("%s,%s", s.Layout, s.Orientation)
}
