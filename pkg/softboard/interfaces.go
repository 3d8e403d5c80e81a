package softboard

import "codeberg.org/miketth/softboard/pkg/keyboard"

type EventListener interface {
	ReadLine() (string, error)
}

// TextSurface is the document the keyboard types into.
type TextSurface interface {
	InsertText(text string) error
	DeleteBackward() error
}

type InputSourceSwitcher interface {
	// NextInputSource switches to the next input method and returns its name.
	NextInputSource() (string, error)
}

type StateStore interface {
	GetState(app string) (keyboard.EngineState, bool, error)
	SetState(app string, state keyboard.EngineState) error
}

// Observer is told about changes the host has to redraw for.
type Observer interface {
	StateChanged(snap Snapshot)
	InputSourceChanged(name string)
}
