package keyboard

import "fmt"

// Engine owns the keyboard state and turns key activations into host
// commands. It is not safe for concurrent use.
type Engine struct {
	layout *Layout
	state  EngineState
}

type EngineOption func(*Engine)

// WithInitialState starts the engine in a previously saved state. States the
// layout does not know are ignored.
func WithInitialState(state EngineState) EngineOption {
	return func(e *Engine) {
		if _, err := e.layout.RowsFor(state.Layout); err == nil {
			e.state.Layout = state.Layout
		}
		if _, err := ParseOrientation(string(state.Orientation)); err == nil {
			e.state.Orientation = state.Orientation
		}
	}
}

func NewEngine(layout *Layout, opts ...EngineOption) *Engine {
	e := &Engine{
		layout: layout,
		state:  DefaultEngineState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() EngineState {
	return e.state
}

func (e *Engine) Layout() *Layout {
	return e.layout
}

// Rows returns the rows for the current state. Hosts re-render from this
// after every state change.
func (e *Engine) Rows() ([]Row, error) {
	return e.layout.RowsFor(e.state.Layout)
}

// SetOrientation records a rotation reported by the host. Only portrait and
// landscape are accepted.
func (e *Engine) SetOrientation(o Orientation) error {
	switch o {
	case Portrait, Landscape:
		e.state.Orientation = o
		return nil
	}
	return fmt.Errorf("orientation %q: %w", o, ErrConfiguration)
}

func (e *Engine) RowHeight() float64 {
	return e.layout.RowHeight(e.state.Orientation)
}

func (e *Engine) Activate(key Key) ([]Command, error) {
	switch key.Kind {
	case KindLetter, KindNumber, KindSymbol:
		return []Command{InsertText(key.Value)}, nil
	case KindSpacebar:
		return []Command{InsertText(" ")}, nil
	case KindReturn:
		return []Command{InsertText("\n")}, nil
	case KindBackspace:
		return []Command{DeleteBackward()}, nil
	case KindSwitchInput:
		return []Command{SwitchInputSource()}, nil
	case KindShift:
		e.toggleCase()
		return nil, nil
	}

	return nil, fmt.Errorf("activate %s: kind %q: %w", key, key.Kind, ErrInvalidKey)
}

// shift only moves between the two letter cases
func (e *Engine) toggleCase() {
	switch e.state.Layout {
	case Lowercase:
		e.state.Layout = Uppercase
	case Uppercase:
		e.state.Layout = Lowercase
	}
}
