package softboard

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"sync"
)

var ErrUnknownKey = errors.New("unknown key")

// Session connects a keyboard engine to the host: it executes the engine's
// commands, remembers the keyboard state per application and serialises
// activations coming from several sources.
type Session struct {
	engine      *keyboard.Engine
	layout      *keyboard.Layout
	app         string
	inputSource string

	surface  TextSurface
	inputs   InputSourceSwitcher
	store    StateStore
	observer Observer
	log      *zap.SugaredLogger

	lock sync.Mutex
}

func NewSession(
	layout *keyboard.Layout,
	surface TextSurface,
	inputs InputSourceSwitcher,
	store StateStore,
	log *zap.SugaredLogger,
) *Session {
	return &Session{
		engine:  keyboard.NewEngine(layout),
		layout:  layout,
		surface: surface,
		inputs:  inputs,
		store:   store,
		log:     log,
	}
}

func (s *Session) SetObserver(o Observer) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.observer = o
}

func (s *Session) State() keyboard.EngineState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.engine.State()
}

func (s *Session) Rows() ([]keyboard.Row, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.engine.Rows()
}

func (s *Session) RowHeight() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.engine.RowHeight()
}

type Snapshot struct {
	State     keyboard.EngineState
	Rows      []keyboard.Row
	RowHeight float64
}

// Snapshot returns everything a host needs to draw the keyboard, read
// between two activations.
func (s *Session) Snapshot() (Snapshot, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.snapshot()
}

// withSnapshot runs fn on the current snapshot while no activation can run.
func (s *Session) withSnapshot(fn func(Snapshot) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	snap, err := s.snapshot()
	if err != nil {
		return err
	}
	return fn(snap)
}

func (s *Session) snapshot() (Snapshot, error) {
	rows, err := s.engine.Rows()
	if err != nil {
		return Snapshot{}, fmt.Errorf("get rows: %w", err)
	}

	return Snapshot{
		State:     s.engine.State(),
		Rows:      rows,
		RowHeight: s.engine.RowHeight(),
	}, nil
}

func (s *Session) App() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.app
}

func (s *Session) InputSource() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.inputSource
}

// Press activates key and executes the resulting commands in order.
func (s *Session) Press(key keyboard.Key) ([]keyboard.Command, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.press(key)
}

// PressNamed activates the key of the current rows that name refers to: a
// bracketed special key such as "[shift]", a bare special key name, or the
// value of a character key.
func (s *Session) PressNamed(name string) ([]keyboard.Command, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, err := s.engine.Rows()
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	key, ok := findKey(rows, name)
	if !ok {
		return nil, fmt.Errorf("key %q in %s: %w", name, s.engine.State().Layout, ErrUnknownKey)
	}

	return s.press(key)
}

func (s *Session) PressAt(row, col int) ([]keyboard.Command, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, err := s.engine.Rows()
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return nil, fmt.Errorf("key at %d,%d: %w", row, col, ErrUnknownKey)
	}

	return s.press(rows[row][col])
}

func (s *Session) press(key keyboard.Key) ([]keyboard.Command, error) {
	before := s.engine.State()

	cmds, err := s.engine.Activate(key)
	if err != nil {
		return nil, fmt.Errorf("activate: %w", err)
	}

	s.log.Debugw("key activated", "key", key.String(), "commands", cmds)

	for _, cmd := range cmds {
		if err := s.execute(cmd); err != nil {
			return nil, fmt.Errorf("execute %s: %w", cmd, err)
		}
	}

	if s.engine.State() != before {
		s.stateChanged()
	}

	return cmds, nil
}

func (s *Session) execute(cmd keyboard.Command) error {
	switch cmd.Kind {
	case keyboard.CommandInsertText:
		return s.surface.InsertText(cmd.Text)
	case keyboard.CommandDeleteBackward:
		return s.surface.DeleteBackward()
	case keyboard.CommandSwitchInputSource:
		name, err := s.inputs.NextInputSource()
		if err != nil {
			return err
		}
		s.inputSource = name
		s.log.Infow("switched input source", "source", name)
		if s.observer != nil {
			s.observer.InputSourceChanged(name)
		}
		return nil
	}

	return fmt.Errorf("unknown command kind %d", cmd.Kind)
}

func (s *Session) SetOrientation(o keyboard.Orientation) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.engine.State().Orientation == o {
		return nil
	}
	if err := s.engine.SetOrientation(o); err != nil {
		return err
	}
	s.stateChanged()
	return nil
}

// SwitchApp makes app the current application and restores the keyboard
// state last used there. Orientation belongs to the device and is kept.
func (s *Session) SwitchApp(app string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if app == s.app {
		return nil
	}

	saved, found, err := s.store.GetState(app)
	if err != nil {
		return fmt.Errorf("get state for %q: %w", app, err)
	}

	orientation := s.engine.State().Orientation
	if !found {
		saved = keyboard.DefaultEngineState()
	}
	saved.Orientation = orientation

	s.log.Debugw("switching app", "from", s.app, "to", app, "state", saved.String(), "found", found)

	s.app = app
	s.engine = keyboard.NewEngine(s.layout, keyboard.WithInitialState(saved))
	s.notify()
	return nil
}

// stateChanged runs after the engine has moved. Observers always hear about
// it; a failed save only costs the restore on the next app switch.
func (s *Session) stateChanged() {
	s.notify()

	state := s.engine.State()
	if err := s.store.SetState(s.app, state); err != nil {
		s.log.Errorw("save state", "app", s.app, "state", state.String(), "error", err)
	}
}

func (s *Session) notify() {
	if s.observer == nil {
		return
	}

	snap, err := s.snapshot()
	if err != nil {
		s.log.Errorw("notify state change", "error", err)
		return
	}
	s.observer.StateChanged(snap)
}

var keyAliases = map[string]keyboard.KeyKind{
	"shift":     keyboard.KindShift,
	"backspace": keyboard.KindBackspace,
	"space":     keyboard.KindSpacebar,
	"return":    keyboard.KindReturn,
	"switch":    keyboard.KindSwitchInput,
}

func findKey(rows []keyboard.Row, name string) (keyboard.Key, bool) {
	for _, row := range rows {
		for _, key := range row {
			if isCharacterKey(key) && key.Value == name {
				return key, true
			}
		}
	}

	alias := name
	if len(alias) > 2 && alias[0] == '[' && alias[len(alias)-1] == ']' {
		alias = alias[1 : len(alias)-1]
	}
	kind, ok := keyAliases[alias]
	if !ok {
		return keyboard.Key{}, false
	}

	for _, row := range rows {
		for _, key := range row {
			if key.Kind == kind {
				return key, true
			}
		}
	}
	return keyboard.Key{}, false
}

func isCharacterKey(key keyboard.Key) bool {
	switch key.Kind {
	case keyboard.KindLetter, keyboard.KindNumber, keyboard.KindSymbol:
		return true
	}
	return false
}
