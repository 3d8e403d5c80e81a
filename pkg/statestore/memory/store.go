package memory

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"sync"
)

type StateStore struct {
	states map[string]keyboard.EngineState
	lock   sync.Mutex
}

func NewStateStore() *StateStore {
	return &StateStore{
		states: make(map[string]keyboard.EngineState),
	}
}

func (s *StateStore) GetState(app string) (keyboard.EngineState, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, ok := s.states[app]
	return state, ok, nil
}

func (s *StateStore) SetState(app string, state keyboard.EngineState) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.states[app] = state
	return nil
}
