package json

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const saveInterval = time.Minute

// StateStore keeps states in memory and writes them to a json file from
// SaveLooper.
type StateStore struct {
	states map[string]keyboard.EngineState
	file   *os.File
	lock   sync.Mutex
	dirty  bool
}

func NewStateStore(filename string) (*StateStore, error) {
	fileExists := true
	info, err := os.Stat(filename)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &StateStore{
		states: make(map[string]keyboard.EngineState),
		file:   file,
		dirty:  true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *StateStore) Close() error {
	return s.file.Close()
}

func (s *StateStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.states)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

func (s *StateStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.states)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper saves every minute and once more when ctx is done. It closes
// the file on return.
func (s *StateStore) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(saveInterval):
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
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

	if current, ok := s.states[app]; ok && current == state {
		return nil
	}
	s.states[app] = state
	s.dirty = true
	return nil
}
