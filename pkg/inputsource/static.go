package inputsource

import (
	"errors"
	"sync"
)

var ErrNoSources = errors.New("no input sources configured")

// Static cycles through a fixed list of input source names.
type Static struct {
	sources []string
	current int
	lock    sync.Mutex
}

func NewStatic(sources ...string) *Static {
	return &Static{sources: sources}
}

func (s *Static) Current() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.sources) == 0 {
		return ""
	}
	return s.sources[s.current]
}

func (s *Static) NextInputSource() (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.sources) == 0 {
		return "", ErrNoSources
	}
	s.current = (s.current + 1) % len(s.sources)
	return s.sources[s.current], nil
}
