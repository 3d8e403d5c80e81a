package keyboard

import (
	"fmt"
	"slices"
	"strings"
)

const (
	FixedLayoutHeight = 210
	NumberOfRows      = 4
)

// Geometry holds the values the host needs for its layout pass.
type Geometry struct {
	Height map[Orientation]float64
	Rows   int
}

func DefaultGeometry() Geometry {
	return Geometry{
		Height: map[Orientation]float64{
			Portrait:  FixedLayoutHeight,
			Landscape: FixedLayoutHeight,
		},
		Rows: NumberOfRows,
	}
}

func (g Geometry) RowHeight(o Orientation) float64 {
	if g.Rows <= 0 {
		return 0
	}
	return g.Height[o] / float64(g.Rows)
}

func (g Geometry) validate() error {
	if g.Rows <= 0 {
		return fmt.Errorf("number of rows must be positive, got %d: %w", g.Rows, ErrConfiguration)
	}
	for _, o := range []Orientation{Portrait, Landscape} {
		if g.Height[o] <= 0 {
			return fmt.Errorf("layout height for %s must be positive: %w", o, ErrConfiguration)
		}
	}
	return nil
}

// Layout maps each keyboard state to its rows. It holds no per-session state;
// every lookup returns a fresh copy.
type Layout struct {
	rows     map[State][]Row
	geometry Geometry
}

type LayoutOption func(*Layout)

func WithGeometry(g Geometry) LayoutOption {
	return func(l *Layout) {
		l.geometry = g
	}
}

func NewLayout(opts ...LayoutOption) (*Layout, error) {
	l := &Layout{
		rows:     make(map[State][]Row),
		geometry: DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.geometry.validate(); err != nil {
		return nil, err
	}

	defaults := map[State][]Row{
		Lowercase: lowercaseRows(),
		Numbers:   numberRows(),
		Symbols:   symbolRows(),
	}
	for _, state := range []State{Lowercase, Numbers, Symbols} {
		if err := l.Register(state, defaults[state]); err != nil {
			return nil, fmt.Errorf("register %s: %w", state, err)
		}
	}

	for _, state := range BuiltinStates {
		if _, ok := l.rows[state]; !ok {
			return nil, fmt.Errorf("no rows for %s: %w", state, ErrConfiguration)
		}
	}

	return l, nil
}

// Register replaces the rows for state. Registering Lowercase also derives
// Uppercase from it.
func (l *Layout) Register(state State, rows []Row) error {
	if state == "" {
		return fmt.Errorf("empty state name: %w", ErrConfiguration)
	}
	if len(rows) == 0 {
		return fmt.Errorf("state %s has no rows: %w", state, ErrConfiguration)
	}
	for i, row := range rows {
		for j, key := range row {
			if !key.Kind.Valid() {
				return fmt.Errorf("state %s row %d key %d: kind %q: %w", state, i, j, key.Kind, ErrInvalidKey)
			}
		}
	}

	l.rows[state] = copyRows(rows, nil)
	if state == Lowercase {
		l.rows[Uppercase] = copyRows(rows, strings.ToUpper)
	}

	return nil
}

func (l *Layout) RowsFor(state State) ([]Row, error) {
	rows, ok := l.rows[state]
	if !ok {
		return nil, fmt.Errorf("no rows registered for state %q: %w", state, ErrConfiguration)
	}
	return copyRows(rows, nil), nil
}

func (l *Layout) States() []State {
	states := make([]State, 0, len(l.rows))
	for _, s := range BuiltinStates {
		if _, ok := l.rows[s]; ok {
			states = append(states, s)
		}
	}
	var custom []State
	for s := range l.rows {
		if !isBuiltin(s) {
			custom = append(custom, s)
		}
	}
	slices.Sort(custom)
	return append(states, custom...)
}

func (l *Layout) Geometry() Geometry {
	g := Geometry{Height: make(map[Orientation]float64, len(l.geometry.Height)), Rows: l.geometry.Rows}
	for o, h := range l.geometry.Height {
		g.Height[o] = h
	}
	return g
}

func (l *Layout) RowHeight(o Orientation) float64 {
	return l.geometry.RowHeight(o)
}

func isBuiltin(s State) bool {
	for _, b := range BuiltinStates {
		if s == b {
			return true
		}
	}
	return false
}

func copyRows(rows []Row, fold func(string) string) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = make(Row, len(row))
		for j, key := range row {
			if fold != nil {
				key = key.withCase(fold)
			}
			out[i][j] = key
		}
	}
	return out
}
