package keyboard

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRowsForBuiltinStates(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	for _, state := range BuiltinStates {
		t.Run(string(state), func(t *testing.T) {
			rows, err := layout.RowsFor(state)
			require.NoError(t, err)
			require.Len(t, rows, NumberOfRows)
			for i, row := range rows {
				assert.NotEmpty(t, row, "row %d", i)
			}
		})
	}
}

func TestRowsForIsIdempotent(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	first, err := layout.RowsFor(Lowercase)
	require.NoError(t, err)
	second, err := layout.RowsFor(Lowercase)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// callers get a copy
	first[0][0].Value = "changed"
	third, err := layout.RowsFor(Lowercase)
	require.NoError(t, err)
	assert.Equal(t, "q", third[0][0].Value)
}

func TestDefaultLowercaseRows(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	rows, err := layout.RowsFor(Lowercase)
	require.NoError(t, err)

	labels := func(row Row) []string {
		out := make([]string, 0, len(row))
		for _, k := range row {
			out = append(out, k.Value)
		}
		return out
	}

	assert.Equal(t, []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"}, labels(rows[0]))
	assert.Equal(t, []string{"a", "s", "d", "f", "g", "h", "j", "k", "l"}, labels(rows[1]))

	assert.Equal(t, KindShift, rows[2][0].Kind)
	assert.Equal(t, KindBackspace, rows[2][len(rows[2])-1].Kind)
	assert.Equal(t, []KeyKind{KindSwitchInput, KindSpacebar, KindReturn},
		[]KeyKind{rows[3][0].Kind, rows[3][1].Kind, rows[3][2].Kind})

	ret := rows[3][2]
	assert.Equal(t, "\n", ret.Value)
	assert.Equal(t, "Return", ret.Caption())

	assert.Equal(t, " ", rows[3][1].Value)
	assert.Empty(t, rows[2][0].Value)
	assert.Empty(t, rows[2][0].Caption())
	assert.Equal(t, "Shift", rows[2][0].Label)
}

func TestUppercaseRowsMirrorLowercase(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	lower, err := layout.RowsFor(Lowercase)
	require.NoError(t, err)
	upper, err := layout.RowsFor(Uppercase)
	require.NoError(t, err)

	require.Len(t, upper, len(lower))
	assert.Equal(t, "Q", upper[0][0].Value)
	assert.Equal(t, "Q", upper[0][0].Label)

	for i := range lower {
		require.Len(t, upper[i], len(lower[i]))
		for j := range lower[i] {
			l, u := lower[i][j], upper[i][j]
			assert.Equal(t, l.Kind, u.Kind)
			if l.Kind == KindLetter {
				assert.NotEqual(t, l.Value, u.Value)
			} else {
				assert.Equal(t, l, u)
			}
		}
	}
}

func TestRowsForUnknownState(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	_, err = layout.RowsFor("emoji")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegisterCustomState(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	err = layout.Register("emoji", []Row{{Symbol("🙂"), Symbol("🙃")}, bottomRow()})
	require.NoError(t, err)

	rows, err := layout.RowsFor("emoji")
	require.NoError(t, err)
	assert.Equal(t, "🙂", rows[0][0].Value)
	assert.Equal(t, []State{Lowercase, Uppercase, Numbers, Symbols, "emoji"}, layout.States())
}

func TestRegisterRejectsBadRows(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	assert.ErrorIs(t, layout.Register("empty", nil), ErrConfiguration)
	assert.ErrorIs(t, layout.Register("", []Row{bottomRow()}), ErrConfiguration)
	assert.ErrorIs(t, layout.Register("bad", []Row{{{Kind: "capslock"}}}), ErrInvalidKey)
}

func TestRegisterLowercaseDerivesUppercase(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	require.NoError(t, layout.Register(Lowercase, []Row{{Letter("ä"), ShiftKey()}}))

	upper, err := layout.RowsFor(Uppercase)
	require.NoError(t, err)
	assert.Equal(t, Row{Letter("Ä"), ShiftKey()}, upper[0])
}

func TestRowHeight(t *testing.T) {
	layout, err := NewLayout()
	require.NoError(t, err)

	assert.InDelta(t, 52.5, layout.RowHeight(Landscape), 1e-9)
	assert.InDelta(t, 52.5, layout.RowHeight(Portrait), 1e-9)

	layout, err = NewLayout(WithGeometry(Geometry{
		Height: map[Orientation]float64{Portrait: 260, Landscape: 160},
		Rows:   5,
	}))
	require.NoError(t, err)
	assert.InDelta(t, 52.0, layout.RowHeight(Portrait), 1e-9)
	assert.InDelta(t, 32.0, layout.RowHeight(Landscape), 1e-9)
}

func TestNewLayoutRejectsBadGeometry(t *testing.T) {
	_, err := NewLayout(WithGeometry(Geometry{Rows: 0}))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewLayout(WithGeometry(Geometry{
		Height: map[Orientation]float64{Portrait: 210},
		Rows:   4,
	}))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestParseKeyKind(t *testing.T) {
	kind, err := ParseKeyKind("returnKey")
	require.NoError(t, err)
	assert.Equal(t, KindReturn, kind)

	_, err = ParseKeyKind("hyper")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
