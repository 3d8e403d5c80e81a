package layoutfile

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const numbersYAML = `
states:
  - name: numbers
    rows:
      - kind: number
        keys: "1 2 3"
      - kind: symbol
        keys: "[shift] . , [backspace]"
      - keys: "[switch] [space] [return]"
  - name: lowercase
    rows:
      - keys: "a b c"
      - keys: "[shift] [backspace]"
`

func TestApply(t *testing.T) {
	f, err := Parse(strings.NewReader(numbersYAML))
	require.NoError(t, err)
	require.Len(t, f.States, 2)

	layout, err := keyboard.NewLayout()
	require.NoError(t, err)
	require.NoError(t, f.Apply(layout))

	rows, err := layout.RowsFor(keyboard.Numbers)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, keyboard.Row{keyboard.Number("1"), keyboard.Number("2"), keyboard.Number("3")}, rows[0])
	assert.Equal(t, keyboard.Row{keyboard.ShiftKey(), keyboard.Symbol("."), keyboard.Symbol(","), keyboard.BackspaceKey()}, rows[1])
	assert.Equal(t, keyboard.Row{keyboard.SwitchInputKey(), keyboard.SpaceKey(), keyboard.ReturnKey()}, rows[2])

	upper, err := layout.RowsFor(keyboard.Uppercase)
	require.NoError(t, err)
	assert.Equal(t, keyboard.Row{keyboard.Letter("A"), keyboard.Letter("B"), keyboard.Letter("C")}, upper[0])
}

func TestApplyKeepsCustomUppercase(t *testing.T) {
	f, err := Parse(strings.NewReader(`
states:
  - name: uppercase
    rows:
      - keys: "Ä Ö Ü"
  - name: lowercase
    rows:
      - keys: "ä ö ü"
`))
	require.NoError(t, err)

	layout, err := keyboard.NewLayout()
	require.NoError(t, err)
	require.NoError(t, f.Apply(layout))

	upper, err := layout.RowsFor(keyboard.Uppercase)
	require.NoError(t, err)
	assert.Equal(t, []keyboard.Row{{keyboard.Letter("Ä"), keyboard.Letter("Ö"), keyboard.Letter("Ü")}}, upper)

	lower, err := layout.RowsFor(keyboard.Lowercase)
	require.NoError(t, err)
	assert.Equal(t, []keyboard.Row{{keyboard.Letter("ä"), keyboard.Letter("ö"), keyboard.Letter("ü")}}, lower)
}

func TestApplyBuildsEverythingBeforeRegistering(t *testing.T) {
	f, err := Parse(strings.NewReader(`
states:
  - name: lowercase
    rows:
      - keys: "x y z"
  - name: symbols
    rows:
      - keys: "[bogus]"
`))
	require.NoError(t, err)

	layout, err := keyboard.NewLayout()
	require.NoError(t, err)
	assert.ErrorIs(t, f.Apply(layout), keyboard.ErrInvalidKey)

	lower, err := layout.RowsFor(keyboard.Lowercase)
	require.NoError(t, err)
	assert.Equal(t, keyboard.Letter("q"), lower[0][0])
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(numbersYAML), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "numbers", f.States[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown kind",
			doc:  "states:\n  - name: x\n    rows:\n      - kind: emoji\n        keys: a\n",
			want: keyboard.ErrInvalidKey,
		},
		{
			name: "unknown special key",
			doc:  "states:\n  - name: x\n    rows:\n      - keys: \"[tab]\"\n",
			want: keyboard.ErrInvalidKey,
		},
		{
			name: "empty row",
			doc:  "states:\n  - name: x\n    rows:\n      - keys: \"\"\n",
			want: keyboard.ErrConfiguration,
		},
		{
			name: "no rows",
			doc:  "states:\n  - name: x\n",
			want: keyboard.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(tt.doc))
			require.NoError(t, err)

			layout, err := keyboard.NewLayout()
			require.NoError(t, err)

			assert.ErrorIs(t, f.Apply(layout), tt.want)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("states:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestEncodeRow(t *testing.T) {
	layout, err := keyboard.NewLayout()
	require.NoError(t, err)

	rows, err := layout.RowsFor(keyboard.Uppercase)
	require.NoError(t, err)

	assert.Equal(t, "Q W E R T Y U I O P", EncodeRow(rows[0]))
	assert.Equal(t, "[shift] Z X C V B N M [backspace]", EncodeRow(rows[2]))
	assert.Equal(t, "[switch] [space] [return]", EncodeRow(rows[3]))

	row, err := RowDef{Keys: EncodeRow(rows[2])}.build()
	require.NoError(t, err)
	assert.Equal(t, rows[2], row)
}
