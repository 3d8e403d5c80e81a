// Package layoutfile loads extra keyboard row sets from YAML.
//
//	states:
//	  - name: numbers
//	    rows:
//	      - kind: number
//	        keys: "1 2 3 4 5 6 7 8 9 0"
//	      - kind: symbol
//	        keys: "[shift] . , ? ! ' [backspace]"
//	      - keys: "[switch] [space] [return]"
//
// Bracketed tokens name special keys; every other token becomes a key of the
// row's kind (letter when omitted).
//
// A lowercase state also replaces uppercase with its upper-cased copy, so
// lowercase is always registered first, wherever it appears in the file. An
// uppercase state in the same file then overrides the derived rows.
package layoutfile

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

type File struct {
	States []StateDef `yaml:"states"`
}

type StateDef struct {
	Name string   `yaml:"name"`
	Rows []RowDef `yaml:"rows"`
}

type RowDef struct {
	Kind string `yaml:"kind"`
	Keys string `yaml:"keys"`
}

var specialKeys = map[string]func() keyboard.Key{
	"[shift]":     keyboard.ShiftKey,
	"[backspace]": keyboard.BackspaceKey,
	"[space]":     keyboard.SpaceKey,
	"[return]":    keyboard.ReturnKey,
	"[switch]":    keyboard.SwitchInputKey,
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Apply registers every state of the file on layout: lowercase first, the
// rest in file order. Nothing is registered when a state fails to build.
func (f *File) Apply(layout *keyboard.Layout) error {
	type built struct {
		state keyboard.State
		rows  []keyboard.Row
	}

	var first, rest []built
	for _, def := range f.States {
		rows, err := def.build()
		if err != nil {
			return fmt.Errorf("state %q: %w", def.Name, err)
		}

		b := built{state: keyboard.State(def.Name), rows: rows}
		if b.state == keyboard.Lowercase {
			first = append(first, b)
		} else {
			rest = append(rest, b)
		}
	}

	for _, b := range append(first, rest...) {
		if err := layout.Register(b.state, b.rows); err != nil {
			return fmt.Errorf("register %q: %w", b.state, err)
		}
	}
	return nil
}

func (d StateDef) build() ([]keyboard.Row, error) {
	rows := make([]keyboard.Row, 0, len(d.Rows))
	for i, rowDef := range d.Rows {
		row, err := rowDef.build()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (d RowDef) build() (keyboard.Row, error) {
	kind := keyboard.KindLetter
	if d.Kind != "" {
		parsed, err := keyboard.ParseKeyKind(d.Kind)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	tokens := strings.Fields(d.Keys)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty row: %w", keyboard.ErrConfiguration)
	}

	row := make(keyboard.Row, 0, len(tokens))
	for _, tok := range tokens {
		if special, ok := specialKeys[tok]; ok {
			row = append(row, special())
			continue
		}
		if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") && len(tok) > 2 {
			return nil, fmt.Errorf("unknown special key %s: %w", tok, keyboard.ErrInvalidKey)
		}
		row = append(row, keyboard.Key{Kind: kind, Value: tok, Label: tok})
	}
	return row, nil
}

var specialTokens = map[keyboard.KeyKind]string{
	keyboard.KindShift:       "[shift]",
	keyboard.KindBackspace:   "[backspace]",
	keyboard.KindSpacebar:    "[space]",
	keyboard.KindReturn:      "[return]",
	keyboard.KindSwitchInput: "[switch]",
}

// EncodeRow writes row in the token syntax Apply reads.
func EncodeRow(row keyboard.Row) string {
	tokens := make([]string, 0, len(row))
	for _, key := range row {
		if tok, ok := specialTokens[key.Kind]; ok {
			tokens = append(tokens, tok)
			continue
		}
		tokens = append(tokens, key.Value)
	}
	return strings.Join(tokens, " ")
}
