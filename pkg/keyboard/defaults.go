package keyboard

import "strings"

func Letter(v string) Key {
	return Key{Kind: KindLetter, Value: v, Label: v}
}

func Number(v string) Key {
	return Key{Kind: KindNumber, Value: v, Label: v}
}

func Symbol(v string) Key {
	return Key{Kind: KindSymbol, Value: v, Label: v}
}

func ShiftKey() Key {
	return Key{Kind: KindShift, Label: "Shift", Icon: IconShift}
}

func BackspaceKey() Key {
	return Key{Kind: KindBackspace, Label: "Backspace", Icon: IconBackspace}
}

func SwitchInputKey() Key {
	return Key{Kind: KindSwitchInput, Label: "Next keyboard", Icon: IconGlobe}
}

// SpaceKey has no caption, the bar itself is the affordance.
func SpaceKey() Key {
	return Key{Kind: KindSpacebar, Value: " "}
}

func ReturnKey() Key {
	return Key{Kind: KindReturn, Value: "\n", Label: "Return"}
}

func keys(newKey func(string) Key, chars string) []Key {
	fields := strings.Fields(chars)
	out := make([]Key, 0, len(fields))
	for _, f := range fields {
		out = append(out, newKey(f))
	}
	return out
}

func bottomRow() Row {
	return Row{SwitchInputKey(), SpaceKey(), ReturnKey()}
}

func lowercaseRows() []Row {
	row2 := append(Row{ShiftKey()}, keys(Letter, "z x c v b n m")...)
	row2 = append(row2, BackspaceKey())

	return []Row{
		keys(Letter, "q w e r t y u i o p"),
		keys(Letter, "a s d f g h j k l"),
		row2,
		bottomRow(),
	}
}

func numberRows() []Row {
	row2 := append(Row{ShiftKey()}, keys(Symbol, `. , ? ! '`)...)
	row2 = append(row2, BackspaceKey())

	return []Row{
		keys(Number, "1 2 3 4 5 6 7 8 9 0"),
		keys(Symbol, `- / : ; ( ) $ & @ "`),
		row2,
		bottomRow(),
	}
}

func symbolRows() []Row {
	row2 := append(Row{ShiftKey()}, keys(Symbol, `. , ? ! '`)...)
	row2 = append(row2, BackspaceKey())

	return []Row{
		keys(Symbol, "[ ] { } # % ^ * + ="),
		keys(Symbol, `_ \ | ~ < > € £ ¥ •`),
		row2,
		bottomRow(),
	}
}
