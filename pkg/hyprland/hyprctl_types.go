package hyprland

import "strings"

type keyboard struct {
	Name              string `json:"name"`
	Layout            string `json:"layout"`
	Variant           string `json:"variant"`
	Options           string `json:"options"`
	ActiveKeymap      string `json:"active_keymap"`
	ActiveLayoutIndex int    `json:"active_layout_index"`
	Main              bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

type Keyboard struct {
	Name              string
	Layouts           []string
	Variants          []string
	ActiveKeymap      string
	ActiveLayoutIndex int
	Main              bool
}

// Layout is an xkb layout code with its optional variant.
type Layout struct {
	Code    string
	Variant string
}

func (k Keyboard) Layout(idx int) Layout {
	l := Layout{Code: k.Layouts[idx]}
	if idx < len(k.Variants) {
		l.Variant = k.Variants[idx]
	}
	return l
}

func (k keyboard) ToKeyboard() Keyboard {
	return Keyboard{
		Name:              k.Name,
		Layouts:           strings.Split(k.Layout, ","),
		Variants:          strings.Split(k.Variant, ","),
		ActiveKeymap:      k.ActiveKeymap,
		ActiveLayoutIndex: k.ActiveLayoutIndex,
		Main:              k.Main,
	}
}
