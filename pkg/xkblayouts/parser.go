package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

func ParseLayouts(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*Registry, error) {
	registry := &Registry{}
	if err := xml.NewDecoder(r).Decode(registry); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

func (r *Registry) layout(code string) (Layout, bool) {
	for _, l := range r.Layouts {
		if l.Item.Name == code {
			return l, true
		}
	}
	return Layout{}, false
}

// PrettyName returns the human readable name of an xkb layout, e.g.
// "German (no dead keys)" for de/nodeadkeys. Unknown layouts fall back to
// the raw code.
func (r *Registry) PrettyName(code, variant string) string {
	if l, ok := r.layout(code); ok {
		if variant == "" {
			return l.Item.Description
		}
		if v, ok := l.variant(variant); ok {
			return v.Description
		}
	}

	if variant != "" {
		return code + "(" + variant + ")"
	}
	return code
}

// ShortName returns the layout's short description ("en", "de"), or the
// layout code when evdev.xml has none.
func (r *Registry) ShortName(code string) string {
	if l, ok := r.layout(code); ok && l.Item.ShortDescription != "" {
		return l.Item.ShortDescription
	}
	return code
}

// Lookup is the inverse of PrettyName.
func (r *Registry) Lookup(prettyName string) (code string, variant string, ok bool) {
	for _, l := range r.Layouts {
		if l.Item.Description == prettyName {
			return l.Item.Name, "", true
		}
		for _, v := range l.Variants {
			if v.Description == prettyName {
				return l.Item.Name, v.Name, true
			}
		}
	}

	return "", "", false
}
