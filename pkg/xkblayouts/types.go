package xkblayouts

import "encoding/xml"

// Registry is the layout list of an xkb rules file such as evdev.xml.
type Registry struct {
	XMLName xml.Name `xml:"xkbConfigRegistry"`
	Layouts []Layout `xml:"layoutList>layout"`
}

// Item is the configItem element shared by layouts and variants.
type Item struct {
	Name             string `xml:"name"`
	ShortDescription string `xml:"shortDescription"`
	Description      string `xml:"description"`
}

type Layout struct {
	Item     Item   `xml:"configItem"`
	Variants []Item `xml:"variantList>variant>configItem"`
}

func (l Layout) variant(name string) (Item, bool) {
	for _, v := range l.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Item{}, false
}
