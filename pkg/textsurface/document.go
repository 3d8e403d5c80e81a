package textsurface

import (
	"sync"
	"unicode/utf8"
)

// Document is an in-memory text buffer with a cursor. Positions are counted
// in runes.
type Document struct {
	text   []rune
	cursor int
	lock   sync.Mutex
}

func NewDocument(initial string) *Document {
	text := []rune(initial)
	return &Document{
		text:   text,
		cursor: len(text),
	}
}

func (d *Document) InsertText(text string) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	runes := []rune(text)
	d.text = append(d.text[:d.cursor], append(runes, d.text[d.cursor:]...)...)
	d.cursor += len(runes)
	return nil
}

// DeleteBackward removes the rune before the cursor. It does nothing at the
// start of the document.
func (d *Document) DeleteBackward() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.cursor == 0 {
		return nil
	}
	d.text = append(d.text[:d.cursor-1], d.text[d.cursor:]...)
	d.cursor--
	return nil
}

func (d *Document) Text() string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return string(d.text)
}

func (d *Document) Cursor() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.cursor
}

// SetCursor moves the cursor, clamped to the document bounds.
func (d *Document) SetCursor(pos int) {
	d.lock.Lock()
	defer d.lock.Unlock()

	switch {
	case pos < 0:
		pos = 0
	case pos > len(d.text):
		pos = len(d.text)
	}
	d.cursor = pos
}

func (d *Document) Len() int {
	return utf8.RuneCountInString(d.Text())
}
