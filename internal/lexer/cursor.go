package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в сканируемом тексте заголовка.
type Cursor struct {
	Text []byte
	Off  uint32
}

// NewCursor creates a new cursor over text.
func NewCursor(text []byte) Cursor {
	if _, err := safecast.Conv[uint32](len(text)); err != nil {
		panic(fmt.Errorf("header text overflow: %w", err))
	}
	return Cursor{Text: text, Off: 0}
}

// EOF проверяет, достигнут ли конец текста.
func (c *Cursor) EOF() bool {
	return c.Off >= uint32(len(c.Text))
}

// Peek читает текущий байт, если есть, иначе возвращает 0.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// PeekAt читает байт со смещением n от текущего, иначе 0.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= uint32(len(c.Text)) {
		return 0
	}
	return c.Text[c.Off+n]
}

// Bump сдвигает позицию на один байт.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.Off++
	}
}
