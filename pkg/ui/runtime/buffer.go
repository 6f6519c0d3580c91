package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/mdevan/cadence/pkg/ui/backend"
)

// Cell is one character cell. A zero Rune marks the shadow cell behind a
// wide rune; shadow cells are skipped when flushing.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is a 2D cell grid components draw into. Changed cells are tracked
// so flushing only touches what moved since the last frame.
type Buffer struct {
	cells  []Cell
	dirty  []bool
	count  int // dirty cell count
	width  int
	height int
}

// NewBuffer creates a cleared buffer.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	b.Clear()
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize discards the buffer content and adopts the new dimensions. The
// whole buffer is marked dirty since every cell must repaint.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.Clear()
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces in the default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at (x, y), or a space when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell, marking it dirty if it changed.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	c := Cell{Rune: r, Style: s}
	if b.cells[idx] != c {
		b.cells[idx] = c
		if !b.dirty[idx] {
			b.dirty[idx] = true
			b.count++
		}
	}
}

// SetString writes a string starting at (x, y), clipping to the row. Wide
// runes occupy two cells; the trailing cell becomes a shadow cell.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) {
	if y < 0 || y >= b.height {
		return
	}
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > b.width {
			break
		}
		if col >= 0 {
			b.Set(col, y, r, style)
			if w == 2 {
				b.Set(col+1, y, 0, style)
			}
		}
		col += w
	}
}

// Fill fills a rect with a rune and style, clipped to the buffer.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// DrawBox draws a border around a rect with rounded corners.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	b.Set(r.X, r.Y, '╭', s)
	b.Set(r.X+r.Width-1, r.Y, '╮', s)
	b.Set(r.X, r.Y+r.Height-1, '╰', s)
	b.Set(r.X+r.Width-1, r.Y+r.Height-1, '╯', s)
	for x := r.X + 1; x < r.X+r.Width-1; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, r.Y+r.Height-1, '─', s)
	}
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(r.X+r.Width-1, y, '│', s)
	}
}

// MarkAllDirty forces a full repaint on the next flush.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.count = len(b.dirty)
}

// IsDirty reports whether any cell changed since the last flush.
func (b *Buffer) IsDirty() bool {
	return b.count > 0
}

// CellWriter is the subset of the backend Flush needs.
type CellWriter interface {
	SetContent(x, y int, r rune, style backend.Style)
}

// Flush writes dirty cells to the target and resets the dirty set. The
// caller is responsible for calling Show on the backend afterwards.
func (b *Buffer) Flush(be CellWriter) {
	if b.count == 0 {
		return
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if !b.dirty[idx] {
				continue
			}
			if c := b.cells[idx]; c.Rune != 0 {
				be.SetContent(x, y, c.Rune, c.Style)
			}
		}
	}
	clear(b.dirty)
	b.count = 0
}
