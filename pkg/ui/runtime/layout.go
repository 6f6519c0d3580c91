// Package runtime is the event-loop core: the action-dispatch driver, the
// component contract UI units implement, and the cell buffer they draw into.
package runtime

// Rect is a positioned rectangle in screen cells.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks the rect by the given margins, clamping at zero size.
func (r Rect) Inset(horizontal, vertical int) Rect {
	return Rect{
		X:      r.X + horizontal,
		Y:      r.Y + vertical,
		Width:  max(0, r.Width-2*horizontal),
		Height: max(0, r.Height-2*vertical),
	}
}

// SplitFixedRight divides the rect horizontally into a flexible left region
// and a fixed-width right region. The right region never exceeds the rect.
func (r Rect) SplitFixedRight(width int) (left, right Rect) {
	width = min(width, r.Width)
	left = Rect{X: r.X, Y: r.Y, Width: r.Width - width, Height: r.Height}
	right = Rect{X: r.X + r.Width - width, Y: r.Y, Width: width, Height: r.Height}
	return left, right
}

// SplitHalvesV divides the rect into two vertical halves; the bottom half
// takes the odd row.
func (r Rect) SplitHalvesV() (top, bottom Rect) {
	half := r.Height / 2
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: half}
	bottom = Rect{X: r.X, Y: r.Y + half, Width: r.Width, Height: r.Height - half}
	return top, bottom
}
