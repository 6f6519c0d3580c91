package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFixedRight(t *testing.T) {
	left, right := NewRect(0, 0, 80, 24).SplitFixedRight(20)
	assert.Equal(t, Rect{0, 0, 60, 24}, left)
	assert.Equal(t, Rect{60, 0, 20, 24}, right)
}

func TestSplitFixedRightClampsToRect(t *testing.T) {
	left, right := NewRect(0, 0, 10, 5).SplitFixedRight(30)
	assert.Equal(t, 0, left.Width)
	assert.Equal(t, 10, right.Width)
}

func TestSplitHalvesV(t *testing.T) {
	top, bottom := NewRect(0, 0, 80, 25).SplitHalvesV()
	assert.Equal(t, Rect{0, 0, 80, 12}, top)
	assert.Equal(t, Rect{0, 12, 80, 13}, bottom)
}

func TestInsetClampsAtZero(t *testing.T) {
	r := NewRect(0, 0, 4, 4).Inset(3, 3)
	assert.Equal(t, 0, r.Width)
	assert.Equal(t, 0, r.Height)
}

func TestContains(t *testing.T) {
	r := NewRect(2, 2, 4, 4)
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(5, 5))
	assert.False(t, r.Contains(6, 6))
	assert.False(t, r.Contains(1, 3))
}
