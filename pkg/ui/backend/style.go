package backend

// Color is a terminal color. Values 0-255 address the palette; RGB colors
// set a marker bit above the palette range.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
	ColorGray    Color = 8
)

const rgbMarker Color = 0x01000000

// ColorRGB creates a true color from components.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16|int32(g)<<8|int32(b)) | rgbMarker
}

// IsRGB reports whether this is a true color rather than a palette entry.
func (c Color) IsRGB() bool {
	return c > 0 && c&rgbMarker != 0
}

// RGB returns the components of a true color, or zeros for palette colors.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

// AttrMask is a bitmask of text attributes.
type AttrMask uint32

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style combines foreground, background and attributes for one cell.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle is the terminal's default colors with no attributes.
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// Bold enables bold.
func (s Style) Bold() Style {
	s.attrs |= AttrBold
	return s
}

// Dim enables dim.
func (s Style) Dim() Style {
	s.attrs |= AttrDim
	return s
}

// Italic enables italic.
func (s Style) Italic() Style {
	s.attrs |= AttrItalic
	return s
}

// Underline enables underline.
func (s Style) Underline() Style {
	s.attrs |= AttrUnderline
	return s
}

// Reverse enables reverse video.
func (s Style) Reverse() Style {
	s.attrs |= AttrReverse
	return s
}

// FG returns the foreground color.
func (s Style) FG() Color { return s.fg }

// BG returns the background color.
func (s Style) BG() Color { return s.bg }

// Attrs returns the attribute mask.
func (s Style) Attrs() AttrMask { return s.attrs }
