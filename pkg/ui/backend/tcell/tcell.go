// Package tcell implements backend.Backend on top of gdamore/tcell.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/mdevan/cadence/pkg/ui/backend"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// Backend drives a real terminal through tcell.
type Backend struct {
	screen tcell.Screen

	// Bracketed paste accumulation between EventPaste start/end markers.
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a backend on the process terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing tcell screen. Used by the sim backend.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnablePaste()
	return nil
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, r rune, style backend.Style) {
	b.screen.SetContent(x, y, r, nil, convertStyle(style))
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) Clear() {
	b.screen.Clear()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

// PollEvent blocks for the next input event, folding bracketed paste into a
// single PasteEvent.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			b.inPaste = false
			text := b.pasteBuffer.String()
			b.pasteBuffer.Reset()
			if text != "" {
				return terminal.PasteEvent{Text: text}
			}
			continue

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
			return convertKeyEvent(e)

		case *tcell.EventResize:
			w, h := e.Size()
			return terminal.ResizeEvent{Width: w, Height: h}
		}
	}
}

// PostEvent injects an event into tcell's queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

func (b *Backend) Suspend() error {
	return b.screen.Suspend()
}

func (b *Backend) Resume() error {
	return b.screen.Resume()
}

func (b *Backend) Sync() {
	b.screen.Sync()
}

func convertStyle(s backend.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(s.FG())).
		Background(convertColor(s.BG()))

	attrs := s.Attrs()
	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// convertKeyEvent normalizes tcell's key encoding. Control chords arrive as
// dedicated key codes (KeyCtrlA..KeyCtrlZ); they are folded into
// KeyRune+Ctrl with the lowercase rune so keymap chords stay uniform.
func convertKeyEvent(e *tcell.EventKey) terminal.KeyEvent {
	ev := terminal.KeyEvent{
		Alt:   e.Modifiers()&tcell.ModAlt != 0,
		Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
		Shift: e.Modifiers()&tcell.ModShift != 0,
	}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		ev.Key = terminal.KeyRune
		ev.Rune = e.Rune()
	case tcell.KeyEnter:
		ev.Key = terminal.KeyEnter
	case tcell.KeyTab:
		ev.Key = terminal.KeyTab
	case tcell.KeyEscape:
		ev.Key = terminal.KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev.Key = terminal.KeyBackspace
	case tcell.KeyUp:
		ev.Key = terminal.KeyUp
	case tcell.KeyDown:
		ev.Key = terminal.KeyDown
	case tcell.KeyLeft:
		ev.Key = terminal.KeyLeft
	case tcell.KeyRight:
		ev.Key = terminal.KeyRight
	case tcell.KeyHome:
		ev.Key = terminal.KeyHome
	case tcell.KeyEnd:
		ev.Key = terminal.KeyEnd
	case tcell.KeyPgUp:
		ev.Key = terminal.KeyPageUp
	case tcell.KeyPgDn:
		ev.Key = terminal.KeyPageDown
	case tcell.KeyDelete:
		ev.Key = terminal.KeyDelete
	case tcell.KeyInsert:
		ev.Key = terminal.KeyInsert
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ev.Key = terminal.KeyRune
			ev.Rune = rune('a' + k - tcell.KeyCtrlA)
			ev.Ctrl = true
		} else {
			ev.Key = terminal.KeyNone
		}
	}
	return ev
}

func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
			if e.Key == terminal.KeyRune && e.Rune >= 'a' && e.Rune <= 'z' {
				return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(e.Rune-'a'), 0, mods)
			}
		}
		return tcell.NewEventKey(reverseConvertKey(e), e.Rune, mods)
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	default:
		return nil
	}
}

func reverseConvertKey(e terminal.KeyEvent) tcell.Key {
	switch e.Key {
	case terminal.KeyRune:
		return tcell.KeyRune
	case terminal.KeyEnter:
		return tcell.KeyEnter
	case terminal.KeyTab:
		return tcell.KeyTab
	case terminal.KeyEscape:
		return tcell.KeyEscape
	case terminal.KeyBackspace:
		return tcell.KeyBackspace2
	case terminal.KeyUp:
		return tcell.KeyUp
	case terminal.KeyDown:
		return tcell.KeyDown
	case terminal.KeyLeft:
		return tcell.KeyLeft
	case terminal.KeyRight:
		return tcell.KeyRight
	case terminal.KeyHome:
		return tcell.KeyHome
	case terminal.KeyEnd:
		return tcell.KeyEnd
	case terminal.KeyPageUp:
		return tcell.KeyPgUp
	case terminal.KeyPageDown:
		return tcell.KeyPgDn
	case terminal.KeyDelete:
		return tcell.KeyDelete
	case terminal.KeyInsert:
		return tcell.KeyInsert
	default:
		return tcell.KeyNUL
	}
}
