// Package keymap loads the key-binding configuration: a mapping from key
// chords to actions. The map is built once before the event loop starts and
// is never mutated afterwards, so it is safe to share without locking.
package keymap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mdevan/cadence/pkg/action"
	"github.com/mdevan/cadence/pkg/ui/terminal"
)

// chordKey is the normalized lookup key. Shift is folded into the rune for
// character keys, so it is not part of the identity.
type chordKey struct {
	key  terminal.Key
	r    rune
	alt  bool
	ctrl bool
}

// Keymap is an immutable chord-to-action table.
type Keymap struct {
	bindings map[chordKey]action.Action
}

// Binding pairs a chord's display form with the action it triggers. Used by
// the help overlay.
type Binding struct {
	Chord  string
	Action action.Action
}

// file is the on-disk YAML shape:
//
//	keys:
//	  "j": increment_single
//	  "ctrl+c": quit
type file struct {
	Keys map[string]string `yaml:"keys"`
}

// Default returns the built-in bindings used when no config file exists.
func Default() *Keymap {
	km, err := build(map[string]string{
		"j":      "increment_single",
		"k":      "decrement_single",
		"J":      "schedule_increment",
		"K":      "schedule_decrement",
		"/":      "enter_insert",
		"?":      "toggle_show_help",
		"q":      "quit",
		"ctrl+c": "quit",
		"ctrl+d": "quit",
		"ctrl+z": "suspend",
	})
	if err != nil {
		panic(fmt.Sprintf("default keymap invalid: %v", err))
	}
	return km
}

// Load reads bindings from a YAML file. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read keymap: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	if len(f.Keys) == 0 {
		return Default(), nil
	}
	return build(f.Keys)
}

func build(raw map[string]string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[chordKey]action.Action, len(raw))}
	for chord, name := range raw {
		ev, err := ParseChord(chord)
		if err != nil {
			return nil, err
		}
		a, err := action.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("chord %q: %w", chord, err)
		}
		km.bindings[normalize(ev)] = a
	}
	return km, nil
}

// Lookup resolves a key event to its bound action.
func (k *Keymap) Lookup(ev terminal.KeyEvent) (action.Action, bool) {
	a, ok := k.bindings[normalize(ev)]
	return a, ok
}

// Bindings returns every binding sorted by chord, for display.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for ck, a := range k.bindings {
		out = append(out, Binding{Chord: denormalize(ck).String(), Action: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chord < out[j].Chord })
	return out
}

func normalize(ev terminal.KeyEvent) chordKey {
	return chordKey{key: ev.Key, r: ev.Rune, alt: ev.Alt, ctrl: ev.Ctrl}
}

func denormalize(ck chordKey) terminal.KeyEvent {
	return terminal.KeyEvent{Key: ck.key, Rune: ck.r, Alt: ck.alt, Ctrl: ck.ctrl}
}

var namedKeys = map[string]terminal.Key{
	"enter":     terminal.KeyEnter,
	"backspace": terminal.KeyBackspace,
	"tab":       terminal.KeyTab,
	"esc":       terminal.KeyEscape,
	"escape":    terminal.KeyEscape,
	"up":        terminal.KeyUp,
	"down":      terminal.KeyDown,
	"left":      terminal.KeyLeft,
	"right":     terminal.KeyRight,
	"home":      terminal.KeyHome,
	"end":       terminal.KeyEnd,
	"pgup":      terminal.KeyPageUp,
	"pgdn":      terminal.KeyPageDown,
	"delete":    terminal.KeyDelete,
	"insert":    terminal.KeyInsert,
}

// ParseChord parses a chord string like "j", "ctrl+c", "alt+enter" or
// "space" into a key event.
func ParseChord(chord string) (terminal.KeyEvent, error) {
	var ev terminal.KeyEvent
	parts := strings.Split(chord, "+")
	for len(parts) > 1 {
		switch strings.ToLower(parts[0]) {
		case "ctrl":
			ev.Ctrl = true
		case "alt":
			ev.Alt = true
		default:
			return ev, fmt.Errorf("unknown modifier %q in chord %q", parts[0], chord)
		}
		parts = parts[1:]
	}

	base := parts[0]
	if base == "" {
		return ev, fmt.Errorf("empty chord %q", chord)
	}
	if key, ok := namedKeys[strings.ToLower(base)]; ok {
		ev.Key = key
		return ev, nil
	}
	if base == "space" {
		ev.Key = terminal.KeyRune
		ev.Rune = ' '
		return ev, nil
	}
	runes := []rune(base)
	if len(runes) != 1 {
		return ev, fmt.Errorf("unknown key %q in chord %q", base, chord)
	}
	ev.Key = terminal.KeyRune
	ev.Rune = runes[0]
	return ev, nil
}
