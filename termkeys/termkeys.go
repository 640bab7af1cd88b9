// This file is part of imxoverlay.
//
// imxoverlay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// imxoverlay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with imxoverlay.  If not, see <https://www.gnu.org/licenses/>.

// Package termkeys reads key presses from a terminal in raw mode. It is used
// by the interactive OVERLAY mode to move and resize the tracked window.
package termkeys

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Key identifies the key pressed.
type Key int

// List of valid Key values. KeyRune means the key is the printable character
// in the Rune field of the Event.
const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyTab
	KeyEscape
	KeyInterrupt
	KeyUnknown
)

var keyNames = map[Key]string{
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyDelete:    "Delete",
	KeyBackspace: "BackSpace",
	KeyEnter:     "Return",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyInterrupt: "Interrupt",
}

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
}

// Name returns the name of the key. The names are the same as the X11
// keysym names so that they can be passed on as navigation events.
func (ev Event) Name() string {
	if ev.Key == KeyRune {
		return string(ev.Rune)
	}
	if n, ok := keyNames[ev.Key]; ok {
		return n
	}
	return "unknown"
}

func (ev Event) String() string {
	return ev.Name()
}

// ASCII codes
const (
	esc       = 0x1b
	ctrlC     = 0x03
	tab       = 0x09
	cr        = 0x0d
	lf        = 0x0a
	backspace = 0x7f
)

// Decode the first key press in b. The number of bytes used is returned. A
// result of zero means b does not hold a complete key press.
func Decode(b []byte) (Event, int) {
	if len(b) == 0 {
		return Event{}, 0
	}

	switch b[0] {
	case ctrlC:
		return Event{Key: KeyInterrupt}, 1
	case tab:
		return Event{Key: KeyTab}, 1
	case cr, lf:
		return Event{Key: KeyEnter}, 1
	case backspace:
		return Event{Key: KeyBackspace}, 1
	case esc:
		return decodeEscape(b)
	}

	if b[0] < 0x20 {
		return Event{Key: KeyUnknown}, 1
	}

	// multi-byte characters are not expected from the keys used by the
	// demo but they are consumed whole
	r, n := decodeRune(b)
	if n == 0 {
		return Event{}, 0
	}
	return Event{Key: KeyRune, Rune: r}, n
}

func decodeEscape(b []byte) (Event, int) {
	// a lone escape
	if len(b) == 1 || b[1] != '[' {
		return Event{Key: KeyEscape}, 1
	}
	if len(b) < 3 {
		return Event{}, 0
	}

	switch b[2] {
	case 'A':
		return Event{Key: KeyUp}, 3
	case 'B':
		return Event{Key: KeyDown}, 3
	case 'C':
		return Event{Key: KeyRight}, 3
	case 'D':
		return Event{Key: KeyLeft}, 3
	case 'H':
		return Event{Key: KeyHome}, 3
	case 'F':
		return Event{Key: KeyEnd}, 3
	case '3':
		if len(b) < 4 {
			return Event{}, 0
		}
		if b[3] == '~' {
			return Event{Key: KeyDelete}, 4
		}
	}

	return Event{Key: KeyUnknown}, 3
}

func decodeRune(b []byte) (rune, int) {
	n := 1
	switch {
	case b[0]&0xe0 == 0xc0:
		n = 2
	case b[0]&0xf0 == 0xe0:
		n = 3
	case b[0]&0xf8 == 0xf0:
		n = 4
	}
	if len(b) < n {
		return 0, 0
	}
	return []rune(string(b[:n]))[0], n
}

// Reader reads key presses from a terminal.
type Reader struct {
	input *os.File

	canAttr unix.Termios
	rawAttr unix.Termios

	buf     [16]byte
	pending []byte
}

// Open puts the terminal into raw mode. The terminal is restored with
// Close().
func Open(input *os.File) (*Reader, error) {
	if input == nil {
		return nil, fmt.Errorf("termkeys: no input file")
	}

	r := &Reader{input: input}

	if err := termios.Tcgetattr(r.input.Fd(), &r.canAttr); err != nil {
		return nil, fmt.Errorf("termkeys: %w", err)
	}

	r.rawAttr = r.canAttr
	termios.Cfmakeraw(&r.rawAttr)

	// output processing is left on so that log output is still readable
	r.rawAttr.Oflag |= unix.OPOST

	if err := termios.Tcsetattr(r.input.Fd(), termios.TCSANOW, &r.rawAttr); err != nil {
		return nil, fmt.Errorf("termkeys: %w", err)
	}

	return r, nil
}

// Close restores the terminal to the mode it was in when Open() was called.
func (r *Reader) Close() error {
	if err := termios.Tcsetattr(r.input.Fd(), termios.TCSANOW, &r.canAttr); err != nil {
		return fmt.Errorf("termkeys: %w", err)
	}
	return nil
}

// Read blocks until a key is pressed.
func (r *Reader) Read() (Event, error) {
	for {
		if ev, n := Decode(r.pending); n > 0 {
			r.pending = r.pending[n:]
			return ev, nil
		}

		n, err := r.input.Read(r.buf[:])
		if err != nil {
			return Event{}, fmt.Errorf("termkeys: %w", err)
		}
		r.pending = append(r.pending, r.buf[:n]...)
	}
}
