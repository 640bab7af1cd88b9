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

package overlay

import (
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Poll implements the Backend interface.
//
// Events are processed in three passes. All pending pointer motion is
// reduced to the final position. Button and key events are then forwarded
// in order. Finally, configure and expose events cause the geometry to be
// updated.
func (b *window) Poll() bool {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed || b.win == 0 {
		return false
	}

	if !b.running.Load() {
		return true
	}

	win := b.win

	// the critical section is released while calling the navigator. stop
	// processing if the window has changed in the meantime
	changed := func() bool {
		return b.closed || b.win != win
	}

	var motion *winsys.MotionEvent
	for {
		ev, ok := b.disp.CheckEvent(win, winsys.PointerMotionMask)
		if !ok {
			break // for loop
		}
		if m, ok := ev.(winsys.MotionEvent); ok {
			motion = &m
		}
	}

	if motion != nil && b.nav != nil {
		b.crit.Unlock()
		b.nav.SendMouseEvent(MouseMove, 0, motion.X, motion.Y)
		b.crit.Lock()
		if changed() {
			return !b.closed
		}
	}

	for {
		ev, ok := b.disp.CheckEvent(win, winsys.ButtonMask|winsys.KeyMask)
		if !ok {
			break // for loop
		}

		if b.nav == nil {
			continue // for loop
		}

		switch ev := ev.(type) {
		case winsys.ButtonEvent:
			kind := MouseButtonRelease
			if ev.Press {
				kind = MouseButtonPress
			}
			b.crit.Unlock()
			b.nav.SendMouseEvent(kind, ev.Button, ev.X, ev.Y)
			b.crit.Lock()

		case winsys.KeyEvent:
			kind := KeyRelease
			if ev.Press {
				kind = KeyPress
			}
			key := b.disp.KeyName(ev.Keycode)
			if key == "" {
				key = UnknownKey
			}
			b.crit.Unlock()
			b.nav.SendKeyEvent(kind, key)
			b.crit.Lock()
		}

		if changed() {
			return !b.closed
		}
	}

	// only the last expose event in a series is acted upon
	var exposed bool
	for {
		ev, ok := b.disp.CheckEvent(win, winsys.StructureMask|winsys.ExposureMask)
		if !ok {
			break // for loop
		}

		switch ev := ev.(type) {
		case winsys.ConfigureEvent:
			b.update()
		case winsys.ExposeEvent:
			exposed = ev.Count == 0
		}

		if changed() {
			return !b.closed
		}
	}

	if exposed {
		b.update()
	}

	return true
}
