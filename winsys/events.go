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

package winsys

// EventMask selects classes of event.
type EventMask uint32

// List of event classes.
const (
	NoEvent           EventMask = 0
	StructureMask     EventMask = 1 << 0
	ExposureMask      EventMask = 1 << 1
	PointerMotionMask EventMask = 1 << 2
	ButtonMask        EventMask = 1 << 3
	KeyMask           EventMask = 1 << 4
)

// NavigationMask is the set of input events forwarded to a navigation
// capable owner.
const NavigationMask = PointerMotionMask | ButtonMask | KeyMask

// Event is implemented by all event types.
type Event interface {
	Target() Handle
	Mask() EventMask
}

// MotionEvent is sent when the pointer moves in the window.
type MotionEvent struct {
	Window Handle
	X, Y   int
}

// Target implements the Event interface.
func (ev MotionEvent) Target() Handle { return ev.Window }

// Mask implements the Event interface.
func (ev MotionEvent) Mask() EventMask { return PointerMotionMask }

// ButtonEvent is sent when a pointer button is pressed or released.
type ButtonEvent struct {
	Window Handle
	Press  bool
	Button int
	X, Y   int
}

// Target implements the Event interface.
func (ev ButtonEvent) Target() Handle { return ev.Window }

// Mask implements the Event interface.
func (ev ButtonEvent) Mask() EventMask { return ButtonMask }

// KeyEvent is sent when a key is pressed or released.
type KeyEvent struct {
	Window  Handle
	Press   bool
	Keycode int
}

// Target implements the Event interface.
func (ev KeyEvent) Target() Handle { return ev.Window }

// Mask implements the Event interface.
func (ev KeyEvent) Mask() EventMask { return KeyMask }

// ConfigureEvent is sent when the window is moved or resized.
type ConfigureEvent struct {
	Window        Handle
	X, Y          int
	Width, Height int
}

// Target implements the Event interface.
func (ev ConfigureEvent) Target() Handle { return ev.Window }

// Mask implements the Event interface.
func (ev ConfigureEvent) Mask() EventMask { return StructureMask }

// ExposeEvent is sent when part of the window needs to be redrawn. Count is
// the number of expose events that follow. An event with a Count of zero is
// the last in a series.
type ExposeEvent struct {
	Window Handle
	Count  int
}

// Target implements the Event interface.
func (ev ExposeEvent) Target() Handle { return ev.Window }

// Mask implements the Event interface.
func (ev ExposeEvent) Mask() EventMask { return ExposureMask }
