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

import (
	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
)

// Handle identifies a window. The zero value means no window.
type Handle uint32

// Black is the colour used for the margins around the video area.
const Black colorkey.Key = 0x000000

// Display is a connection to a window system.
type Display interface {
	// Name of the display as used to open it.
	Name() string

	// Attributes returns the position of the window relative to the root
	// window (ie. the screen) and its size. An error means the window no
	// longer exists.
	Attributes(win Handle) (geometry.Rect, error)

	// SelectInput sets which classes of event will be queued for the window.
	// A mask of NoEvent stops events for the window.
	SelectInput(win Handle, mask EventMask) error

	// CheckEvent removes and returns the first queued event for the window
	// that matches the mask. It never blocks. The second return value is
	// false if there is no matching event.
	CheckEvent(win Handle, mask EventMask) (Event, bool)

	// KeyName returns the symbolic name of the key code. The empty string is
	// returned if the key code cannot be resolved.
	KeyName(keycode int) string

	// Fill the rectangles, relative to the window, with the colour.
	Fill(win Handle, c colorkey.Key, rects ...geometry.Rect) error

	// Sync flushes drawing requests and waits for the window system to
	// process them.
	Sync() error

	// CreateWindow creates a new top level window covering the screen. The
	// window is mapped and raised before the function returns.
	CreateWindow() (Handle, error)

	// DestroyWindow destroys a window created with CreateWindow().
	DestroyWindow(win Handle) error

	// Close the connection. The Display must not be used afterwards.
	Close() error
}
