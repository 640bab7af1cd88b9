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
	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Owner is the component that the Overlay is working for.
type Owner interface {
	Name() string
}

// Navigator is implemented by owners that want to receive input events from
// the window.
//
// The kind argument to SendMouseEvent() is one of "mouse-move",
// "mouse-button-press" or "mouse-button-release". The kind argument to
// SendKeyEvent() is one of "key-press" or "key-release".
type Navigator interface {
	SendMouseEvent(kind string, button int, x, y int)
	SendKeyEvent(kind string, key string)
}

// List of navigation event kinds.
const (
	MouseMove          = "mouse-move"
	MouseButtonPress   = "mouse-button-press"
	MouseButtonRelease = "mouse-button-release"
	KeyPress           = "key-press"
	KeyRelease         = "key-release"
)

// UnknownKey is sent to SendKeyEvent() when the key name cannot be resolved.
const UnknownKey = "unknown"

// WindowProvider is implemented by owners that can supply a window when one
// is required and none has been set. The zero handle means no window is
// available.
type WindowProvider interface {
	PrepareWindow() winsys.Handle
}

// Hooks are the functions called by the Overlay to inform the owner of
// changes. Any of the hooks can be nil.
type Hooks struct {
	// Geometry is called with the absolute screen rectangle of the video. The
	// return value is ignored by the Overlay.
	Geometry func(owner Owner, r geometry.Rect) bool

	// ColorKey is called when colour keying should be enabled or disabled.
	ColorKey func(owner Owner, enabled bool, key colorkey.Key)

	// Alpha is called when the global alpha of the video layer should change.
	Alpha func(owner Owner, alpha uint8)
}
