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
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Backend is the set of operations the Overlay requires of a window system.
type Backend interface {
	// SetWindow changes the window being tracked. The zero handle means no
	// window.
	SetWindow(win winsys.Handle)

	// SetRenderRect changes the area of the window the video should be drawn
	// in.
	SetRenderRect(r geometry.Rect)

	// UpdateGeometry recalculates the video geometry and repaints the window.
	// The update might happen after the function returns.
	UpdateGeometry()

	// CreateWindow creates a window owned by the backend.
	CreateWindow() (winsys.Handle, error)

	// DestroyWindow destroys a window created by CreateWindow(). Other
	// windows are not affected.
	DestroyWindow(win winsys.Handle)

	// HandleEvents enables or disables the events for the tracked window.
	HandleEvents(enable bool)

	// Poll processes the pending events for the tracked window. Returns
	// false if polling should stop.
	Poll() bool

	// Close releases all resources.
	Close()
}

// none is the Backend used when there is no window system. It does nothing.
type none struct{}

func (none) SetWindow(_ winsys.Handle)     {}
func (none) SetRenderRect(_ geometry.Rect) {}
func (none) UpdateGeometry()               {}
func (none) DestroyWindow(_ winsys.Handle) {}
func (none) HandleEvents(_ bool)           {}
func (none) Close()                        {}

func (none) CreateWindow() (winsys.Handle, error) {
	return 0, errNoWindowSystem
}

func (none) Poll() bool {
	return false
}
