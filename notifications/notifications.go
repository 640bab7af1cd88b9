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

package notifications

// Notice describes events that somehow change the presentation of the
// video.
type Notice string

// List of defined notifications.
const (
	// the overlay has a window and is tracking it
	NotifyOverlayTracking Notice = "NotifyOverlayTracking"

	// the overlay has no window or the window backend is unavailable
	NotifyOverlayDisabled Notice = "NotifyOverlayDisabled"

	// the tracked window has gone away and event polling has stopped
	NotifyWindowLost Notice = "NotifyWindowLost"

	// the framebuffer sink has shown its first frame and has unblanked the
	// display
	NotifyFirstFrame Notice = "NotifyFirstFrame"

	// the framebuffer sink output geometry has been reconfigured
	NotifyReconfigured Notice = "NotifyReconfigured"
)

// Notify is used for direct communication between a component and the
// application. The application will implement the Notify interface.
type Notify interface {
	Notify(notice Notice) error
}
