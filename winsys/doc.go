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

// Package winsys is the interface between the overlay and a window system.
// A window system is reached through an implementation of the Display
// interface. Implementations register themselves by name with Register() and
// are opened with Open().
//
// The x11 and sdlwin sub-packages are the real implementations. The fakewin
// sub-package is a scriptable implementation for testing.
//
// A Display is not safe for concurrent use. The overlay serialises all calls
// to a Display with its own mutex.
package winsys
