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

// Package sdlwin implements the winsys.Display interface with SDL. The
// package registers itself with winsys under the name "sdl".
//
// Window handles are SDL window IDs. Only windows created by the same
// process can be tracked, which makes the package most useful for
// development on a desktop without an X server, such as a KMS console.
//
// SDL is initialised by Open() and shut down by Close(). Only one Display
// should be open at any one time.
package sdlwin
