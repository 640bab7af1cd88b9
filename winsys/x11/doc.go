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

// Package x11 implements the winsys.Display interface for the X Window
// System. The package registers itself with winsys under the name "x11" so
// it only needs to be imported for its side effect:
//
//	import _ "github.com/jetsetilly/imxoverlay/winsys/x11"
//
// The X protocol is spoken directly with the xgb package. There is no
// dependency on Xlib.
package x11
