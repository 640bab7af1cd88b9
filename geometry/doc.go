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

// Package geometry calculates the rectangles used to place video on a
// display. The functions are pure and safe to call from any goroutine.
//
// Destination() maps a render rectangle, given relative to a window, onto
// the absolute screen position of that window. Margins() returns the areas
// of the window not covered by the video, which are painted black. Center()
// fits a source size inside a destination rectangle while keeping the
// source's aspect ratio.
package geometry
