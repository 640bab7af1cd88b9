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

package geometry

import "fmt"

// Rect is a rectangle with an origin and a size. The meaning of the origin
// depends on context, it can be absolute screen coordinates or relative to a
// window.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Unset returns true if either dimension of the rectangle is zero. An unset
// render rectangle means the video should fill the entire window.
func (r Rect) Unset() bool {
	return r.W == 0 || r.H == 0
}

// Valid returns true if the rectangle has a positive area.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Translate returns the rectangle moved by x and y.
func (r Rect) Translate(x, y int) Rect {
	r.X += x
	r.Y += y
	return r
}

// VideoArea returns the area of a window of the given size that the video
// should be drawn in. The result is relative to the window. It may be
// invalid, in which case nothing should be drawn.
//
// A dimension of the render rectangle is used only if it is positive and
// fits inside the window. Otherwise the video extends from the render
// rectangle origin to the edge of the window.
func VideoArea(width, height int, render Rect) Rect {
	v := Rect{X: render.X, Y: render.Y}

	if render.W > 0 && render.X+render.W < width {
		v.W = render.W
	} else {
		v.W = width - render.X
	}

	if render.H > 0 && render.Y+render.H < height {
		v.H = render.H
	} else {
		v.H = height - render.Y
	}

	return v
}

// Destination returns the absolute screen rectangle for the video. The
// window argument is the absolute position and size of the window. The
// second return value is false if the result has no area.
func Destination(window Rect, render Rect) (Rect, bool) {
	v := VideoArea(window.W, window.H, render).Translate(window.X, window.Y)
	return v, v.Valid()
}

// Margins returns the areas of a window that are not covered by the video.
// The video rectangle is relative to the window. Margins of zero size are
// not included. In order, the margins are top, left, right and bottom.
//
// The margins can overlap the video area when the render rectangle is not
// contained by the window. The video area should always be painted after the
// margins.
func Margins(width, height int, video Rect) []Rect {
	m := make([]Rect, 0, 4)

	if video.Y > 0 {
		m = append(m, Rect{X: 0, Y: 0, W: width, H: video.Y})
	}

	if video.X > 0 {
		m = append(m, Rect{X: 0, Y: video.Y, W: video.X, H: height - video.Y})
	}

	if rw := width - video.X - video.W; rw > 0 {
		m = append(m, Rect{X: video.X + video.W, Y: video.Y, W: rw, H: video.H})
	}

	if rh := height - video.Y - video.H; rh > 0 {
		m = append(m, Rect{X: video.X, Y: video.Y + video.H, W: width - video.X, H: rh})
	}

	return m
}

// Center fits a source of size srcW by srcH inside the destination
// rectangle. The result keeps the aspect ratio of the source and is centered
// in the destination on the axis that is not filled.
func Center(srcW, srcH int, dst Rect) Rect {
	if srcW <= 0 || srcH <= 0 || !dst.Valid() {
		return dst
	}

	// compare aspect ratios by cross multiplication
	a := srcW * dst.H
	b := dst.W * srcH

	switch {
	case a > b:
		h := dst.W * srcH / srcW
		return Rect{X: dst.X, Y: dst.Y + (dst.H-h)/2, W: dst.W, H: h}
	case a < b:
		w := dst.H * srcW / srcH
		return Rect{X: dst.X + (dst.W-w)/2, Y: dst.Y, W: w, H: dst.H}
	}

	return dst
}

// Align returns the amount to add to value to make it a multiple of n.
func Align(value, n int) int {
	if n <= 0 {
		return 0
	}
	if r := value % n; r != 0 {
		return n - r
	}
	return 0
}
