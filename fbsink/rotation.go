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

package fbsink

import (
	"fmt"
	"strings"
)

// Rotation is the video direction. The names are the same as those used by
// GStreamer's video-direction property.
type Rotation int

// List of valid Rotation values.
const (
	RotateIdentity Rotation = iota
	Rotate90R
	Rotate180
	Rotate90L
	FlipHorizontal
	FlipVertical
	FlipUpperLeftLowerRight
	FlipUpperRightLowerLeft
)

var rotationNames = []string{
	"identity",
	"90r",
	"180",
	"90l",
	"horiz",
	"vert",
	"ul-lr",
	"ur-ll",
}

func (r Rotation) String() string {
	if r < 0 || int(r) >= len(rotationNames) {
		return fmt.Sprintf("rotation(%d)", int(r))
	}
	return rotationNames[r]
}

// ParseRotation returns the Rotation with the name.
func ParseRotation(name string) (Rotation, error) {
	for i, n := range rotationNames {
		if strings.EqualFold(n, name) {
			return Rotation(i), nil
		}
	}
	return RotateIdentity, fmt.Errorf("unknown rotation %q", name)
}

// swapsAxes returns true if the rotation exchanges the width and height of
// the video.
func (r Rotation) swapsAxes() bool {
	return r == Rotate90R || r == Rotate90L
}
