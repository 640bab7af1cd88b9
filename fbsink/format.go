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

// Format is a pixel format identified by its fourcc.
type Format uint32

// FourCC returns the Format for the four character code.
func FourCC(code string) Format {
	var f Format
	for i := 0; i < 4 && i < len(code); i++ {
		f |= Format(code[i]) << (8 * i)
	}
	return f
}

// List of formats accepted by the sink.
var (
	FormatBGRA = FourCC("BGRA")
	FormatNV12 = FourCC("NV12")
	FormatYVYU = FourCC("YVYU")
	FormatUYVY = FourCC("UYVY")
	FormatVYUY = FourCC("VYUY")
)

// Formats is the list of formats in order of preference.
var Formats = []Format{FormatBGRA, FormatNV12, FormatYVYU, FormatUYVY, FormatVYUY}

func (f Format) String() string {
	b := []byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	return strings.TrimRight(string(b), "\x00 ")
}

// ParseFormat returns the Format with the name. The name is not case
// sensitive.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(f.String(), name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported format %q", name)
}

// planar returns true if the format has more than one plane.
func (f Format) planar() bool {
	return f == FormatNV12
}

// bytesPerPixel of the first plane.
func (f Format) bytesPerPixel() int {
	switch f {
	case FormatBGRA:
		return 4
	case FormatNV12:
		return 1
	}
	return 2
}

// VideoInfo describes the frames that will be passed to the sink.
type VideoInfo struct {
	Format Format
	Width  int
	Height int

	// bytes per line of the first plane. zero means the minimum for the
	// width and format
	Stride int
}

func (info VideoInfo) String() string {
	return fmt.Sprintf("%s %dx%d", info.Format, info.Width, info.Height)
}

// Valid returns true if the format is supported and the frame has an area.
func (info VideoInfo) Valid() bool {
	if info.Width <= 0 || info.Height <= 0 {
		return false
	}
	for _, f := range Formats {
		if f == info.Format {
			return true
		}
	}
	return false
}

// LineSize returns the number of bytes in a line of the first plane.
func (info VideoInfo) LineSize() int {
	if info.Stride > 0 {
		return info.Stride
	}
	return info.Width * info.Format.bytesPerPixel()
}

// Size returns the number of bytes required for one frame.
func (info VideoInfo) Size() int {
	sz := info.LineSize() * info.Height
	if info.Format.planar() {
		// interleaved chroma plane at half the vertical resolution
		sz += info.LineSize() * ((info.Height + 1) / 2)
	}
	return sz
}
