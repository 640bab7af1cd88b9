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
	"github.com/jetsetilly/imxoverlay/geometry"
)

// Buffer is a single video frame.
type Buffer interface {
	// PhysAddr returns the physical address of the frame. Zero means the
	// frame is not known to be physically contiguous.
	PhysAddr() uintptr

	// DMAFd returns the dma-buf file descriptor of the frame. The second
	// return value is false if the frame is not backed by a dma-buf.
	DMAFd() (int, bool)

	// Crop returns the area of the frame that is to be shown. The second
	// return value is false if the whole frame is to be shown.
	Crop() (geometry.Rect, bool)

	// Meta returns the description of the frame.
	Meta() VideoInfo

	// Bytes returns the pixel data.
	Bytes() []byte
}

// Frame is a Buffer in ordinary memory. It can be shown only by copying it
// into a buffer from the Pool.
type Frame struct {
	Info    VideoInfo
	Data    []byte
	Cropped geometry.Rect
}

// PhysAddr implements the Buffer interface.
func (f *Frame) PhysAddr() uintptr {
	return 0
}

// DMAFd implements the Buffer interface.
func (f *Frame) DMAFd() (int, bool) {
	return -1, false
}

// Crop implements the Buffer interface.
func (f *Frame) Crop() (geometry.Rect, bool) {
	return f.Cropped, f.Cropped.Valid()
}

// Meta implements the Buffer interface.
func (f *Frame) Meta() VideoInfo {
	return f.Info
}

// Bytes implements the Buffer interface.
func (f *Frame) Bytes() []byte {
	return f.Data
}

// copyFrame copies the pixel data of src into dst. The line sizes of the two
// frames can differ.
func copyFrame(dst []byte, dstInfo VideoInfo, src []byte, srcInfo VideoInfo) {
	dl := dstInfo.LineSize()
	sl := srcInfo.LineSize()

	if dl == sl {
		copy(dst, src)
		return
	}

	n := dl
	if sl < n {
		n = sl
	}

	lines := srcInfo.Size() / sl
	for l := 0; l < lines; l++ {
		so := l * sl
		do := l * dl
		if so+n > len(src) || do+n > len(dst) {
			return
		}
		copy(dst[do:do+n], src[so:so+n])
	}
}
