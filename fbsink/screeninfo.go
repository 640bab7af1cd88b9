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

// requests for the framebuffer ioctl. from linux/fb.h
const (
	fbioGetVScreenInfo = 0x4600
	fbioPutVScreenInfo = 0x4601
	fbioGetFScreenInfo = 0x4602
	fbioPanDisplay     = 0x4606
	fbioBlank          = 0x4611
)

// ActivateForce is OR'd with the Activate field of VarScreenInfo to force
// the mode to be set even if it has not changed.
const ActivateForce = 128

// BlankLevel is the argument to the Blank() function of the Device
// interface.
type BlankLevel int

// List of valid BlankLevel values.
const (
	BlankUnblank   BlankLevel = 0
	BlankNormal    BlankLevel = 1
	BlankPowerdown BlankLevel = 4
)

// Bitfield describes the position of a colour component in a pixel.
type Bitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// VarScreenInfo is the variable screen information of a framebuffer. The
// layout is the same as struct fb_var_screeninfo.
type VarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32

	// the i.MX drivers use the grayscale field for the fourcc of the pixel
	// format
	Grayscale uint32

	Red    Bitfield
	Green  Bitfield
	Blue   Bitfield
	Transp Bitfield

	NonStd      uint32
	Activate    uint32
	Height      uint32
	Width       uint32
	AccelFlags  uint32
	PixClock    uint32
	LeftMargin  uint32
	RightMargin uint32
	UpperMargin uint32
	LowerMargin uint32
	HSyncLen    uint32
	VSyncLen    uint32
	Sync        uint32
	VMode       uint32
	Rotate      uint32
	Colorspace  uint32

	// the i.MX drivers take the physical address to pan to in the first
	// reserved word
	Reserved [4]uint32
}

// FixScreenInfo is the fixed screen information of a framebuffer. The
// layout is the same as struct fb_fix_screeninfo.
type FixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Name returns the driver identifier as a string.
func (fix FixScreenInfo) Name() string {
	for i, b := range fix.ID {
		if b == 0 {
			return string(fix.ID[:i])
		}
	}
	return string(fix.ID[:])
}
