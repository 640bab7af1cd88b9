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
	"unsafe"

	"golang.org/x/sys/unix"
)

// Device is a framebuffer device. The functions correspond to the
// framebuffer ioctl requests of the same name.
type Device interface {
	GetVarScreenInfo(v *VarScreenInfo) error
	PutVarScreenInfo(v *VarScreenInfo) error
	GetFixScreenInfo(f *FixScreenInfo) error
	PanDisplay(v *VarScreenInfo) error
	Blank(level BlankLevel) error
	Close() error
}

// fbdev implements the Device interface for a framebuffer device node.
type fbdev struct {
	path string
	fd   int
}

// OpenDevice opens the framebuffer device node at path.
func OpenDevice(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fbdev{path: path, fd: fd}, nil
}

func (dev *fbdev) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(dev.fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// GetVarScreenInfo implements the Device interface.
func (dev *fbdev) GetVarScreenInfo(v *VarScreenInfo) error {
	if err := dev.ioctl(fbioGetVScreenInfo, unsafe.Pointer(v)); err != nil {
		return fmt.Errorf("%s: get var screen info: %w", dev.path, err)
	}
	return nil
}

// PutVarScreenInfo implements the Device interface.
func (dev *fbdev) PutVarScreenInfo(v *VarScreenInfo) error {
	if err := dev.ioctl(fbioPutVScreenInfo, unsafe.Pointer(v)); err != nil {
		return fmt.Errorf("%s: put var screen info: %w", dev.path, err)
	}
	return nil
}

// GetFixScreenInfo implements the Device interface.
func (dev *fbdev) GetFixScreenInfo(f *FixScreenInfo) error {
	if err := dev.ioctl(fbioGetFScreenInfo, unsafe.Pointer(f)); err != nil {
		return fmt.Errorf("%s: get fix screen info: %w", dev.path, err)
	}
	return nil
}

// PanDisplay implements the Device interface.
func (dev *fbdev) PanDisplay(v *VarScreenInfo) error {
	if err := dev.ioctl(fbioPanDisplay, unsafe.Pointer(v)); err != nil {
		return fmt.Errorf("%s: pan display: %w", dev.path, err)
	}
	return nil
}

// Blank implements the Device interface.
func (dev *fbdev) Blank(level BlankLevel) error {
	if err := unix.IoctlSetInt(dev.fd, fbioBlank, int(level)); err != nil {
		return fmt.Errorf("%s: blank: %w", dev.path, err)
	}
	return nil
}

// Close implements the Device interface.
func (dev *fbdev) Close() error {
	if err := unix.Close(dev.fd); err != nil {
		return fmt.Errorf("%s: %w", dev.path, err)
	}
	return nil
}
