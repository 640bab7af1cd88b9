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

// ioctl requests for dma-buf and dma-heap devices
const (
	// _IOW('b', 10, unsigned long). an extension found in the i.MX kernels
	dmaBufIoctlPhys = 0x4008620a

	// _IOWR('H', 0, struct dma_heap_allocation_data)
	dmaHeapIoctlAlloc = 0xc0184800
)

// DefaultHeap is the dma-heap used by the DMAHeap allocator if no other heap
// is specified.
const DefaultHeap = "/dev/dma_heap/linux,cma"

// PhysAddr returns the physical address of the memory behind a dma-buf file
// descriptor.
func PhysAddr(fd int) (uintptr, error) {
	var addr uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), dmaBufIoctlPhys, uintptr(unsafe.Pointer(&addr)))
	if errno != 0 {
		return 0, fmt.Errorf("dma-buf %d: physical address: %w", fd, errno)
	}
	return uintptr(addr), nil
}

// Block is a region of physically contiguous memory.
type Block interface {
	// Bytes returns the memory mapped into the process.
	Bytes() []byte

	// PhysAddr returns the physical address of the memory. Zero means the
	// address is not known and should be resolved through Fd().
	PhysAddr() uintptr

	// Fd returns the dma-buf file descriptor for the memory or -1 if there
	// is no file descriptor.
	Fd() int

	// Free the memory. The Block must not be used afterwards.
	Free() error
}

// Allocator allocates physically contiguous memory.
type Allocator interface {
	Allocate(size int) (Block, error)
}

// DMAHeap allocates memory from a Linux dma-heap.
type DMAHeap struct {
	// path to the heap device. empty string means DefaultHeap
	Path string
}

type heapAllocation struct {
	Len       uint64
	Fd        uint32
	FdFlags   uint32
	HeapFlags uint64
}

type dmaBlock struct {
	fd   int
	data []byte
	phys uintptr
}

// Allocate implements the Allocator interface.
func (h DMAHeap) Allocate(size int) (Block, error) {
	path := h.Path
	if path == "" {
		path = DefaultHeap
	}

	heap, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer unix.Close(heap)

	data := heapAllocation{
		Len:     uint64(size),
		FdFlags: unix.O_RDWR | unix.O_CLOEXEC,
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(heap), dmaHeapIoctlAlloc, uintptr(unsafe.Pointer(&data)))
	if errno != 0 {
		return nil, fmt.Errorf("%s: allocate %d bytes: %w", path, size, errno)
	}

	blk := &dmaBlock{fd: int(data.Fd)}

	blk.data, err = unix.Mmap(blk.fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(blk.fd)
		return nil, fmt.Errorf("%s: map: %w", path, err)
	}

	blk.phys, err = PhysAddr(blk.fd)
	if err != nil {
		_ = blk.Free()
		return nil, err
	}

	return blk, nil
}

func (blk *dmaBlock) Bytes() []byte {
	return blk.data
}

func (blk *dmaBlock) PhysAddr() uintptr {
	return blk.phys
}

func (blk *dmaBlock) Fd() int {
	return blk.fd
}

func (blk *dmaBlock) Free() error {
	var err error
	if blk.data != nil {
		err = unix.Munmap(blk.data)
		blk.data = nil
	}
	if blk.fd >= 0 {
		if e := unix.Close(blk.fd); err == nil {
			err = e
		}
		blk.fd = -1
	}
	return err
}
