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

package mp3enc

import (
	"fmt"
	"unsafe"
)

// goAllocator allocates block memory from the Go heap.
type goAllocator struct{}

func (goAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (goAllocator) Free(_ []byte) {
}

// block is the allocation behind a MemBlock. The MemBlock data is a slice of
// the raw memory starting at the first aligned address.
type block struct {
	raw []byte
}

// allocBlock allocates memory for the request and sets the Data field.
func allocBlock(alloc Allocator, blk *MemBlock) (block, error) {
	if blk.Size <= 0 {
		return block{}, fmt.Errorf("%s block has no size", blk.Type)
	}

	align := blk.Align
	if align < 1 {
		align = 1
	}

	raw, err := alloc.Alloc(blk.Size + align - 1)
	if err != nil {
		return block{}, err
	}

	var off int
	if r := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(align)); r != 0 {
		off = align - r
	}

	blk.Data = raw[off : off+blk.Size : off+blk.Size]

	return block{raw: raw}, nil
}

func (b block) free(alloc Allocator) {
	if b.raw != nil {
		alloc.Free(b.raw)
	}
}
