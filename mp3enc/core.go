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
)

// Number of memory blocks required by the core.
const NumMemBlocks = 6

// MemType is the kind of memory requested by the core.
type MemType int

// List of valid MemType values.
const (
	FastStatic MemType = iota
	SlowStatic
	FastScratch
	SlowScratch
)

func (t MemType) String() string {
	switch t {
	case FastStatic:
		return "fast static"
	case SlowStatic:
		return "slow static"
	case FastScratch:
		return "fast scratch"
	case SlowScratch:
		return "slow scratch"
	}
	return fmt.Sprintf("memtype(%d)", int(t))
}

// MemBlock is a memory request from the core. The Data field is filled in by
// the Encoder before the core is initialised.
type MemBlock struct {
	Type  MemType
	Size  int
	Align int

	// aligned memory of exactly Size bytes
	Data []byte
}

// RetVal is the result of a core function.
type RetVal int

// List of valid RetVal values.
const (
	Success RetVal = iota
	ErrInitBitrate
	ErrInitSamplingRate
	ErrInitMode
	ErrInitFormat
	ErrInitQuality
	ErrInitQueryMem
)

func (r RetVal) String() string {
	switch r {
	case Success:
		return "success"
	case ErrInitBitrate:
		return "invalid bitrate"
	case ErrInitSamplingRate:
		return "invalid sampling rate"
	case ErrInitMode:
		return "invalid stereo mode"
	case ErrInitFormat:
		return "invalid input format"
	case ErrInitQuality:
		return "invalid quality"
	case ErrInitQueryMem:
		return "memory query failed"
	}
	return fmt.Sprintf("retval(%d)", int(r))
}

// Core is the encoder library.
type Core interface {
	// QueryMem returns the memory blocks required by the core. There should
	// be NumMemBlocks blocks.
	QueryMem() ([]MemBlock, RetVal)

	// Init prepares the core for encoding with the allocated blocks. The
	// size of the output buffer required by EncodeFrame() is returned.
	Init(p Params, blocks []MemBlock) (int, RetVal)

	// EncodeFrame encodes one frame of Params.FrameLen() samples. The
	// number of bytes written to out is returned.
	EncodeFrame(in []int16, out []byte) int

	// Flush writes any remaining encoded data to out. The number of bytes
	// written is returned.
	Flush(out []byte) int

	// Version returns the version string of the library.
	Version() string
}

// Allocator is implemented by cores that need block memory allocated in a
// particular way. Memory from other cores is allocated by the Go runtime.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte)
}
