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

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/logger"
)

// Sentinel patterns for the curated errors returned by this package.
const (
	ParamsError      = "mp3enc: params: %v"
	InitError        = "mp3enc: init: %v"
	EncodeError      = "mp3enc: encode: %v"
	UnavailableError = "mp3enc: hardware encoder not available: %v"
)

// Encoder feeds PCM samples to a Core one frame at a time.
type Encoder struct {
	core   Core
	alloc  Allocator
	params Params

	blocks  []MemBlock
	mem     []block
	outSize int

	// samples waiting for a complete frame
	pending []int16

	frames int
	closed bool
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder(core Core, p Params) (*Encoder, error) {
	if core == nil {
		return nil, curated.Errorf(InitError, "no core")
	}

	if err := p.Validate(); err != nil {
		return nil, curated.Errorf(ParamsError, err)
	}

	enc := &Encoder{
		core:   core,
		params: p,
		alloc:  goAllocator{},
	}

	if a, ok := core.(Allocator); ok {
		enc.alloc = a
	}

	logger.Logf(logger.Allow, "mp3enc", "%s", core.Version())

	var rv RetVal
	enc.blocks, rv = core.QueryMem()
	if rv != Success {
		return nil, curated.Errorf(InitError, rv)
	}
	if len(enc.blocks) != NumMemBlocks {
		return nil, curated.Errorf(InitError, fmt.Sprintf("core requested %d memory blocks", len(enc.blocks)))
	}

	for i := range enc.blocks {
		m, err := allocBlock(enc.alloc, &enc.blocks[i])
		if err != nil {
			enc.freeMem()
			return nil, curated.Errorf(InitError, err)
		}
		enc.mem = append(enc.mem, m)
	}

	enc.outSize, rv = core.Init(p, enc.blocks)
	if rv != Success {
		enc.freeMem()
		return nil, curated.Errorf(InitError, rv)
	}
	if enc.outSize <= 0 || enc.outSize > MaxOutput {
		enc.freeMem()
		return nil, curated.Errorf(InitError, fmt.Sprintf("output buffer size of %d bytes", enc.outSize))
	}

	enc.pending = make([]int16, 0, p.FrameLen())

	logger.Logf(logger.Allow, "mp3enc", "%s (output buffer %d bytes)", p, enc.outSize)

	return enc, nil
}

func (enc *Encoder) freeMem() {
	for _, m := range enc.mem {
		m.free(enc.alloc)
	}
	enc.mem = nil
	for i := range enc.blocks {
		enc.blocks[i].Data = nil
	}
}

// Params returns the encoding parameters.
func (enc *Encoder) Params() Params {
	return enc.params
}

// Version returns the version string of the core.
func (enc *Encoder) Version() string {
	return enc.core.Version()
}

// Frames returns the number of frames encoded.
func (enc *Encoder) Frames() int {
	return enc.frames
}

// Encode the samples. Samples are encoded as soon as there are enough to
// fill a frame and the remainder are kept for the next call. The result is
// the encoded data for every complete frame.
func (enc *Encoder) Encode(samples []int16) ([]byte, error) {
	if enc.closed {
		return nil, curated.Errorf(EncodeError, "encoder is closed")
	}

	var data []byte
	frameLen := enc.params.FrameLen()

	for len(samples) > 0 {
		n := min(frameLen-len(enc.pending), len(samples))
		enc.pending = append(enc.pending, samples[:n]...)
		samples = samples[n:]

		if len(enc.pending) < frameLen {
			break
		}

		out, err := enc.encodeFrame(enc.pending)
		if err != nil {
			return data, err
		}
		data = append(data, out...)
		enc.pending = enc.pending[:0]
	}

	return data, nil
}

func (enc *Encoder) encodeFrame(frame []int16) ([]byte, error) {
	out := make([]byte, enc.outSize)
	n := enc.core.EncodeFrame(frame, out)
	if n < 0 || n > enc.outSize {
		return nil, curated.Errorf(EncodeError, fmt.Sprintf("core produced %d bytes", n))
	}
	enc.frames++
	return out[:n], nil
}

// Close flushes the encoder and frees the memory blocks. Samples that do
// not fill a frame are discarded. The result is the flushed data.
func (enc *Encoder) Close() ([]byte, error) {
	if enc.closed {
		return nil, nil
	}
	enc.closed = true
	defer enc.freeMem()

	if len(enc.pending) > 0 {
		logger.Logf(logger.Allow, "mp3enc", "discarding trailing data (%d samples)", len(enc.pending))
		enc.pending = enc.pending[:0]
	}

	out := make([]byte, enc.outSize)
	n := enc.core.Flush(out)
	if n < 0 || n > enc.outSize {
		return nil, curated.Errorf(EncodeError, fmt.Sprintf("flush produced %d bytes", n))
	}

	logger.Logf(logger.Allow, "mp3enc", "encoded %d frames", enc.frames)

	return out[:n], nil
}
