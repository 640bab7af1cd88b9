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
	"testing"
	"unsafe"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/test"
)

// fakeCore records the frames it is given. Each encoded frame is a single
// byte holding the frame number followed by the first sample of the frame.
type fakeCore struct {
	blocks  []MemBlock
	initRet RetVal
	outSize int

	params Params
	frames [][]int16
	flushed bool
}

func newFakeCore() *fakeCore {
	c := &fakeCore{outSize: MaxOutput}
	for i := 0; i < NumMemBlocks; i++ {
		c.blocks = append(c.blocks, MemBlock{
			Type:  MemType(i % 4),
			Size:  100 + i,
			Align: 1 << i,
		})
	}
	return c
}

func (c *fakeCore) QueryMem() ([]MemBlock, RetVal) {
	b := make([]MemBlock, len(c.blocks))
	copy(b, c.blocks)
	return b, Success
}

func (c *fakeCore) Init(p Params, blocks []MemBlock) (int, RetVal) {
	c.params = p
	c.blocks = blocks
	return c.outSize, c.initRet
}

func (c *fakeCore) EncodeFrame(in []int16, out []byte) int {
	f := make([]int16, len(in))
	copy(f, in)
	c.frames = append(c.frames, f)
	out[0] = byte(len(c.frames))
	out[1] = byte(in[0])
	return 2
}

func (c *fakeCore) Flush(out []byte) int {
	c.flushed = true
	out[0] = 0xff
	return 1
}

func (c *fakeCore) Version() string {
	return "fake core"
}

var stereo = Params{SampleRate: 44100, Bitrate: 128, Channels: 2, Quality: HighQuality}

func TestValidate(t *testing.T) {
	test.ExpectSuccess(t, stereo.Validate())

	p := stereo
	p.SampleRate = 22050
	test.ExpectFailure(t, p.Validate())

	p = stereo
	p.Bitrate = 100
	test.ExpectFailure(t, p.Validate())

	p = stereo
	p.Channels = 6
	test.ExpectFailure(t, p.Validate())

	p = stereo
	p.Quality = 2
	test.ExpectFailure(t, p.Validate())

	p = stereo
	p.Layout = 3
	test.ExpectFailure(t, p.Validate())
}

func TestMode(t *testing.T) {
	test.ExpectEquality(t, stereo.Mode(), uint32(0x10000))

	p := stereo
	p.Channels = 1
	p.Quality = LowQuality
	p.Layout = NonInterleaved
	test.ExpectEquality(t, p.Mode(), uint32(0x00101))
}

func TestNewEncoder(t *testing.T) {
	_, err := NewEncoder(nil, stereo)
	test.ExpectSuccess(t, curated.Is(err, InitError))

	p := stereo
	p.SampleRate = 8000
	_, err = NewEncoder(newFakeCore(), p)
	test.ExpectSuccess(t, curated.Is(err, ParamsError))

	core := newFakeCore()
	core.initRet = ErrInitBitrate
	_, err = NewEncoder(core, stereo)
	test.ExpectSuccess(t, curated.Is(err, InitError))

	core = newFakeCore()
	core.outSize = MaxOutput + 1
	_, err = NewEncoder(core, stereo)
	test.ExpectSuccess(t, curated.Is(err, InitError))

	core = newFakeCore()
	enc, err := NewEncoder(core, stereo)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, core.params, stereo)
	test.ExpectEquality(t, enc.Version(), "fake core")

	// every block has been allocated to the requested size and alignment
	test.DemandEquality(t, len(core.blocks), NumMemBlocks)
	for i, b := range core.blocks {
		test.ExpectEquality(t, len(b.Data), b.Size, i)
		test.ExpectEquality(t, uintptr(unsafe.Pointer(&b.Data[0]))%uintptr(b.Align), uintptr(0), i)
	}
}

func TestEncode(t *testing.T) {
	core := newFakeCore()
	enc, err := NewEncoder(core, stereo)
	test.DemandSuccess(t, err)

	frameLen := stereo.FrameLen()
	test.ExpectEquality(t, frameLen, 2304)

	samples := make([]int16, frameLen*2+100)
	for i := range samples {
		samples[i] = int16(i / frameLen)
	}

	// less than a frame produces nothing
	out, err := enc.Encode(samples[:1000])
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(out), 0)
	test.ExpectEquality(t, len(core.frames), 0)

	// the remainder completes two frames
	out, err = enc.Encode(samples[1000:])
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(out), 4)
	test.ExpectEquality(t, out[0], byte(1))
	test.ExpectEquality(t, out[1], byte(0))
	test.ExpectEquality(t, out[2], byte(2))
	test.ExpectEquality(t, out[3], byte(1))

	test.DemandEquality(t, len(core.frames), 2)
	for _, f := range core.frames {
		test.ExpectEquality(t, len(f), frameLen)
	}
	test.ExpectEquality(t, core.frames[0][1500], int16(0))
	test.ExpectEquality(t, core.frames[1][0], int16(1))
	test.ExpectEquality(t, enc.Frames(), 2)

	// trailing samples are discarded and the core is flushed
	out, err = enc.Close()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(out), 1)
	test.ExpectEquality(t, out[0], byte(0xff))
	test.ExpectSuccess(t, core.flushed)
	test.ExpectEquality(t, len(core.frames), 2)

	_, err = enc.Encode(samples)
	test.ExpectSuccess(t, curated.Is(err, EncodeError))

	// closing twice does nothing
	out, err = enc.Close()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(out), 0)
}

func TestMono(t *testing.T) {
	core := newFakeCore()
	p := stereo
	p.Channels = 1
	enc, err := NewEncoder(core, p)
	test.DemandSuccess(t, err)

	out, err := enc.Encode(make([]int16, FrameSamples))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(out), 2)
	test.ExpectEquality(t, len(core.frames[0]), FrameSamples)
}

type badCore struct {
	fakeCore
}

func (c *badCore) EncodeFrame(in []int16, out []byte) int {
	return len(out) + 1
}

func TestOversizedFrame(t *testing.T) {
	core := &badCore{fakeCore: *newFakeCore()}
	enc, err := NewEncoder(core, stereo)
	test.DemandSuccess(t, err)

	_, err = enc.Encode(make([]int16, stereo.FrameLen()))
	test.ExpectSuccess(t, curated.Is(err, EncodeError))
}

func TestHardwareCore(t *testing.T) {
	core, err := HardwareCore()
	if err != nil {
		test.ExpectSuccess(t, curated.Is(err, UnavailableError))
		return
	}
	test.ExpectInequality(t, core.Version(), "")
}
