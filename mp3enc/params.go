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
	"slices"
)

// Number of samples per channel in one frame of encoder input.
const FrameSamples = 1152

// Maximum number of bytes produced by the core for a single frame.
const MaxOutput = 1440

// SampleRates supported by the encoder.
var SampleRates = []int{32000, 44100, 48000}

// Bitrates supported by the encoder in kbit/sec.
var Bitrates = []int{32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}

// Default encoding parameters.
const (
	DefaultBitrate = 128
	DefaultQuality = HighQuality
)

// Quality of the encoding.
type Quality int

// List of valid Quality values.
const (
	LowQuality Quality = iota
	HighQuality
)

func (q Quality) String() string {
	switch q {
	case LowQuality:
		return "low"
	case HighQuality:
		return "high"
	}
	return fmt.Sprintf("quality(%d)", int(q))
}

// Layout of the samples in an input frame.
type Layout int

// List of valid Layout values. With NonInterleaved, each frame passed to the
// core is FrameSamples left channel samples followed by FrameSamples right
// channel samples.
const (
	Interleaved Layout = iota
	NonInterleaved
)

// Params for the encoder.
type Params struct {
	SampleRate int
	Bitrate    int
	Channels   int
	Layout     Layout
	Quality    Quality
}

func (p Params) String() string {
	return fmt.Sprintf("%dHz %dkbps %dch %s quality", p.SampleRate, p.Bitrate, p.Channels, p.Quality)
}

// Validate returns an error describing the first invalid field.
func (p Params) Validate() error {
	if !slices.Contains(SampleRates, p.SampleRate) {
		return fmt.Errorf("unsupported sample rate %d", p.SampleRate)
	}
	if !slices.Contains(Bitrates, p.Bitrate) {
		return fmt.Errorf("unsupported bitrate %d", p.Bitrate)
	}
	if p.Channels < 1 || p.Channels > 2 {
		return fmt.Errorf("unsupported number of channels %d", p.Channels)
	}
	if p.Layout != Interleaved && p.Layout != NonInterleaved {
		return fmt.Errorf("unsupported layout %d", p.Layout)
	}
	if p.Quality != LowQuality && p.Quality != HighQuality {
		return fmt.Errorf("unsupported quality %d", p.Quality)
	}
	return nil
}

// Mode returns the mode word passed to the core. Bits 0-1 select mono,
// bits 8-9 the layout and bits 16-17 the quality.
func (p Params) Mode() uint32 {
	return uint32(p.Channels%2)&0x3 |
		(uint32(p.Layout)&0x3)<<8 |
		(uint32(p.Quality)&0x3)<<16
}

// FrameLen returns the number of samples in one frame of input.
func (p Params) FrameLen() int {
	return FrameSamples * p.Channels
}
