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

// Package mp3enc binds the i.MX hardware MP3 encoder library.
//
// The library itself is reached through the Core interface. The hardware
// implementation of Core is only built with the imxmp3 build tag, otherwise
// HardwareCore() returns an error. Tests and the ENCODE mode can use any
// other implementation of Core.
//
// The Encoder takes care of the bookkeeping required by the library. It
// queries and allocates the memory blocks, validates the encoding
// parameters, and divides the input into frames of exactly FrameSamples
// samples per channel. A short frame at the end of the input is discarded.
//
//	core, err := mp3enc.HardwareCore()
//	enc, err := mp3enc.NewEncoder(core, mp3enc.Params{
//		SampleRate: 44100,
//		Bitrate:    128,
//		Channels:   2,
//		Quality:    mp3enc.HighQuality,
//	})
//	out, err := enc.Encode(samples)
//	tail, err := enc.Close()
package mp3enc
