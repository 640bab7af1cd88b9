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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when the writer is closed. It is therefore probably only suitable for
// checking the output of the encoder by ear.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/pcm"
)

// WavWriter collects 16 bit PCM audio and writes it to a file.
type WavWriter struct {
	filename   string
	sampleRate int
	channels   int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf("wavwriter: %v", "no filename")
	}

	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0),
	}

	return aw, nil
}

// Write adds the audio to the buffer. Every call must use the same sample
// rate and number of channels.
func (aw *WavWriter) Write(a pcm.Audio) error {
	if aw.sampleRate == 0 {
		aw.sampleRate = a.SampleRate
		aw.channels = a.Channels
	}

	if a.SampleRate != aw.sampleRate || a.Channels != aw.channels {
		return curated.Errorf("wavwriter: %v", fmt.Sprintf("cannot mix %s with %dHz %dch", a, aw.sampleRate, aw.channels))
	}

	for _, s := range a.Samples {
		aw.buffer = append(aw.buffer, int(s))
	}

	return nil
}

// Close writes the buffered audio to the file.
func (aw *WavWriter) Close() (rerr error) {
	if aw.sampleRate == 0 {
		return curated.Errorf("wavwriter: %v", "no audio")
	}

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 16, aw.channels, 1)

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	err = enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: aw.channels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	})
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
