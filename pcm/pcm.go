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

// Package pcm reads the audio given to the MP3 encoder and decodes its
// output again for verification.
//
// WAV files of any bit depth supported by go-audio/wav are converted to 16
// bit samples, which is the only input format accepted by the encoder. The
// decoded MP3 data is always 16 bit stereo.
package pcm

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/logger"
)

// Sentinel patterns for the curated errors returned by this package.
const (
	WAVError    = "pcm: wav: %v"
	MP3Error    = "pcm: mp3: %v"
	VerifyError = "pcm: verify: %v"
)

// Audio is interleaved 16 bit PCM data.
type Audio struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// Frames returns the number of samples per channel.
func (a Audio) Frames() int {
	if a.Channels == 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

// Duration of the audio.
func (a Audio) Duration() time.Duration {
	if a.SampleRate == 0 {
		return 0
	}
	return time.Duration(a.Frames()) * time.Second / time.Duration(a.SampleRate)
}

func (a Audio) String() string {
	return fmt.Sprintf("%dHz %dch %v", a.SampleRate, a.Channels, a.Duration())
}

// ReadWAV reads the whole of a WAV file.
func ReadWAV(r io.ReadSeeker) (Audio, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return Audio{}, curated.Errorf(WAVError, "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Audio{}, curated.Errorf(WAVError, err)
	}

	a := Audio{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Samples:    make([]int16, len(buf.Data)),
	}

	depth := int(dec.BitDepth)
	for i, v := range buf.Data {
		a.Samples[i] = to16(v, depth)
	}

	logger.Logf(logger.Allow, "pcm", "wav: %d bit, %s", depth, a)

	return a, nil
}

// to16 converts a sample of the bit depth to 16 bits. 8 bit samples are
// unsigned.
func to16(v int, depth int) int16 {
	switch {
	case depth == 8:
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	}
	return int16(v)
}

// DecodeMP3 decodes the whole of an MP3 stream.
func DecodeMP3(r io.Reader) (Audio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Audio{}, curated.Errorf(MP3Error, err)
	}

	// the decoded stream is always 16 bit little endian stereo
	a := Audio{
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}

	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 2 {
			a.Samples = append(a.Samples, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return a, curated.Errorf(MP3Error, err)
		}
	}

	logger.Logf(logger.Allow, "pcm", "mp3: %s", a)

	return a, nil
}

// Report is the result of Verify().
type Report struct {
	Decoded Audio

	// difference in duration between the decoded audio and the source
	Drift time.Duration

	// level of the decoded audio relative to full scale
	Peak float64
	RMS  float64
}

func (r Report) String() string {
	return fmt.Sprintf("%s drift %v peak %.3f rms %.3f", r.Decoded, r.Drift, r.Peak, r.RMS)
}

// Verify decodes the encoded data and compares it with the source. An error
// is returned if the sample rate differs or the duration differs by more
// than the tolerance.
func Verify(encoded io.Reader, source Audio, tolerance time.Duration) (Report, error) {
	dec, err := DecodeMP3(encoded)
	if err != nil {
		return Report{}, curated.Errorf(VerifyError, err)
	}

	rep := Report{
		Decoded: dec,
		Drift:   dec.Duration() - source.Duration(),
	}
	rep.Peak, rep.RMS = levels(dec.Samples)

	if dec.SampleRate != source.SampleRate {
		return rep, curated.Errorf(VerifyError, fmt.Sprintf("sample rate is %d not %d", dec.SampleRate, source.SampleRate))
	}

	if rep.Drift > tolerance || rep.Drift < -tolerance {
		return rep, curated.Errorf(VerifyError, fmt.Sprintf("duration differs by %v", rep.Drift))
	}

	return rep, nil
}

// levels returns the peak and RMS levels of the samples as a fraction of
// full scale.
func levels(samples []int16) (peak float64, rms float64) {
	if len(samples) == 0 {
		return 0, 0
	}

	var sum float64
	for _, s := range samples {
		v := math.Abs(float64(s)) / 32768
		peak = max(peak, v)
		sum += v * v
	}

	return peak, math.Sqrt(sum / float64(len(samples)))
}

// Tone generates a sine wave at the frequency on every channel.
func Tone(sampleRate int, channels int, freq float64, d time.Duration) Audio {
	a := Audio{
		SampleRate: sampleRate,
		Channels:   channels,
	}

	frames := int(d * time.Duration(sampleRate) / time.Second)
	a.Samples = make([]int16, 0, frames*channels)

	for i := 0; i < frames; i++ {
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * 16384)
		for j := 0; j < channels; j++ {
			a.Samples = append(a.Samples, v)
		}
	}

	return a
}
