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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/imxoverlay/pcm"
	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/wavwriter"
)

func TestRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tone.wav")

	aw, err := wavwriter.New(fn)
	test.DemandSuccess(t, err)

	tone := pcm.Tone(44100, 2, 440, 100*time.Millisecond)
	test.DemandSuccess(t, aw.Write(tone))
	test.DemandSuccess(t, aw.Write(tone))

	// format cannot change
	test.ExpectFailure(t, aw.Write(pcm.Tone(48000, 2, 440, time.Millisecond)))

	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	a, err := pcm.ReadWAV(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.SampleRate, 44100)
	test.ExpectEquality(t, a.Channels, 2)
	test.DemandEquality(t, len(a.Samples), len(tone.Samples)*2)
	test.ExpectEquality(t, a.Samples[101], tone.Samples[101])
	test.ExpectEquality(t, a.Duration(), 200*time.Millisecond)
}

func TestEmpty(t *testing.T) {
	_, err := wavwriter.New("")
	test.ExpectFailure(t, err)

	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "empty.wav"))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, aw.Close())
}
