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

	"github.com/jetsetilly/imxoverlay/prefs"
)

// Preferences for the encoder as stored on disk.
type Preferences struct {
	Bitrate prefs.Int
	Quality prefs.Int
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Bitrate.SetHookPre(func(v prefs.Value) error {
		if !slices.Contains(Bitrates, v.(int)) {
			return fmt.Errorf("unsupported bitrate %d", v.(int))
		}
		return nil
	})

	p.Quality.SetHookPre(func(v prefs.Value) error {
		if q := Quality(v.(int)); q != LowQuality && q != HighQuality {
			return fmt.Errorf("unsupported quality %d", v.(int))
		}
		return nil
	})

	if err := dsk.Add("mp3enc.bitrate", &p.Bitrate); err != nil {
		return nil, err
	}
	if err := dsk.Add("mp3enc.quality", &p.Quality); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Bitrate.Set(DefaultBitrate)
	_ = p.Quality.Set(int(DefaultQuality))
}

// Params returns encoding parameters for the input format using the
// current preference values.
func (p *Preferences) Params(sampleRate int, channels int) Params {
	return Params{
		SampleRate: sampleRate,
		Bitrate:    p.Bitrate.Get().(int),
		Channels:   channels,
		Layout:     Interleaved,
		Quality:    Quality(p.Quality.Get().(int)),
	}
}
