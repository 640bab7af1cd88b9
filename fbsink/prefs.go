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

package fbsink

import (
	"github.com/jetsetilly/imxoverlay/prefs"
)

// Preferences for the framebuffer sink as stored on disk.
type Preferences struct {
	Device    prefs.String
	Rotation  prefs.String
	KeepRatio prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Rotation.SetHookPre(func(v prefs.Value) error {
		_, err := ParseRotation(v.(string))
		return err
	})

	for k, v := range map[string]prefs.Pref{
		"fbsink.device":    &p.Device,
		"fbsink.rotation":  &p.Rotation,
		"fbsink.keepratio": &p.KeepRatio,
	} {
		if err := dsk.Add(k, v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Device.Set(DefaultDevice)
	_ = p.Rotation.Set(RotateIdentity.String())
	_ = p.KeepRatio.Set(true)
}

// Apply the preferences to the sink.
func (p *Preferences) Apply(s *Sink) {
	s.SetDevice(p.Device.String())
	if r, err := ParseRotation(p.Rotation.String()); err == nil {
		s.SetRotation(r)
	}
	s.SetKeepRatio(p.KeepRatio.Get().(bool))
}
