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

package overlay

import (
	"time"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/prefs"
)

// Preferences for the overlay as stored on disk.
type Preferences struct {
	dsk *prefs.Disk

	Backend       prefs.String
	Display       prefs.String
	PollInterval  prefs.Duration
	DeferUpdate   prefs.Bool
	DeferDelay    prefs.Duration
	PrepareWindow prefs.Bool
	CreateWindow  prefs.Bool
	ColorKey      prefs.String
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{dsk: dsk}
	p.SetDefaults()

	// the colour key can be empty, meaning the default
	p.ColorKey.SetHookPre(func(v prefs.Value) error {
		if s := v.(string); s != "" {
			_, err := colorkey.Parse(s)
			return err
		}
		return nil
	})

	for k, v := range map[string]prefs.Pref{
		"overlay.backend":       &p.Backend,
		"overlay.display":       &p.Display,
		"overlay.pollinterval":  &p.PollInterval,
		"overlay.deferupdate":   &p.DeferUpdate,
		"overlay.deferdelay":    &p.DeferDelay,
		"overlay.preparewindow": &p.PrepareWindow,
		"overlay.createwindow":  &p.CreateWindow,
		"overlay.colorkey":      &p.ColorKey,
	} {
		if err := dsk.Add(k, v); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Backend.Set(BackendNone)
	_ = p.Display.Set("")
	_ = p.PollInterval.Set(DefaultPollInterval)
	_ = p.DeferUpdate.Set(false)
	_ = p.DeferDelay.Set(DefaultDeferDelay)
	_ = p.PrepareWindow.Set(false)
	_ = p.CreateWindow.Set(false)
	_ = p.ColorKey.Set("")
}

// Config returns a Config from the current preference values. Fields that
// are not preferences are left at their zero value.
func (p *Preferences) Config() Config {
	cfg := Config{
		Backend:       p.Backend.String(),
		Display:       p.Display.String(),
		PollInterval:  p.PollInterval.Get().(time.Duration),
		DeferUpdate:   p.DeferUpdate.Get().(bool),
		DeferDelay:    p.DeferDelay.Get().(time.Duration),
		PrepareWindow: p.PrepareWindow.Get().(bool),
		CreateWindow:  p.CreateWindow.Get().(bool),
	}

	if k, err := colorkey.Parse(p.ColorKey.String()); err == nil {
		cfg.ColorKey = &k
	}

	return cfg
}
