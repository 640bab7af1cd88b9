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
	"github.com/jetsetilly/imxoverlay/environment"
	"github.com/jetsetilly/imxoverlay/notifications"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Default values for the Config type.
const (
	DefaultPollInterval = 45 * time.Millisecond
	DefaultDeferDelay   = 100 * time.Millisecond
)

// BackendNone is the name of the backend that does nothing.
const BackendNone = "none"

// Config is the configuration of an Overlay. The zero value is valid and
// selects the none backend.
type Config struct {
	// name of the window system as registered with winsys.Register(). the
	// empty string is the same as BackendNone
	Backend string

	// display name passed to the window system
	Display string

	// interval between event polls. zero means DefaultPollInterval
	PollInterval time.Duration

	// coalesce geometry updates. DeferDelay of zero means DefaultDeferDelay
	DeferUpdate bool
	DeferDelay  time.Duration

	// PrepareWindowHandle() does nothing unless PrepareWindow is true. if
	// CreateWindow is also true the window is created by the overlay,
	// otherwise the owner is asked for a window
	PrepareWindow bool
	CreateWindow  bool

	// colour key to use if one has not already been shared through the
	// store. nil means colorkey.Default
	ColorKey *colorkey.Key

	// store the colour key is shared through. nil means the process
	// environment
	Store environment.Store

	// notifications are sent here if it is not nil
	Notify notifications.Notify

	// if Open is not nil it is used to open the display instead of the
	// Backend and Display fields
	Open func() (winsys.Display, error)
}

func (cfg *Config) normalise() {
	if cfg.Backend == "" {
		cfg.Backend = BackendNone
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.DeferDelay <= 0 {
		cfg.DeferDelay = DefaultDeferDelay
	}
	if cfg.Store == nil {
		cfg.Store = environment.Process{}
	}
}

func (cfg *Config) open() (winsys.Display, error) {
	if cfg.Open != nil {
		return cfg.Open()
	}
	if cfg.Backend == BackendNone {
		return nil, nil
	}
	return winsys.Open(cfg.Backend, cfg.Display)
}
