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

// Package colorkey is the colour painted in the area of a window where the
// video should appear. The display hardware composites the video layer
// through any pixel of that colour.
//
// The key is shared between cooperating processes through an environment
// store. The first process to resolve the key writes it to the store and all
// later resolutions, in that process or in its children, read the same
// value.
package colorkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/environment"
	"github.com/jetsetilly/imxoverlay/logger"
)

// EnvName is the name of the value in the environment store.
const EnvName = "COLORKEY"

// Key is a colour in RGB888 form.
type Key uint32

// Default is the key used when neither the environment nor the configuration
// supply one.
const Default Key = 0x010203

// Sentinel patterns for the curated errors returned by this package.
const (
	ParseError = "colorkey: cannot parse %q"
)

// String returns the key as an 8 digit, zero padded, lower case hex string.
// This is the form the key is stored in the environment.
func (k Key) String() string {
	return fmt.Sprintf("%08x", uint32(k))
}

// RGB returns the red, green and blue components of the key.
func (k Key) RGB() (uint8, uint8, uint8) {
	return uint8(k >> 16), uint8(k >> 8), uint8(k)
}

// RGB565 returns the key in the 16 bit form used by 16 bit visuals.
func (k Key) RGB565() uint16 {
	r, g, b := k.RGB()
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Parse a hex string as a key. An optional 0x or # prefix is allowed.
func Parse(s string) (Key, error) {
	t := strings.TrimSpace(strings.ToLower(s))
	t = strings.TrimPrefix(t, "0x")
	t = strings.TrimPrefix(t, "#")

	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil || v > 0xffffff {
		return 0, curated.Errorf(ParseError, s)
	}

	return Key(v), nil
}

// Resolve the key from the environment store. The configured key is used
// only if the store does not already have a key, in which case the
// configured key is written to the store. A nil configured key means the
// Default key.
//
// A value in the store that is too short or cannot be parsed is replaced.
func Resolve(store environment.Store, configured *Key) Key {
	if s, ok := store.Lookup(EnvName); ok && len(s) > 1 {
		k, err := Parse(s)
		if err == nil {
			return k
		}
		logger.Log(logger.Allow, "colorkey", err)
	}

	k := Default
	if configured != nil {
		k = *configured
	}

	if err := store.Set(EnvName, k.String()); err != nil {
		logger.Logf(logger.Allow, "colorkey", "cannot share key: %v", err)
	}

	return k
}
