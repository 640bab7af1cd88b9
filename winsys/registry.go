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

package winsys

import (
	"os"
	"sort"
	"sync"

	"github.com/jetsetilly/imxoverlay/curated"
)

// Opener is the function registered for each window system. The name
// argument is the display name. An empty name means the default display.
type Opener func(name string) (Display, error)

// Sentinel patterns for the curated errors returned by this package.
const (
	UnknownBackend = "winsys: unknown backend %q"
	OpenError      = "winsys: %s: %v"
)

var registry = struct {
	crit    sync.Mutex
	openers map[string]Opener
}{
	openers: make(map[string]Opener),
}

// Register a window system. Registering the same name twice replaces the
// earlier Opener.
func Register(backend string, open Opener) {
	registry.crit.Lock()
	defer registry.crit.Unlock()
	registry.openers[backend] = open
}

// Backends returns the sorted list of registered window systems.
func Backends() []string {
	registry.crit.Lock()
	defer registry.crit.Unlock()

	b := make([]string, 0, len(registry.openers))
	for k := range registry.openers {
		b = append(b, k)
	}
	sort.Strings(b)
	return b
}

// Open a display with the named window system.
func Open(backend string, name string) (Display, error) {
	registry.crit.Lock()
	open, ok := registry.openers[backend]
	registry.crit.Unlock()

	if !ok {
		return nil, curated.Errorf(UnknownBackend, backend)
	}

	d, err := open(name)
	if err != nil {
		return nil, curated.Errorf(OpenError, backend, err)
	}
	return d, nil
}

// DisplayName returns the name argument if it is not empty. Otherwise the
// value of the DISPLAY environment variable is returned or ":0" if that is
// not set.
func DisplayName(name string) string {
	if name != "" {
		return name
	}
	if d, ok := os.LookupEnv("DISPLAY"); ok && d != "" {
		return d
	}
	return ":0"
}
