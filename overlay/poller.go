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
	"sync"
	"time"
)

// poller calls a function at a fixed interval until the function returns
// false or until halt() is called.
type poller struct {
	done chan struct{}
	once sync.Once
}

// newPoller starts polling immediately. The stopped function is called if
// the tick function returns false. It is not called if halt() was called.
func newPoller(interval time.Duration, tick func() bool, stopped func()) *poller {
	p := &poller{
		done: make(chan struct{}),
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-p.done:
				return
			case <-t.C:
				if !tick() {
					select {
					case <-p.done:
					default:
						stopped()
					}
					return
				}
			}
		}
	}()

	return p
}

// halt polling. It is safe to call halt() more than once and from the tick
// function itself.
func (p *poller) halt() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		close(p.done)
	})
}
