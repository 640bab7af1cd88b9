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
	"sync/atomic"
	"time"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// window is the Backend for a real window system.
type window struct {
	// crit guards every field below and every call to disp. it is released
	// only while calling out to the owner
	crit sync.Mutex

	disp   winsys.Display
	win    winsys.Handle
	render geometry.Rect
	closed bool

	// the last geometry sent to the owner
	last geometry.Rect

	// windows created with CreateWindow()
	created map[winsys.Handle]bool

	key     colorkey.Key
	running *atomic.Bool
	nav     Navigator
	notify  func(geometry.Rect)

	// zero if updates should happen immediately
	deferDelay time.Duration
	deferred   *time.Timer

	// incremented every time deferred is armed. the timer function only
	// paints if the generation it was armed with is still current
	deferGen int

	// number of paints. used by tests
	paints int
}

func newWindow(disp winsys.Display, key colorkey.Key, running *atomic.Bool, nav Navigator, notify func(geometry.Rect), deferDelay time.Duration) *window {
	return &window{
		disp:       disp,
		created:    make(map[winsys.Handle]bool),
		key:        key,
		running:    running,
		nav:        nav,
		notify:     notify,
		deferDelay: deferDelay,
	}
}

// SetWindow implements the Backend interface.
func (b *window) SetWindow(win winsys.Handle) {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.win != win {
		b.disarm()
		b.last = geometry.Rect{}

		// events for the previous window would otherwise collect in the
		// display's queue with nothing to take them
		if b.win != 0 && !b.closed {
			if err := b.disp.SelectInput(b.win, winsys.NoEvent); err != nil {
				logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
			}
		}
	}
	b.win = win
}

// SetRenderRect implements the Backend interface.
func (b *window) SetRenderRect(r geometry.Rect) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.render = r
}

// UpdateGeometry implements the Backend interface.
func (b *window) UpdateGeometry() {
	if !b.running.Load() {
		return
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	b.update()
}

// update must be called with the critical section held.
func (b *window) update() {
	if b.deferDelay > 0 {
		b.arm()
		return
	}
	b.paint()
}

// arm the deferred update timer, cancelling any timer that has not yet
// fired. must be called with the critical section held.
func (b *window) arm() {
	b.disarm()
	b.deferGen++
	gen := b.deferGen
	b.deferred = time.AfterFunc(b.deferDelay, func() {
		b.crit.Lock()
		defer b.crit.Unlock()
		if gen != b.deferGen {
			return
		}
		b.deferred = nil
		b.paint()
	})
}

// disarm the deferred update timer. must be called with the critical
// section held.
func (b *window) disarm() {
	if b.deferred != nil {
		b.deferred.Stop()
		b.deferred = nil
	}
	b.deferGen++
}

// paint the window and inform the owner of the new geometry. must be called
// with the critical section held. the critical section is released while the
// owner is informed.
func (b *window) paint() {
	if b.closed || b.win == 0 {
		return
	}

	attr, err := b.disp.Attributes(b.win)
	if err != nil {
		logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
		return
	}

	video := geometry.VideoArea(attr.W, attr.H, b.render)
	if !video.Valid() {
		logger.Logf(logger.Allow, "overlay", "window %#x: invalid geometry %s", b.win, video)
		return
	}

	// margins are painted before the video area
	if m := geometry.Margins(attr.W, attr.H, video); len(m) > 0 {
		if err := b.disp.Fill(b.win, winsys.Black, m...); err != nil {
			logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
			return
		}
	}
	if err := b.disp.Fill(b.win, b.key, video); err != nil {
		logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
		return
	}
	if err := b.disp.Sync(); err != nil {
		logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
	}

	b.paints++
	b.last = video.Translate(attr.X, attr.Y)

	if b.notify != nil {
		r := b.last
		b.crit.Unlock()
		b.notify(r)
		b.crit.Lock()
	}
}

// CreateWindow implements the Backend interface.
func (b *window) CreateWindow() (winsys.Handle, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed {
		return 0, errNoWindowSystem
	}

	win, err := b.disp.CreateWindow()
	if err != nil {
		return 0, err
	}
	b.created[win] = true

	return win, nil
}

// DestroyWindow implements the Backend interface.
func (b *window) DestroyWindow(win winsys.Handle) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.destroy(win)
}

// must be called with the critical section held.
func (b *window) destroy(win winsys.Handle) {
	if !b.created[win] {
		return
	}
	delete(b.created, win)

	if b.closed {
		return
	}

	if err := b.disp.DestroyWindow(win); err != nil {
		logger.Logf(logger.Allow, "overlay", "window %#x: %v", win, err)
	}
	if b.win == win {
		b.disarm()
		b.win = 0
	}
}

// HandleEvents implements the Backend interface.
func (b *window) HandleEvents(enable bool) {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed || b.win == 0 {
		return
	}

	mask := winsys.NoEvent
	if enable {
		mask = winsys.StructureMask | winsys.ExposureMask
		if b.nav != nil {
			mask |= winsys.NavigationMask
		}
	}

	if err := b.disp.SelectInput(b.win, mask); err != nil {
		logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
	}
}

// Close implements the Backend interface.
func (b *window) Close() {
	b.crit.Lock()
	defer b.crit.Unlock()

	if b.closed {
		return
	}

	b.disarm()

	if b.win != 0 {
		if err := b.disp.SelectInput(b.win, winsys.NoEvent); err != nil {
			logger.Logf(logger.Allow, "overlay", "window %#x: %v", b.win, err)
		}
	}

	for win := range b.created {
		b.destroy(win)
	}

	if err := b.disp.Close(); err != nil {
		logger.Logf(logger.Allow, "overlay", "%s: %v", b.disp.Name(), err)
	}

	b.closed = true
	b.win = 0
}
