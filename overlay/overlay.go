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
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/notifications"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Sentinel patterns for the curated errors returned by this package.
const (
	InitError          = "overlay: init: %v"
	NoWindowCapability = "overlay: no window capability"
)

var errNoWindowSystem = errors.New("no window system")

// Overlay is the interface between an owner producing video and the window
// the video is to be shown in.
type Overlay struct {
	id      string
	owner   Owner
	cfg     Config
	key     colorkey.Key
	backend Backend

	running atomic.Bool

	// crit guards the fields below. it is never held while calling the
	// backend or the owner
	crit      sync.Mutex
	hooks     Hooks
	window    winsys.Handle
	internal  winsys.Handle
	render    geometry.Rect
	poll      *poller
	finalized bool
}

// NewOverlay is the preferred method of initialisation for the Overlay type.
// An error is returned only if owner is nil. Failure to open the window
// system is logged and results in an Overlay using the none backend.
func NewOverlay(owner Owner, hooks Hooks, cfg Config) (*Overlay, error) {
	if owner == nil {
		return nil, curated.Errorf(InitError, "no owner")
	}

	cfg.normalise()

	ov := &Overlay{
		id:      uuid.NewString(),
		owner:   owner,
		cfg:     cfg,
		hooks:   hooks,
		backend: none{},
	}

	ov.key = colorkey.Resolve(cfg.Store, cfg.ColorKey)

	disp, err := cfg.open()
	if err != nil {
		logger.Logf(logger.Allow, "overlay", "%s: %v", owner.Name(), err)
		ov.notify(notifications.NotifyOverlayDisabled)
		return ov, nil
	}

	if disp != nil {
		nav, _ := owner.(Navigator)

		var delay = cfg.DeferDelay
		if !cfg.DeferUpdate {
			delay = 0
		}

		ov.backend = newWindow(disp, ov.key, &ov.running, nav, ov.geometryChanged, delay)
		logger.Logf(logger.Allow, "overlay", "%s: using %s (%s)", owner.Name(), cfg.Backend, disp.Name())
	}

	return ov, nil
}

// ID returns the unique identifier of the overlay.
func (ov *Overlay) ID() string {
	return ov.id
}

// ColorKey returns the colour key in use by the overlay.
func (ov *Overlay) ColorKey() colorkey.Key {
	return ov.key
}

// Window returns the window being tracked. The zero handle means no window.
func (ov *Overlay) Window() winsys.Handle {
	ov.crit.Lock()
	defer ov.crit.Unlock()
	return ov.window
}

func (ov *Overlay) notify(notice notifications.Notice) {
	if ov.cfg.Notify == nil {
		return
	}
	if err := ov.cfg.Notify.Notify(notice); err != nil {
		logger.Logf(logger.Allow, "overlay", "%s: %v", ov.owner.Name(), err)
	}
}

func (ov *Overlay) getHooks() Hooks {
	ov.crit.Lock()
	defer ov.crit.Unlock()
	return ov.hooks
}

func (ov *Overlay) geometryChanged(r geometry.Rect) {
	if h := ov.getHooks(); h.Geometry != nil {
		h.Geometry(ov.owner, r)
	}
}

func (ov *Overlay) setAlpha(alpha uint8) {
	if h := ov.getHooks(); h.Alpha != nil {
		h.Alpha(ov.owner, alpha)
	}
}

func (ov *Overlay) setColorKey(enable bool) {
	if h := ov.getHooks(); h.ColorKey != nil {
		h.ColorKey(ov.owner, enable, ov.key)
	}
}

// SetWindowHandle changes the window the video is to be shown in. The zero
// handle disables the overlay.
//
// A window created by PrepareWindowHandle() is destroyed if the handle is
// different to the current window.
func (ov *Overlay) SetWindowHandle(win winsys.Handle) {
	ov.crit.Lock()
	if ov.finalized {
		ov.crit.Unlock()
		return
	}

	var destroy winsys.Handle
	if win != ov.window && ov.internal != 0 && ov.internal != win {
		destroy = ov.internal
		ov.internal = 0
	}

	ov.window = win
	ov.poll.halt()
	ov.poll = nil
	ov.crit.Unlock()

	if destroy != 0 {
		ov.backend.DestroyWindow(destroy)
	}

	ov.backend.SetWindow(win)

	if win == 0 {
		ov.setAlpha(0)
		ov.setColorKey(false)
		ov.notify(notifications.NotifyOverlayDisabled)
		return
	}

	ov.setAlpha(255)
	ov.setColorKey(true)
	ov.backend.UpdateGeometry()
	ov.backend.HandleEvents(true)

	p := newPoller(ov.cfg.PollInterval, ov.backend.Poll, func() {
		logger.Logf(logger.Allow, "overlay", "%s: window %#x: event polling stopped", ov.owner.Name(), win)
		ov.notify(notifications.NotifyWindowLost)
	})

	ov.crit.Lock()
	if ov.finalized || ov.window != win {
		// the overlay has changed while the lock was released
		p.halt()
	} else {
		ov.poll = p
	}
	ov.crit.Unlock()

	ov.notify(notifications.NotifyOverlayTracking)
}

// Start the overlay. The geometry is updated immediately if there is a
// window and a geometry hook.
func (ov *Overlay) Start() {
	ov.running.Store(true)

	ov.crit.Lock()
	win := ov.window
	hook := ov.hooks.Geometry
	ov.crit.Unlock()

	if win != 0 && hook != nil {
		ov.setAlpha(255)
		ov.setColorKey(true)
		ov.backend.UpdateGeometry()
	}
}

// Stop the overlay. The window is not painted and events are not processed
// until Start() is called.
func (ov *Overlay) Stop() {
	ov.running.Store(false)
}

// IsRunning returns true if the overlay has been started.
func (ov *Overlay) IsRunning() bool {
	return ov.running.Load()
}

// PrepareWindowHandle makes sure there is a window if one is required. It
// does nothing unless Config.PrepareWindow is true.
func (ov *Overlay) PrepareWindowHandle(required bool) {
	if !ov.cfg.PrepareWindow || !required {
		return
	}

	ov.crit.Lock()
	if ov.finalized || ov.window != 0 {
		ov.crit.Unlock()
		return
	}
	ov.crit.Unlock()

	var win winsys.Handle

	if ov.cfg.CreateWindow {
		var err error
		win, err = ov.backend.CreateWindow()
		if err != nil {
			logger.Logf(logger.Allow, "overlay", "%s: cannot create window: %v", ov.owner.Name(), err)
			return
		}

		ov.crit.Lock()
		ov.internal = win
		ov.crit.Unlock()
	} else if p, ok := ov.owner.(WindowProvider); ok {
		win = p.PrepareWindow()
	}

	if win != 0 {
		ov.SetWindowHandle(win)
	}
}

// HandleEvents enables or disables the processing of window events.
func (ov *Overlay) HandleEvents(enable bool) {
	ov.crit.Lock()
	win := ov.window
	ov.crit.Unlock()

	if win == 0 {
		return
	}
	ov.backend.HandleEvents(enable)
}

// Expose repaints the window and updates the geometry. If there is no window
// the geometry hook is called with the render rectangle.
func (ov *Overlay) Expose() {
	ov.crit.Lock()
	win := ov.window
	render := ov.render
	ov.crit.Unlock()

	if win != 0 {
		ov.backend.UpdateGeometry()
		return
	}

	ov.geometryChanged(render)
}

// SetRenderRectangle sets the area of the window the video is to be drawn
// in. The rectangle is relative to the window. A width or height of zero
// means the entire window.
//
// The new rectangle takes effect on the next geometry update. Call Expose()
// if the update should happen immediately.
func (ov *Overlay) SetRenderRectangle(x, y, w, h int) error {
	ov.crit.Lock()
	if ov.finalized {
		ov.crit.Unlock()
		return curated.Errorf(NoWindowCapability)
	}
	ov.render = geometry.Rect{X: x, Y: y, W: w, H: h}
	ov.crit.Unlock()

	ov.backend.SetRenderRect(geometry.Rect{X: x, Y: y, W: w, H: h})

	return nil
}

// Finalize stops event processing and releases all window system resources.
// The hooks will not be called again. It is safe to call Finalize() more than
// once.
func (ov *Overlay) Finalize() {
	ov.crit.Lock()
	if ov.finalized {
		ov.crit.Unlock()
		return
	}
	ov.finalized = true
	ov.poll.halt()
	ov.poll = nil
	ov.hooks = Hooks{}
	ov.window = 0
	ov.internal = 0
	ov.crit.Unlock()

	ov.running.Store(false)
	ov.backend.Close()
}
