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

package x11

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Backend is the name the package is registered with.
const Backend = "x11"

func init() {
	winsys.Register(Backend, func(name string) (winsys.Display, error) {
		return Open(name)
	})
}

// Display implements the winsys.Display interface.
type Display struct {
	crit sync.Mutex

	name   string
	conn   *xgb.Conn
	screen *xproto.ScreenInfo

	// events read from the connection but not yet taken with CheckEvent()
	queue winsys.Queue

	// masks selected with SelectInput(). events for windows not in this map
	// are dropped
	masks map[winsys.Handle]winsys.EventMask

	keymap keymap
	closed bool
}

// connection to the named X server. replaced by tests
var connect = xgb.NewConnDisplay

// Open a connection to the X server. An empty name means the DISPLAY
// environment variable, or ":0" if that is not set.
func Open(name string) (*Display, error) {
	name = winsys.DisplayName(name)

	conn, err := connect(name)
	if err != nil {
		return nil, fmt.Errorf("x11: %w", err)
	}

	setup := xproto.Setup(conn)

	dsp := &Display{
		name:   name,
		conn:   conn,
		screen: setup.DefaultScreen(conn),
		masks:  make(map[winsys.Handle]winsys.EventMask),
	}

	dsp.keymap, err = loadKeymap(conn, setup)
	if err != nil {
		logger.Logf(logger.Allow, "x11", "%s: keyboard mapping: %v", dsp.name, err)
	}

	return dsp, nil
}

// Name implements the winsys.Display interface.
func (dsp *Display) Name() string {
	return dsp.name
}

// Attributes implements the winsys.Display interface.
func (dsp *Display) Attributes(win winsys.Handle) (geometry.Rect, error) {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return geometry.Rect{}, errClosed
	}

	geom, err := xproto.GetGeometry(dsp.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("x11: geometry: %w", err)
	}

	// the position returned by GetGeometry() is relative to the parent,
	// which for a reparented window is the window manager's frame
	pos, err := xproto.TranslateCoordinates(dsp.conn, xproto.Window(win), dsp.screen.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("x11: position: %w", err)
	}

	return geometry.Rect{
		X: int(pos.DstX),
		Y: int(pos.DstY),
		W: int(geom.Width),
		H: int(geom.Height),
	}, nil
}

func eventMask(mask winsys.EventMask) uint32 {
	var m uint32
	if mask&winsys.StructureMask != 0 {
		m |= xproto.EventMaskStructureNotify
	}
	if mask&winsys.ExposureMask != 0 {
		m |= xproto.EventMaskExposure
	}
	if mask&winsys.PointerMotionMask != 0 {
		m |= xproto.EventMaskPointerMotion
	}
	if mask&winsys.ButtonMask != 0 {
		m |= xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease
	}
	if mask&winsys.KeyMask != 0 {
		m |= xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease
	}
	return m
}

// SelectInput implements the winsys.Display interface.
func (dsp *Display) SelectInput(win winsys.Handle, mask winsys.EventMask) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	err := xproto.ChangeWindowAttributesChecked(dsp.conn, xproto.Window(win),
		xproto.CwEventMask, []uint32{eventMask(mask)}).Check()
	if err != nil {
		return fmt.Errorf("x11: select input: %w", err)
	}

	if mask == winsys.NoEvent {
		delete(dsp.masks, win)
		dsp.queue.Discard(win, ^winsys.NoEvent)
	} else {
		dsp.masks[win] = mask
	}

	return nil
}

// CheckEvent implements the winsys.Display interface.
func (dsp *Display) CheckEvent(win winsys.Handle, mask winsys.EventMask) (winsys.Event, bool) {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return nil, false
	}

	dsp.pump()
	return dsp.queue.Take(win, mask)
}

// pump moves every event waiting on the connection into the queue. must be
// called with the critical section held.
func (dsp *Display) pump() {
	for {
		ev, xerr := dsp.conn.PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			logger.Logf(logger.Allow, "x11", "%s: %v", dsp.name, xerr)
			continue // for loop
		}

		e := translate(ev)
		if e == nil {
			continue // for loop
		}
		if dsp.masks[e.Target()]&e.Mask() == 0 {
			continue // for loop
		}
		dsp.queue.Push(e)
	}
}

// translate an X event into the winsys equivalent. returns nil for events
// that have no equivalent.
func translate(ev xgb.Event) winsys.Event {
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return winsys.ConfigureEvent{
			Window: winsys.Handle(ev.Window),
			X:      int(ev.X),
			Y:      int(ev.Y),
			Width:  int(ev.Width),
			Height: int(ev.Height),
		}
	case xproto.ExposeEvent:
		return winsys.ExposeEvent{
			Window: winsys.Handle(ev.Window),
			Count:  int(ev.Count),
		}
	case xproto.MotionNotifyEvent:
		return winsys.MotionEvent{
			Window: winsys.Handle(ev.Event),
			X:      int(ev.EventX),
			Y:      int(ev.EventY),
		}
	case xproto.ButtonPressEvent:
		return winsys.ButtonEvent{
			Window: winsys.Handle(ev.Event),
			Press:  true,
			Button: int(ev.Detail),
			X:      int(ev.EventX),
			Y:      int(ev.EventY),
		}
	case xproto.ButtonReleaseEvent:
		return winsys.ButtonEvent{
			Window: winsys.Handle(ev.Event),
			Button: int(ev.Detail),
			X:      int(ev.EventX),
			Y:      int(ev.EventY),
		}
	case xproto.KeyPressEvent:
		return winsys.KeyEvent{
			Window:  winsys.Handle(ev.Event),
			Press:   true,
			Keycode: int(ev.Detail),
		}
	case xproto.KeyReleaseEvent:
		return winsys.KeyEvent{
			Window:  winsys.Handle(ev.Event),
			Keycode: int(ev.Detail),
		}
	}
	return nil
}

// KeyName implements the winsys.Display interface.
func (dsp *Display) KeyName(keycode int) string {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()
	return keysymName(dsp.keymap.lookup(keycode))
}

// pixel returns the colour in the format of the root window. displays with a
// depth of 16 are assumed to be RGB565.
func (dsp *Display) pixel(c colorkey.Key) uint32 {
	if dsp.screen.RootDepth == 16 {
		return uint32(c.RGB565())
	}
	return uint32(c)
}

// Fill implements the winsys.Display interface.
func (dsp *Display) Fill(win winsys.Handle, c colorkey.Key, rects ...geometry.Rect) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	gc, err := xproto.NewGcontextId(dsp.conn)
	if err != nil {
		return fmt.Errorf("x11: fill: %w", err)
	}

	err = xproto.CreateGCChecked(dsp.conn, gc, xproto.Drawable(win),
		xproto.GcForeground, []uint32{dsp.pixel(c)}).Check()
	if err != nil {
		return fmt.Errorf("x11: fill: %w", err)
	}
	defer xproto.FreeGC(dsp.conn, gc)

	xr := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		if !r.Valid() {
			continue // for loop
		}
		xr = append(xr, xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(r.W),
			Height: uint16(r.H),
		})
	}

	if len(xr) > 0 {
		xproto.PolyFillRectangle(dsp.conn, xproto.Drawable(win), gc, xr)
	}

	return nil
}

// Sync implements the winsys.Display interface.
func (dsp *Display) Sync() error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	// any request with a reply is a round trip to the server
	_, err := xproto.GetInputFocus(dsp.conn).Reply()
	if err != nil {
		return fmt.Errorf("x11: sync: %w", err)
	}
	return nil
}

// attributes of windows created with CreateWindow(). the window has no
// background so the server does not clear it to a colour when the window is
// reconfigured
func internalAttribs() (uint32, []uint32) {
	return xproto.CwBackPixmap, []uint32{xproto.BackPixmapNone}
}

// CreateWindow implements the winsys.Display interface.
func (dsp *Display) CreateWindow() (winsys.Handle, error) {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return 0, errClosed
	}

	wid, err := xproto.NewWindowId(dsp.conn)
	if err != nil {
		return 0, fmt.Errorf("x11: create window: %w", err)
	}

	mask, values := internalAttribs()
	err = xproto.CreateWindowChecked(dsp.conn,
		dsp.screen.RootDepth,
		wid,
		dsp.screen.Root,
		0, 0,
		dsp.screen.WidthInPixels, dsp.screen.HeightInPixels,
		0,
		xproto.WindowClassInputOutput,
		dsp.screen.RootVisual,
		mask, values).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create window: %w", err)
	}

	err = xproto.MapWindowChecked(dsp.conn, wid).Check()
	if err != nil {
		xproto.DestroyWindow(dsp.conn, wid)
		return 0, fmt.Errorf("x11: map window: %w", err)
	}

	err = xproto.ConfigureWindowChecked(dsp.conn, wid,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
	if err != nil {
		logger.Logf(logger.Allow, "x11", "%s: raise window: %v", dsp.name, err)
	}

	return winsys.Handle(wid), nil
}

// DestroyWindow implements the winsys.Display interface.
func (dsp *Display) DestroyWindow(win winsys.Handle) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	delete(dsp.masks, win)
	dsp.queue.Discard(win, ^winsys.NoEvent)

	err := xproto.DestroyWindowChecked(dsp.conn, xproto.Window(win)).Check()
	if err != nil {
		return fmt.Errorf("x11: destroy window: %w", err)
	}
	return nil
}

// Close implements the winsys.Display interface.
func (dsp *Display) Close() error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return nil
	}
	dsp.closed = true
	dsp.conn.Close()
	return nil
}
