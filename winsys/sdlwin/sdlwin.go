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

package sdlwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend is the name the package is registered with.
const Backend = "sdl"

func init() {
	winsys.Register(Backend, func(name string) (winsys.Display, error) {
		return Open(name)
	})
}

var errClosed = errors.New("sdl: display closed")

// Display implements the winsys.Display interface.
type Display struct {
	crit sync.Mutex

	name  string
	queue winsys.Queue
	masks map[winsys.Handle]winsys.EventMask

	// windows that have been filled since the last Sync()
	dirty map[winsys.Handle]*sdl.Window

	created map[winsys.Handle]*sdl.Window
	closed  bool
}

// Open initialises the SDL video subsystem. The name is used only to
// identify the display in log messages.
func Open(name string) (*Display, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	if name == "" {
		name = Backend
	}

	return &Display{
		name:    name,
		masks:   make(map[winsys.Handle]winsys.EventMask),
		dirty:   make(map[winsys.Handle]*sdl.Window),
		created: make(map[winsys.Handle]*sdl.Window),
	}, nil
}

// Name implements the winsys.Display interface.
func (dsp *Display) Name() string {
	return dsp.name
}

func window(win winsys.Handle) (*sdl.Window, error) {
	w, err := sdl.GetWindowFromID(uint32(win))
	if err != nil {
		return nil, fmt.Errorf("sdl: window %d: %w", win, err)
	}
	return w, nil
}

// Attributes implements the winsys.Display interface.
func (dsp *Display) Attributes(win winsys.Handle) (geometry.Rect, error) {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return geometry.Rect{}, errClosed
	}

	w, err := window(win)
	if err != nil {
		return geometry.Rect{}, err
	}

	x, y := w.GetPosition()
	width, height := w.GetSize()

	return geometry.Rect{X: int(x), Y: int(y), W: int(width), H: int(height)}, nil
}

// SelectInput implements the winsys.Display interface.
func (dsp *Display) SelectInput(win winsys.Handle, mask winsys.EventMask) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
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

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		e := translate(ev)
		if e == nil {
			continue // for loop
		}
		if dsp.masks[e.Target()]&e.Mask() == 0 {
			continue // for loop
		}
		dsp.queue.Push(e)
	}

	return dsp.queue.Take(win, mask)
}

// translate an SDL event into the winsys equivalent. returns nil for events
// that have no equivalent.
func translate(ev sdl.Event) winsys.Event {
	switch ev := ev.(type) {
	case *sdl.WindowEvent:
		win := winsys.Handle(ev.WindowID)
		switch ev.Event {
		case sdl.WINDOWEVENT_EXPOSED:
			return winsys.ExposeEvent{Window: win}
		case sdl.WINDOWEVENT_MOVED:
			return winsys.ConfigureEvent{Window: win, X: int(ev.Data1), Y: int(ev.Data2)}
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return winsys.ConfigureEvent{Window: win, Width: int(ev.Data1), Height: int(ev.Data2)}
		}

	case *sdl.MouseMotionEvent:
		return winsys.MotionEvent{
			Window: winsys.Handle(ev.WindowID),
			X:      int(ev.X),
			Y:      int(ev.Y),
		}

	case *sdl.MouseButtonEvent:
		return winsys.ButtonEvent{
			Window: winsys.Handle(ev.WindowID),
			Press:  ev.Type == sdl.MOUSEBUTTONDOWN,
			Button: int(ev.Button),
			X:      int(ev.X),
			Y:      int(ev.Y),
		}

	case *sdl.KeyboardEvent:
		return winsys.KeyEvent{
			Window:  winsys.Handle(ev.WindowID),
			Press:   ev.Type == sdl.KEYDOWN,
			Keycode: int(ev.Keysym.Sym),
		}
	}

	return nil
}

// KeyName implements the winsys.Display interface. The keycode is an SDL
// keycode rather than a hardware scancode.
func (dsp *Display) KeyName(keycode int) string {
	return sdl.GetKeyName(sdl.Keycode(keycode))
}

// Fill implements the winsys.Display interface. The window surface is not
// updated until Sync() is called.
func (dsp *Display) Fill(win winsys.Handle, c colorkey.Key, rects ...geometry.Rect) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	w, err := window(win)
	if err != nil {
		return err
	}

	surface, err := w.GetSurface()
	if err != nil {
		return fmt.Errorf("sdl: window %d: %w", win, err)
	}

	r, g, b := c.RGB()
	pixel := sdl.MapRGB(surface.Format, r, g, b)

	for _, rect := range rects {
		if !rect.Valid() {
			continue // for loop
		}
		err := surface.FillRect(&sdl.Rect{
			X: int32(rect.X),
			Y: int32(rect.Y),
			W: int32(rect.W),
			H: int32(rect.H),
		}, pixel)
		if err != nil {
			return fmt.Errorf("sdl: window %d: %w", win, err)
		}
	}

	dsp.dirty[win] = w

	return nil
}

// Sync implements the winsys.Display interface.
func (dsp *Display) Sync() error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	var err error
	for win, w := range dsp.dirty {
		if e := w.UpdateSurface(); e != nil && err == nil {
			err = fmt.Errorf("sdl: window %d: %w", win, e)
		}
		delete(dsp.dirty, win)
	}

	return err
}

// CreateWindow implements the winsys.Display interface.
func (dsp *Display) CreateWindow() (winsys.Handle, error) {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return 0, errClosed
	}

	mode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		return 0, fmt.Errorf("sdl: create window: %w", err)
	}

	w, err := sdl.CreateWindow("imxoverlay",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		mode.W, mode.H,
		uint32(sdl.WINDOW_SHOWN)|uint32(sdl.WINDOW_BORDERLESS))
	if err != nil {
		return 0, fmt.Errorf("sdl: create window: %w", err)
	}

	id, err := w.GetID()
	if err != nil {
		_ = w.Destroy()
		return 0, fmt.Errorf("sdl: create window: %w", err)
	}

	win := winsys.Handle(id)
	dsp.created[win] = w

	return win, nil
}

// DestroyWindow implements the winsys.Display interface.
func (dsp *Display) DestroyWindow(win winsys.Handle) error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return errClosed
	}

	w, ok := dsp.created[win]
	if !ok {
		return fmt.Errorf("sdl: window %d: not created by this display", win)
	}

	delete(dsp.created, win)
	delete(dsp.masks, win)
	delete(dsp.dirty, win)
	dsp.queue.Discard(win, ^winsys.NoEvent)

	return w.Destroy()
}

// Close implements the winsys.Display interface. Windows created with
// CreateWindow() are destroyed.
func (dsp *Display) Close() error {
	dsp.crit.Lock()
	defer dsp.crit.Unlock()

	if dsp.closed {
		return nil
	}
	dsp.closed = true

	for win, w := range dsp.created {
		_ = w.Destroy()
		delete(dsp.created, win)
	}

	sdl.QuitSubSystem(sdl.INIT_VIDEO)

	return nil
}
