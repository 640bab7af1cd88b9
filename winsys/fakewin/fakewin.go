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

// Package fakewin is an implementation of winsys.Display that exists only in
// memory. Windows are added and moved by the test and the events that a real
// window system would generate are queued in response.
//
// Every Fill() and Sync() is recorded and can be inspected with Paints() and
// Syncs(). All functions are safe to call from more than one goroutine so
// the test can script the display while the overlay is polling it.
package fakewin

import (
	"errors"
	"sync"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Paint is a record of a single call to Fill() for a single rectangle.
type Paint struct {
	Window winsys.Handle
	Color  colorkey.Key
	Rect   geometry.Rect
}

type window struct {
	rect     geometry.Rect
	mask     winsys.EventMask
	internal bool
}

// ErrNoWindow is returned by functions given a window that does not exist.
var ErrNoWindow = errors.New("fakewin: no such window")

// ErrClosed is returned by functions called after Close().
var ErrClosed = errors.New("fakewin: display closed")

// Display implements the winsys.Display interface.
type Display struct {
	crit sync.Mutex

	name    string
	screen  geometry.Rect
	windows map[winsys.Handle]*window
	queue   winsys.Queue
	keys    map[int]string

	nextHandle winsys.Handle

	paints  []Paint
	syncs   int
	closed  bool
	closes  int
	created int
}

// NewDisplay is the preferred method of initialisation for the Display type.
// The screen size is used for windows created with CreateWindow().
func NewDisplay(name string, screenW, screenH int) *Display {
	return &Display{
		name:       name,
		screen:     geometry.Rect{W: screenW, H: screenH},
		windows:    make(map[winsys.Handle]*window),
		keys:       make(map[int]string),
		nextHandle: 0x1000,
	}
}

// AddWindow adds a window at the absolute position and size given.
func (d *Display) AddWindow(win winsys.Handle, rect geometry.Rect) {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.windows[win] = &window{rect: rect}
}

// RemoveWindow removes a window as if it had been destroyed by another
// client.
func (d *Display) RemoveWindow(win winsys.Handle) {
	d.crit.Lock()
	defer d.crit.Unlock()
	delete(d.windows, win)
	d.queue.Discard(win, ^winsys.NoEvent)
}

// HasWindow returns true if the window exists.
func (d *Display) HasWindow(win winsys.Handle) bool {
	d.crit.Lock()
	defer d.crit.Unlock()
	_, ok := d.windows[win]
	return ok
}

// MoveWindow changes the position and size of the window and queues a
// configure event.
func (d *Display) MoveWindow(win winsys.Handle, rect geometry.Rect) {
	d.crit.Lock()
	defer d.crit.Unlock()
	w, ok := d.windows[win]
	if !ok {
		return
	}
	w.rect = rect
	d.push(winsys.ConfigureEvent{Window: win, X: rect.X, Y: rect.Y, Width: rect.W, Height: rect.H})
}

// Push queues an event as if it had come from the window system. The event
// is dropped if its class has not been selected for the window.
func (d *Display) Push(ev winsys.Event) {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.push(ev)
}

func (d *Display) push(ev winsys.Event) {
	w, ok := d.windows[ev.Target()]
	if !ok || w.mask&ev.Mask() == 0 {
		return
	}
	d.queue.Push(ev)
}

// SetKeyName sets the name returned by KeyName() for the key code.
func (d *Display) SetKeyName(keycode int, name string) {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.keys[keycode] = name
}

// Mask returns the events currently selected for the window.
func (d *Display) Mask(win winsys.Handle) winsys.EventMask {
	d.crit.Lock()
	defer d.crit.Unlock()
	if w, ok := d.windows[win]; ok {
		return w.mask
	}
	return winsys.NoEvent
}

// Paints returns a copy of the record of Fill() calls.
func (d *Display) Paints() []Paint {
	d.crit.Lock()
	defer d.crit.Unlock()
	p := make([]Paint, len(d.paints))
	copy(p, d.paints)
	return p
}

// ClearPaints forgets the record of Fill() calls and the number of Sync()
// calls.
func (d *Display) ClearPaints() {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.paints = d.paints[:0]
	d.syncs = 0
}

// Syncs returns the number of calls to Sync().
func (d *Display) Syncs() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.syncs
}

// Closes returns the number of calls to Close().
func (d *Display) Closes() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.closes
}

// Created returns the number of windows created with CreateWindow().
func (d *Display) Created() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.created
}

// Name implements the winsys.Display interface.
func (d *Display) Name() string {
	return d.name
}

// Attributes implements the winsys.Display interface.
func (d *Display) Attributes(win winsys.Handle) (geometry.Rect, error) {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return geometry.Rect{}, ErrClosed
	}
	w, ok := d.windows[win]
	if !ok {
		return geometry.Rect{}, ErrNoWindow
	}
	return w.rect, nil
}

// SelectInput implements the winsys.Display interface.
func (d *Display) SelectInput(win winsys.Handle, mask winsys.EventMask) error {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return ErrClosed
	}
	w, ok := d.windows[win]
	if !ok {
		return ErrNoWindow
	}
	w.mask = mask
	d.queue.Discard(win, ^mask)
	return nil
}

// CheckEvent implements the winsys.Display interface.
func (d *Display) CheckEvent(win winsys.Handle, mask winsys.EventMask) (winsys.Event, bool) {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return nil, false
	}
	return d.queue.Take(win, mask)
}

// KeyName implements the winsys.Display interface.
func (d *Display) KeyName(keycode int) string {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.keys[keycode]
}

// Fill implements the winsys.Display interface.
func (d *Display) Fill(win winsys.Handle, c colorkey.Key, rects ...geometry.Rect) error {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return ErrClosed
	}
	if _, ok := d.windows[win]; !ok {
		return ErrNoWindow
	}
	for _, r := range rects {
		d.paints = append(d.paints, Paint{Window: win, Color: c, Rect: r})
	}
	return nil
}

// Sync implements the winsys.Display interface.
func (d *Display) Sync() error {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.syncs++
	return nil
}

// CreateWindow implements the winsys.Display interface.
func (d *Display) CreateWindow() (winsys.Handle, error) {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	h := d.nextHandle
	d.nextHandle++
	d.windows[h] = &window{rect: d.screen, internal: true}
	d.created++
	return h, nil
}

// DestroyWindow implements the winsys.Display interface.
func (d *Display) DestroyWindow(win winsys.Handle) error {
	d.crit.Lock()
	defer d.crit.Unlock()
	if d.closed {
		return ErrClosed
	}
	w, ok := d.windows[win]
	if !ok || !w.internal {
		return ErrNoWindow
	}
	delete(d.windows, win)
	d.queue.Discard(win, ^winsys.NoEvent)
	return nil
}

// Close implements the winsys.Display interface.
func (d *Display) Close() error {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.closes++
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	return nil
}
