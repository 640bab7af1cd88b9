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
	"testing"
	"time"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/environment"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/notifications"
	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/jetsetilly/imxoverlay/winsys/fakewin"
)

// the window used by most tests
const testWindow winsys.Handle = 0x200

type owner struct {
	crit     sync.Mutex
	geometry []geometry.Rect
	alpha    []uint8
	keyed    []bool
	updated  chan geometry.Rect
}

func newOwner() *owner {
	return &owner{
		updated: make(chan geometry.Rect, 100),
	}
}

func (o *owner) Name() string {
	return "test owner"
}

func (o *owner) hooks() Hooks {
	return Hooks{
		Geometry: func(_ Owner, r geometry.Rect) bool {
			o.crit.Lock()
			o.geometry = append(o.geometry, r)
			o.crit.Unlock()
			o.updated <- r
			return true
		},
		ColorKey: func(_ Owner, enabled bool, _ colorkey.Key) {
			o.crit.Lock()
			defer o.crit.Unlock()
			o.keyed = append(o.keyed, enabled)
		},
		Alpha: func(_ Owner, alpha uint8) {
			o.crit.Lock()
			defer o.crit.Unlock()
			o.alpha = append(o.alpha, alpha)
		},
	}
}

func (o *owner) updates() []geometry.Rect {
	o.crit.Lock()
	defer o.crit.Unlock()
	c := make([]geometry.Rect, len(o.geometry))
	copy(c, o.geometry)
	return c
}

// navOwner is an owner that implements the Navigator interface
type navOwner struct {
	*owner
	events []string
	x, y   []int
}

func (o *navOwner) SendMouseEvent(kind string, button int, x, y int) {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.events = append(o.events, kind)
	o.x = append(o.x, x)
	o.y = append(o.y, y)
}

func (o *navOwner) SendKeyEvent(kind string, key string) {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.events = append(o.events, kind+" "+key)
}

type notices struct {
	ch chan notifications.Notice
}

func (n *notices) Notify(notice notifications.Notice) error {
	select {
	case n.ch <- notice:
	default:
	}
	return nil
}

// testConfig returns a configuration using the display. the poll interval
// is long enough that the tests can call Poll() directly without the poller
// interfering
func testConfig(disp *fakewin.Display) Config {
	return Config{
		Backend:      "fake",
		PollInterval: time.Hour,
		Store:        environment.NewMemory(nil),
		Open: func() (winsys.Display, error) {
			return disp, nil
		},
	}
}

func paints(t *testing.T, ov *Overlay) int {
	t.Helper()
	b := test.DemandImplements[*window](t, ov.backend)
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.paints
}

func TestInit(t *testing.T) {
	_, err := NewOverlay(nil, Hooks{}, Config{})
	test.ExpectFailure(t, err)

	ov, err := NewOverlay(newOwner(), Hooks{}, Config{Store: environment.NewMemory(nil)})
	test.DemandSuccess(t, err)
	test.DemandImplements[none](t, ov.backend)
	test.ExpectEquality(t, ov.ColorKey(), colorkey.Default)
	test.ExpectInequality(t, ov.ID(), "")
}

func TestUnknownBackend(t *testing.T) {
	n := &notices{ch: make(chan notifications.Notice, 10)}
	ov, err := NewOverlay(newOwner(), Hooks{}, Config{
		Backend: "no-such-backend",
		Store:   environment.NewMemory(nil),
		Notify:  n,
	})
	test.DemandSuccess(t, err)
	test.DemandImplements[none](t, ov.backend)
	test.ExpectEquality(t, <-n.ch, notifications.NotifyOverlayDisabled)
}

func TestNoneBackend(t *testing.T) {
	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), Config{Store: environment.NewMemory(nil)})
	test.DemandSuccess(t, err)

	// with no window, expose sends the render rectangle to the owner
	test.ExpectSuccess(t, ov.SetRenderRectangle(10, 20, 30, 40))
	ov.Expose()
	test.DemandEquality(t, len(o.updates()), 1)
	test.ExpectEquality(t, o.updates()[0], geometry.Rect{X: 10, Y: 20, W: 30, H: 40})

	// window handle with the none backend enables the colour key but paints
	// nothing
	ov.SetWindowHandle(testWindow)
	ov.Start()
	ov.HandleEvents(true)
	ov.Expose()
	test.ExpectEquality(t, len(o.updates()), 1)
	test.ExpectFailure(t, ov.backend.Poll())

	ov.Finalize()
	ov.Finalize()
	test.ExpectFailure(t, ov.SetRenderRectangle(0, 0, 0, 0))
}

func TestStartGeometry(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{X: 100, Y: 50, W: 800, H: 600})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	test.ExpectEquality(t, len(o.updates()), 0)

	ov.Start()
	u := o.updates()
	test.DemandEquality(t, len(u), 1)
	test.ExpectEquality(t, u[0], geometry.Rect{X: 100, Y: 50, W: 800, H: 600})

	// video fills the window so there are no margins. just the key
	p := disp.Paints()
	test.DemandEquality(t, len(p), 1)
	test.ExpectEquality(t, p[0].Color, colorkey.Default)
	test.ExpectEquality(t, p[0].Rect, geometry.Rect{W: 800, H: 600})
	test.ExpectEquality(t, disp.Syncs(), 1)

	// alpha and colour key have been enabled by both the window handle and
	// the start
	o.crit.Lock()
	test.ExpectEquality(t, len(o.alpha), 2)
	test.ExpectEquality(t, o.alpha[1], uint8(255))
	test.ExpectEquality(t, o.keyed[1], true)
	o.crit.Unlock()
}

func TestSameWindowHandle(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	ov.SetWindowHandle(testWindow)
	ov.Start()

	test.ExpectEquality(t, paints(t, ov), 1)
	test.ExpectEquality(t, len(o.updates()), 1)
	test.ExpectEquality(t, disp.Created(), 0)
	test.ExpectSuccess(t, disp.HasWindow(testWindow))
}

func TestMargins(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	test.ExpectSuccess(t, ov.SetRenderRectangle(50, 50, 300, 300))

	// setting the render rectangle does not cause a repaint
	ov.Start()
	disp.ClearPaints()
	test.ExpectSuccess(t, ov.SetRenderRectangle(50, 50, 300, 300))
	test.ExpectEquality(t, len(disp.Paints()), 0)

	ov.Expose()
	p := disp.Paints()
	test.DemandEquality(t, len(p), 5)
	for _, m := range p[:4] {
		test.ExpectEquality(t, m.Color, winsys.Black)
	}

	// key area is painted last
	test.ExpectEquality(t, p[4].Color, colorkey.Default)
	test.ExpectEquality(t, p[4].Rect, geometry.Rect{X: 50, Y: 50, W: 300, H: 300})

	u := o.updates()
	test.ExpectEquality(t, u[len(u)-1], geometry.Rect{X: 50, Y: 50, W: 300, H: 300})
}

func TestOversizedRenderRect(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	test.ExpectSuccess(t, ov.SetRenderRectangle(0, 0, 1000, 1000))
	ov.SetWindowHandle(testWindow)
	ov.Start()

	u := o.updates()
	test.DemandEquality(t, len(u), 1)
	test.ExpectEquality(t, u[0], geometry.Rect{W: 640, H: 480})
}

func TestInvalidGeometry(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	// render rectangle starts outside of the window
	test.ExpectSuccess(t, ov.SetRenderRectangle(700, 0, 10, 10))
	ov.SetWindowHandle(testWindow)
	ov.Start()

	test.ExpectEquality(t, len(o.updates()), 0)
	test.ExpectEquality(t, len(disp.Paints()), 0)
}

func TestWindowDestroyed(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	disp.RemoveWindow(testWindow)
	ov.Start()
	ov.Expose()

	test.ExpectEquality(t, len(o.updates()), 0)
	test.ExpectEquality(t, len(disp.Paints()), 0)

	// polling continues. the window might be replaced
	test.ExpectSuccess(t, ov.backend.Poll())
}

func TestConfigureEvents(t *testing.T) {
	const n = 5

	for _, deferred := range []bool{false, true} {
		disp := fakewin.NewDisplay("test", 1920, 1080)
		disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

		o := newOwner()
		cfg := testConfig(disp)
		cfg.DeferUpdate = deferred
		cfg.DeferDelay = 50 * time.Millisecond

		ov, err := NewOverlay(o, o.hooks(), cfg)
		test.DemandSuccess(t, err)

		ov.SetWindowHandle(testWindow)
		ov.running.Store(true)

		for i := 0; i < n; i++ {
			disp.MoveWindow(testWindow, geometry.Rect{X: i * 10, Y: i * 10, W: 640, H: 480})
		}
		test.ExpectSuccess(t, ov.backend.Poll())

		if deferred {
			test.ExpectEquality(t, paints(t, ov), 0, "deferred")

			select {
			case r := <-o.updated:
				test.ExpectEquality(t, r, geometry.Rect{X: 40, Y: 40, W: 640, H: 480})
			case <-time.After(time.Second):
				t.Fatalf("deferred update did not happen")
			}

			// wait for any other update that might happen
			time.Sleep(4 * cfg.DeferDelay)
			test.ExpectEquality(t, paints(t, ov), 1, "deferred")
		} else {
			test.ExpectEquality(t, paints(t, ov), n, "immediate")
		}

		ov.Finalize()
	}
}

func TestDeferredCancelledByFinalize(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	cfg := testConfig(disp)
	cfg.DeferUpdate = true
	cfg.DeferDelay = 20 * time.Millisecond

	ov, err := NewOverlay(o, o.hooks(), cfg)
	test.DemandSuccess(t, err)

	ov.SetWindowHandle(testWindow)
	ov.Start()
	ov.Finalize()

	time.Sleep(5 * cfg.DeferDelay)
	test.ExpectEquality(t, len(o.updates()), 0)
}

func TestExposeEvents(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	ov.running.Store(true)

	// a complete series of expose events results in one update
	for i := 3; i >= 0; i-- {
		disp.Push(winsys.ExposeEvent{Window: testWindow, Count: i})
	}
	test.ExpectSuccess(t, ov.backend.Poll())
	test.ExpectEquality(t, paints(t, ov), 1)

	// an incomplete series of expose events results in no update
	disp.Push(winsys.ExposeEvent{Window: testWindow, Count: 2})
	disp.Push(winsys.ExposeEvent{Window: testWindow, Count: 1})
	test.ExpectSuccess(t, ov.backend.Poll())
	test.ExpectEquality(t, paints(t, ov), 1)

	// until the series is completed
	disp.Push(winsys.ExposeEvent{Window: testWindow, Count: 0})
	test.ExpectSuccess(t, ov.backend.Poll())
	test.ExpectEquality(t, paints(t, ov), 2)
}

func TestStopped(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)

	// events are left in the queue while the overlay is stopped
	disp.MoveWindow(testWindow, geometry.Rect{X: 10, W: 640, H: 480})
	test.ExpectSuccess(t, ov.backend.Poll())
	test.ExpectEquality(t, paints(t, ov), 0)

	ov.Start()
	test.ExpectEquality(t, paints(t, ov), 1)
	test.ExpectSuccess(t, ov.backend.Poll())
	test.ExpectEquality(t, paints(t, ov), 2)

	ov.Stop()
	ov.Expose()
	test.ExpectEquality(t, paints(t, ov), 2)
}

func TestNavigation(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})
	disp.SetKeyName(36, "Return")

	o := &navOwner{owner: newOwner()}
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.StructureMask|winsys.ExposureMask|winsys.NavigationMask)
	ov.running.Store(true)

	// the key event is queued before the motion events but motion is always
	// forwarded first
	disp.Push(winsys.KeyEvent{Window: testWindow, Press: true, Keycode: 36})
	disp.Push(winsys.MotionEvent{Window: testWindow, X: 1, Y: 1})
	disp.Push(winsys.MotionEvent{Window: testWindow, X: 2, Y: 2})
	disp.Push(winsys.MotionEvent{Window: testWindow, X: 3, Y: 4})
	disp.Push(winsys.ButtonEvent{Window: testWindow, Press: true, Button: 1, X: 3, Y: 4})
	disp.Push(winsys.ButtonEvent{Window: testWindow, Press: false, Button: 1, X: 3, Y: 4})
	disp.Push(winsys.KeyEvent{Window: testWindow, Press: false, Keycode: 99})

	test.ExpectSuccess(t, ov.backend.Poll())

	o.crit.Lock()
	defer o.crit.Unlock()

	test.DemandEquality(t, len(o.events), 5)
	test.ExpectEquality(t, o.events[0], MouseMove)
	test.ExpectEquality(t, o.x[0], 3)
	test.ExpectEquality(t, o.y[0], 4)
	test.ExpectEquality(t, o.events[1], "key-press Return")
	test.ExpectEquality(t, o.events[2], MouseButtonPress)
	test.ExpectEquality(t, o.events[3], MouseButtonRelease)
	test.ExpectEquality(t, o.events[4], "key-release unknown")
}

func TestEventMask(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)

	// owner is not a navigator so input events are not selected
	ov.SetWindowHandle(testWindow)
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.StructureMask|winsys.ExposureMask)

	ov.HandleEvents(false)
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.NoEvent)

	ov.HandleEvents(true)
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.StructureMask|winsys.ExposureMask)

	ov.Finalize()
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.NoEvent)
}

func TestChangeWindowUnsubscribes(t *testing.T) {
	const other winsys.Handle = 0x300

	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})
	disp.AddWindow(other, geometry.Rect{W: 320, H: 240})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	selected := winsys.StructureMask | winsys.ExposureMask

	ov.SetWindowHandle(testWindow)
	test.ExpectEquality(t, disp.Mask(testWindow), selected)

	ov.SetWindowHandle(other)
	test.ExpectEquality(t, disp.Mask(testWindow), winsys.NoEvent)
	test.ExpectEquality(t, disp.Mask(other), selected)

	// events for the old window are no longer queued
	disp.MoveWindow(testWindow, geometry.Rect{X: 10, Y: 10, W: 640, H: 480})
	_, ok := disp.CheckEvent(testWindow, ^winsys.NoEvent)
	test.ExpectFailure(t, ok)

	ov.SetWindowHandle(0)
	test.ExpectEquality(t, disp.Mask(other), winsys.NoEvent)
}

func TestDisable(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.SetWindowHandle(testWindow)
	ov.SetWindowHandle(0)

	o.crit.Lock()
	test.ExpectEquality(t, o.alpha[len(o.alpha)-1], uint8(0))
	test.ExpectEquality(t, o.keyed[len(o.keyed)-1], false)
	o.crit.Unlock()

	// no window so polling stops
	test.ExpectFailure(t, ov.backend.Poll())
}

func TestPrepareWindowHandle(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()

	// prepare window is disabled by default
	ov, err := NewOverlay(o, o.hooks(), testConfig(disp))
	test.DemandSuccess(t, err)
	ov.PrepareWindowHandle(true)
	test.ExpectEquality(t, ov.Window(), winsys.Handle(0))
	ov.Finalize()

	disp = fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	cfg := testConfig(disp)
	cfg.PrepareWindow = true
	cfg.CreateWindow = true
	ov, err = NewOverlay(o, o.hooks(), cfg)
	test.DemandSuccess(t, err)

	// not required
	ov.PrepareWindowHandle(false)
	test.ExpectEquality(t, ov.Window(), winsys.Handle(0))

	ov.PrepareWindowHandle(true)
	internal := ov.Window()
	test.ExpectInequality(t, internal, winsys.Handle(0))
	test.ExpectEquality(t, disp.Created(), 1)

	// a second request does nothing because there is a window
	ov.PrepareWindowHandle(true)
	test.ExpectEquality(t, disp.Created(), 1)

	// changing the window destroys the internal window
	ov.SetWindowHandle(testWindow)
	test.ExpectFailure(t, disp.HasWindow(internal))
	test.ExpectSuccess(t, disp.HasWindow(testWindow))

	ov.Finalize()
	test.ExpectEquality(t, disp.Closes(), 1)
}

type provider struct {
	*owner
}

func (p provider) PrepareWindow() winsys.Handle {
	return testWindow
}

func TestWindowProvider(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := provider{owner: newOwner()}
	cfg := testConfig(disp)
	cfg.PrepareWindow = true

	ov, err := NewOverlay(o, o.hooks(), cfg)
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.PrepareWindowHandle(true)
	test.ExpectEquality(t, ov.Window(), testWindow)
	test.ExpectEquality(t, disp.Created(), 0)
}

func TestFinalize(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)
	disp.AddWindow(testWindow, geometry.Rect{W: 640, H: 480})

	o := newOwner()
	cfg := testConfig(disp)
	cfg.PrepareWindow = true
	cfg.CreateWindow = true
	ov, err := NewOverlay(o, o.hooks(), cfg)
	test.DemandSuccess(t, err)

	ov.PrepareWindowHandle(true)
	internal := ov.Window()
	ov.Start()
	n := len(o.updates())

	ov.Finalize()
	ov.Finalize()
	test.ExpectEquality(t, disp.Closes(), 1)
	test.ExpectFailure(t, disp.HasWindow(internal))

	// nothing happens after finalize
	ov.Expose()
	ov.SetWindowHandle(testWindow)
	test.ExpectEquality(t, len(o.updates()), n)
	test.ExpectFailure(t, ov.backend.Poll())
}

func TestWindowLost(t *testing.T) {
	disp := fakewin.NewDisplay("test", 1920, 1080)

	n := &notices{ch: make(chan notifications.Notice, 10)}
	o := newOwner()
	cfg := testConfig(disp)
	cfg.PrepareWindow = true
	cfg.CreateWindow = true
	cfg.PollInterval = 5 * time.Millisecond
	cfg.Notify = n

	ov, err := NewOverlay(o, o.hooks(), cfg)
	test.DemandSuccess(t, err)
	defer ov.Finalize()

	ov.PrepareWindowHandle(true)
	test.ExpectEquality(t, <-n.ch, notifications.NotifyOverlayTracking)

	// destroying the window behind the overlay's back stops the poller
	ov.backend.DestroyWindow(ov.Window())

	select {
	case notice := <-n.ch:
		test.ExpectEquality(t, notice, notifications.NotifyWindowLost)
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop")
	}
}

func TestSharedColorKey(t *testing.T) {
	store := environment.NewMemory(nil)
	key := colorkey.Key(0xabcdef)

	o := newOwner()
	ov, err := NewOverlay(o, o.hooks(), Config{Store: store, ColorKey: &key})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ov.ColorKey(), key)

	// a second overlay with a different configuration shares the key
	other := colorkey.Key(0x123456)
	ov2, err := NewOverlay(o, o.hooks(), Config{Store: store, ColorKey: &other})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ov2.ColorKey().String(), "00abcdef")
}
