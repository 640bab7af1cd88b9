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


package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/modalflag"
	"github.com/jetsetilly/imxoverlay/overlay"
	"github.com/jetsetilly/imxoverlay/termkeys"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/jetsetilly/imxoverlay/winsys/fakewin"
)

// name of the backend that uses a display in memory
const fakeBackend = "fake"

// the window added to the fake display
const (
	fakeWindow winsys.Handle = 0x100
	fakeScreenW              = 1920
	fakeScreenH              = 1080
)

var fakeWindowRect = geometry.Rect{X: 100, Y: 100, W: 640, H: 480}

// the amount the fake window is moved or resized by each key press
const fakeStep = 16

// demo is the overlay owner used by the OVERLAY mode. it reports everything
// the overlay tells it.
type demo struct {
	output io.Writer
	fake   *fakewin.Display
}

// Name implements the overlay.Owner interface.
func (d *demo) Name() string {
	return "demo"
}

// SendMouseEvent implements the overlay.Navigator interface.
func (d *demo) SendMouseEvent(kind string, button int, x, y int) {
	fmt.Fprintf(d.output, "%s: button %d at %d,%d\n", kind, button, x, y)
}

// SendKeyEvent implements the overlay.Navigator interface.
func (d *demo) SendKeyEvent(kind string, key string) {
	fmt.Fprintf(d.output, "%s: %s\n", kind, key)
}

// PrepareWindow implements the overlay.WindowProvider interface.
func (d *demo) PrepareWindow() winsys.Handle {
	if d.fake == nil {
		return 0
	}
	return fakeWindow
}

func (d *demo) hooks() overlay.Hooks {
	return overlay.Hooks{
		Geometry: func(_ overlay.Owner, r geometry.Rect) bool {
			fmt.Fprintf(d.output, "geometry: %s\n", r)
			return true
		},
		ColorKey: func(_ overlay.Owner, enabled bool, key colorkey.Key) {
			fmt.Fprintf(d.output, "color key: %v (%s)\n", enabled, key)
		},
		Alpha: func(_ overlay.Owner, alpha uint8) {
			fmt.Fprintf(d.output, "alpha: %d\n", alpha)
		},
	}
}

// overlayFlags are the flags that select the window system. they are used by
// the OVERLAY and FBSINK modes.
type overlayFlags struct {
	backend *string
	display *string
	window  *int
	deferUp *bool
	create  *bool
}

func addOverlayFlags(md *modalflag.Modes) overlayFlags {
	return overlayFlags{
		backend: md.AddString("backend", "", fmt.Sprintf("window system: %s, %s or any of %v", overlay.BackendNone, fakeBackend, winsys.Backends())),
		display: md.AddString("display", "", "display name passed to the window system"),
		window:  md.AddInt("window", 0, "handle of an existing window to track"),
		deferUp: md.AddBool("defer", false, "coalesce geometry updates"),
		create:  md.AddBool("create", false, "create a window if one is not given"),
	}
}

// config returns the overlay configuration from the preferences with any
// explicitly set flags taking precedence.
func (f overlayFlags) config(p *preferences, set map[string]bool) (overlay.Config, *fakewin.Display) {
	cfg := p.overlay.Config()

	if set["backend"] {
		cfg.Backend = *f.backend
	}
	if set["display"] {
		cfg.Display = *f.display
	}
	if set["defer"] {
		cfg.DeferUpdate = *f.deferUp
	}
	if set["create"] {
		cfg.CreateWindow = *f.create
	}

	// a window is prepared if one has not been given
	if *f.window == 0 {
		cfg.PrepareWindow = true
	}

	cfg.Notify = notices{}

	if cfg.Backend != fakeBackend {
		return cfg, nil
	}

	fake := fakewin.NewDisplay(fakeBackend, fakeScreenW, fakeScreenH)
	fake.AddWindow(fakeWindow, fakeWindowRect)
	cfg.Open = func() (winsys.Display, error) {
		return fake, nil
	}

	return cfg, fake
}

func overlayDemo(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AdditionalHelp("keys: arrows move the window (fake backend), +/- resize it, r toggles the\nrender rectangle, e exposes, s starts/stops, h toggles event handling, q quits")

	cmn := addCommon(md)
	ovf := addOverlayFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := cmn.apply(md.Output)
	if err != nil {
		return err
	}

	cfg, fake := ovf.config(prf, explicitly(md))

	d := &demo{output: md.Output, fake: fake}

	ov, err := overlay.NewOverlay(d, d.hooks(), cfg)
	if err != nil {
		return err
	}
	defer ov.Finalize()

	fmt.Fprintf(md.Output, "overlay %s using color key %s\n", ov.ID(), ov.ColorKey())

	ov.Start()
	if *ovf.window != 0 {
		ov.SetWindowHandle(winsys.Handle(*ovf.window))
	} else {
		ov.PrepareWindowHandle(true)
	}

	// ctrl-c is read from the terminal
	sync.state <- stateRequest{req: reqNoIntSig}

	keys, err := termkeys.Open(os.Stdin)
	if err != nil {
		return err
	}
	defer keys.Close()

	return d.run(ov, keys)
}

// run reads key presses until the user quits.
func (d *demo) run(ov *overlay.Overlay, keys *termkeys.Reader) error {
	var inset bool
	handle := true

	for {
		ev, err := keys.Read()
		if err != nil {
			return err
		}

		switch ev.Key {
		case termkeys.KeyEscape, termkeys.KeyInterrupt:
			return nil
		case termkeys.KeyUp:
			d.move(0, -fakeStep, 0, 0)
		case termkeys.KeyDown:
			d.move(0, fakeStep, 0, 0)
		case termkeys.KeyLeft:
			d.move(-fakeStep, 0, 0, 0)
		case termkeys.KeyRight:
			d.move(fakeStep, 0, 0, 0)
		case termkeys.KeyRune:
			switch ev.Rune {
			case 'q':
				return nil
			case '+':
				d.move(0, 0, fakeStep, fakeStep)
			case '-':
				d.move(0, 0, -fakeStep, -fakeStep)
			case 'e':
				ov.Expose()
			case 'r':
				inset = !inset
				if inset {
					err = ov.SetRenderRectangle(fakeStep, fakeStep, fakeWindowRect.W/2, fakeWindowRect.H/2)
				} else {
					err = ov.SetRenderRectangle(0, 0, 0, 0)
				}
				if err != nil {
					return err
				}
				ov.Expose()
			case 's':
				if ov.IsRunning() {
					ov.Stop()
				} else {
					ov.Start()
				}
				fmt.Fprintf(d.output, "running: %v\n", ov.IsRunning())
			case 'h':
				handle = !handle
				ov.HandleEvents(handle)
				fmt.Fprintf(d.output, "handling events: %v\n", handle)
			default:
				d.key(ev)
			}
		default:
			d.key(ev)
		}
	}
}

// move the fake window. does nothing if the fake backend is not in use.
func (d *demo) move(dx, dy, dw, dh int) {
	if d.fake == nil {
		return
	}
	r, err := d.fake.Attributes(fakeWindow)
	if err != nil {
		return
	}
	r = r.Translate(dx, dy)
	r.W = max(r.W+dw, fakeStep)
	r.H = max(r.H+dh, fakeStep)
	d.fake.MoveWindow(fakeWindow, r)
}

// key forwards the key press to the fake window as a window system key
// event. does nothing if the fake backend is not in use.
func (d *demo) key(ev termkeys.Event) {
	if d.fake == nil {
		return
	}
	code := int(ev.Key)<<16 | int(ev.Rune)
	d.fake.SetKeyName(code, ev.Name())
	d.fake.Push(winsys.KeyEvent{Window: fakeWindow, Press: true, Keycode: code})
	d.fake.Push(winsys.KeyEvent{Window: fakeWindow, Press: false, Keycode: code})
}
