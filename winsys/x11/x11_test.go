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
	"errors"
	"os"
	"testing"

	"github.com/jetsetilly/imxoverlay/colorkey"
	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func TestKeymap(t *testing.T) {
	km := keymap{
		min:     8,
		perCode: 2,
		keysyms: []xproto.Keysym{'a', 'A', 0xff0d, 0, 0x1234, 0},
	}

	test.ExpectEquality(t, keysymName(km.lookup(8)), "a")
	test.ExpectEquality(t, keysymName(km.lookup(9)), "Return")
	test.ExpectEquality(t, keysymName(km.lookup(10)), "")
	test.ExpectEquality(t, keysymName(km.lookup(11)), "")
	test.ExpectEquality(t, keysymName(km.lookup(7)), "")

	var empty keymap
	test.ExpectEquality(t, empty.lookup(8), xproto.Keysym(0))
}

func TestEventMask(t *testing.T) {
	test.ExpectEquality(t, eventMask(winsys.NoEvent), uint32(0))
	test.ExpectEquality(t, eventMask(winsys.StructureMask|winsys.ExposureMask),
		uint32(xproto.EventMaskStructureNotify|xproto.EventMaskExposure))
	test.ExpectEquality(t, eventMask(winsys.ButtonMask),
		uint32(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease))
}

func TestTranslate(t *testing.T) {
	ev := translate(xproto.ConfigureNotifyEvent{Window: 10, X: 1, Y: 2, Width: 3, Height: 4})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ConfigureEvent{Window: 10, X: 1, Y: 2, Width: 3, Height: 4}))

	ev = translate(xproto.ExposeEvent{Window: 10, Count: 2})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ExposeEvent{Window: 10, Count: 2}))

	ev = translate(xproto.ButtonReleaseEvent{Event: 10, Detail: 3, EventX: 5, EventY: 6})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ButtonEvent{Window: 10, Button: 3, X: 5, Y: 6}))

	ev = translate(xproto.KeyPressEvent{Event: 10, Detail: 36})
	test.ExpectEquality(t, ev, winsys.Event(winsys.KeyEvent{Window: 10, Press: true, Keycode: 36}))

	test.ExpectEquality(t, translate(xproto.MapNotifyEvent{}), nil)
}

func TestPixel(t *testing.T) {
	dsp := &Display{screen: &xproto.ScreenInfo{RootDepth: 24}}
	test.ExpectEquality(t, dsp.pixel(colorkey.Key(0x102030)), uint32(0x102030))

	dsp.screen.RootDepth = 16
	test.ExpectEquality(t, dsp.pixel(colorkey.Key(0xffffff)), uint32(0xffff))
}

func TestOpenDisplayName(t *testing.T) {
	var attempted []string
	defer func(c func(string) (*xgb.Conn, error)) { connect = c }(connect)
	connect = func(name string) (*xgb.Conn, error) {
		attempted = append(attempted, name)
		return nil, errors.New("no server")
	}

	t.Setenv("DISPLAY", "")
	os.Unsetenv("DISPLAY")

	_, err := Open("")
	test.ExpectFailure(t, err)

	t.Setenv("DISPLAY", ":3")
	_, err = Open("")
	test.ExpectFailure(t, err)

	_, err = Open(":1")
	test.ExpectFailure(t, err)

	test.DemandEquality(t, len(attempted), 3)
	test.ExpectEquality(t, attempted[0], ":0")
	test.ExpectEquality(t, attempted[1], ":3")
	test.ExpectEquality(t, attempted[2], ":1")
}

func TestInternalAttribs(t *testing.T) {
	mask, values := internalAttribs()
	test.ExpectEquality(t, mask, uint32(xproto.CwBackPixmap))
	test.DemandEquality(t, len(values), 1)
	test.ExpectEquality(t, values[0], uint32(xproto.BackPixmapNone))
}
