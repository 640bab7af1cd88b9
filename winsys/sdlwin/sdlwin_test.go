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
	"testing"

	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/winsys"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	ev := translate(&sdl.WindowEvent{WindowID: 3, Event: sdl.WINDOWEVENT_EXPOSED})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ExposeEvent{Window: 3}))

	ev = translate(&sdl.WindowEvent{WindowID: 3, Event: sdl.WINDOWEVENT_MOVED, Data1: 10, Data2: 20})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ConfigureEvent{Window: 3, X: 10, Y: 20}))

	ev = translate(&sdl.WindowEvent{WindowID: 3, Event: sdl.WINDOWEVENT_FOCUS_GAINED})
	test.ExpectEquality(t, ev, nil)

	ev = translate(&sdl.MouseButtonEvent{WindowID: 3, Type: sdl.MOUSEBUTTONDOWN, Button: 1, X: 5, Y: 6})
	test.ExpectEquality(t, ev, winsys.Event(winsys.ButtonEvent{Window: 3, Press: true, Button: 1, X: 5, Y: 6}))

	ev = translate(&sdl.KeyboardEvent{WindowID: 3, Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_RETURN}})
	test.ExpectEquality(t, ev, winsys.Event(winsys.KeyEvent{Window: 3, Keycode: int(sdl.K_RETURN)}))
}
