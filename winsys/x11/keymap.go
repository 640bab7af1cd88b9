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

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var errClosed = errors.New("x11: display closed")

// keymap is a copy of the server's keycode to keysym table.
type keymap struct {
	min     int
	perCode int
	keysyms []xproto.Keysym
}

func loadKeymap(conn *xgb.Conn, setup *xproto.SetupInfo) (keymap, error) {
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1

	rep, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		return keymap{}, err
	}

	return keymap{
		min:     int(setup.MinKeycode),
		perCode: int(rep.KeysymsPerKeycode),
		keysyms: rep.Keysyms,
	}, nil
}

// lookup returns the unshifted keysym for the keycode. zero means no keysym.
func (km keymap) lookup(keycode int) xproto.Keysym {
	if km.perCode == 0 {
		return 0
	}
	i := (keycode - km.min) * km.perCode
	if i < 0 || i >= len(km.keysyms) {
		return 0
	}
	return km.keysyms[i]
}

// names of the keysyms that are most likely to be used for navigation. the
// names are the same as those used by the X server
var keysymNames = map[xproto.Keysym]string{
	0x0020: "space",
	0x002b: "plus",
	0x002c: "comma",
	0x002d: "minus",
	0x002e: "period",
	0x002f: "slash",
	0xff08: "BackSpace",
	0xff09: "Tab",
	0xff0d: "Return",
	0xff13: "Pause",
	0xff1b: "Escape",
	0xff50: "Home",
	0xff51: "Left",
	0xff52: "Up",
	0xff53: "Right",
	0xff54: "Down",
	0xff55: "Page_Up",
	0xff56: "Page_Down",
	0xff57: "End",
	0xff63: "Insert",
	0xff67: "Menu",
	0xff8d: "KP_Enter",
	0xffbe: "F1",
	0xffbf: "F2",
	0xffc0: "F3",
	0xffc1: "F4",
	0xffc2: "F5",
	0xffc3: "F6",
	0xffc4: "F7",
	0xffc5: "F8",
	0xffc6: "F9",
	0xffc7: "F10",
	0xffc8: "F11",
	0xffc9: "F12",
	0xffe1: "Shift_L",
	0xffe2: "Shift_R",
	0xffe3: "Control_L",
	0xffe4: "Control_R",
	0xffe9: "Alt_L",
	0xffea: "Alt_R",
	0xffff: "Delete",
}

// keysymName returns the name of the keysym or the empty string if the
// keysym has no known name.
func keysymName(sym xproto.Keysym) string {
	if n, ok := keysymNames[sym]; ok {
		return n
	}
	if (sym >= '0' && sym <= '9') || (sym >= 'a' && sym <= 'z') || (sym >= 'A' && sym <= 'Z') {
		return string(rune(sym))
	}
	return ""
}
