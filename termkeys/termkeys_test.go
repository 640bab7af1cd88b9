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

package termkeys

import (
	"testing"

	"github.com/jetsetilly/imxoverlay/test"
)

func TestDecode(t *testing.T) {
	type result struct {
		name string
		n    int
	}

	for _, c := range []struct {
		in       string
		expected result
	}{
		{in: "a", expected: result{"a", 1}},
		{in: "ab", expected: result{"a", 1}},
		{in: "\x1b[A", expected: result{"Up", 3}},
		{in: "\x1b[Bx", expected: result{"Down", 3}},
		{in: "\x1b[C", expected: result{"Right", 3}},
		{in: "\x1b[D", expected: result{"Left", 3}},
		{in: "\x1b[H", expected: result{"Home", 3}},
		{in: "\x1b[3~", expected: result{"Delete", 4}},
		{in: "\x1b[Z", expected: result{"unknown", 3}},
		{in: "\x1b", expected: result{"Escape", 1}},
		{in: "\x1bq", expected: result{"Escape", 1}},
		{in: "\r", expected: result{"Return", 1}},
		{in: "\x7f", expected: result{"BackSpace", 1}},
		{in: "\x03", expected: result{"Interrupt", 1}},
		{in: "é", expected: result{"é", 2}},
	} {
		ev, n := Decode([]byte(c.in))
		test.ExpectEquality(t, result{ev.Name(), n}, c.expected, c.in)
	}
}

func TestIncomplete(t *testing.T) {
	for _, in := range []string{"", "\x1b[", "\x1b[3", "\xc3"} {
		_, n := Decode([]byte(in))
		test.ExpectEquality(t, n, 0, in)
	}
}
