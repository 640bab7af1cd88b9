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

package winsys_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/winsys"
)

func TestQueue(t *testing.T) {
	var q winsys.Queue

	q.Push(winsys.MotionEvent{Window: 1, X: 10, Y: 10})
	q.Push(winsys.ConfigureEvent{Window: 1, Width: 100, Height: 100})
	q.Push(winsys.MotionEvent{Window: 2, X: 20, Y: 20})
	q.Push(winsys.MotionEvent{Window: 1, X: 30, Y: 30})

	// wrong window
	_, ok := q.Take(3, winsys.PointerMotionMask)
	test.ExpectFailure(t, ok)

	// events are taken in order for the window
	ev, ok := q.Take(1, winsys.PointerMotionMask)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ev.(winsys.MotionEvent).X, 10)
	ev, ok = q.Take(1, winsys.PointerMotionMask)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ev.(winsys.MotionEvent).X, 30)
	_, ok = q.Take(1, winsys.PointerMotionMask)
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, q.Len(), 2)

	q.Discard(1, winsys.StructureMask|winsys.ExposureMask)
	test.ExpectEquality(t, q.Len(), 1)
}

func TestRegistry(t *testing.T) {
	_, err := winsys.Open("no-such-backend", "")
	test.ExpectSuccess(t, curated.Is(err, winsys.UnknownBackend))

	winsys.Register("failing", func(name string) (winsys.Display, error) {
		return nil, errors.New("cannot connect")
	})
	_, err = winsys.Open("failing", ":1")
	test.ExpectSuccess(t, curated.Is(err, winsys.OpenError))
	test.ExpectEquality(t, err.Error(), "winsys: failing: cannot connect")

	found := false
	for _, b := range winsys.Backends() {
		found = found || b == "failing"
	}
	test.ExpectSuccess(t, found)
}

func TestDisplayName(t *testing.T) {
	test.ExpectEquality(t, winsys.DisplayName(":2"), ":2")

	t.Setenv("DISPLAY", "")
	test.ExpectEquality(t, winsys.DisplayName(""), ":0")

	t.Setenv("DISPLAY", ":1")
	test.ExpectEquality(t, winsys.DisplayName(""), ":1")
}
