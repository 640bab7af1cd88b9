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

package logger_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/test"
)

func TestLogger(t *testing.T) {
	tw := &test.Writer{}
	log := logger.NewLogger(10)

	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\n")

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	log.Log(logger.Allow, "test2", errors.New("this is another test"))
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	log.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	log.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	log.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRepeats(t *testing.T) {
	tw := &test.Writer{}
	log := logger.NewLogger(10)

	log.Logf(logger.Allow, "x11", "window %d", 10)
	log.Logf(logger.Allow, "x11", "window %d", 10)
	log.Logf(logger.Allow, "x11", "window %d", 10)
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "x11: window 10 (repeat x3)\n")
}

func TestMaximum(t *testing.T) {
	log := logger.NewLogger(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		log.Log(logger.Allow, "tag", s)
	}
	e := log.Entries()
	test.DemandEquality(t, len(e), 3)
	test.ExpectEquality(t, e[0].Detail, "c")
	test.ExpectEquality(t, e[2].Detail, "e")
}

func TestPermission(t *testing.T) {
	tw := &test.Writer{}
	log := logger.NewLogger(10)
	log.SetEcho(tw)

	var once logger.Once
	log.Log(&once, "fbsink", "pan failed")
	log.Log(&once, "fbsink", "pan failed again")
	test.ExpectEquality(t, tw.String(), "fbsink: pan failed\n")
}
