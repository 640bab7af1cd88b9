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

package winsys

// Queue of events waiting to be taken with Take(). Display implementations
// that receive events for all windows in a single stream use a Queue to
// implement the CheckEvent() function.
//
// Queue is not safe for concurrent use.
type Queue struct {
	events []Event
}

// Push event onto the end of the queue.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Take removes and returns the first event for the window that matches the
// mask. Events that do not match are left in the queue in the same order.
func (q *Queue) Take(win Handle, mask EventMask) (Event, bool) {
	for i, ev := range q.events {
		if ev.Target() == win && ev.Mask()&mask != 0 {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return ev, true
		}
	}
	return nil, false
}

// Discard all events for the window that match the mask.
func (q *Queue) Discard(win Handle, mask EventMask) {
	n := q.events[:0]
	for _, ev := range q.events {
		if ev.Target() != win || ev.Mask()&mask == 0 {
			n = append(n, ev)
		}
	}
	q.events = n
}

// Len returns the number of events in the queue.
func (q *Queue) Len() int {
	return len(q.events)
}
