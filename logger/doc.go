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

// Package logger is the central log for the imxoverlay components. Log entries
// are made of a tag and a detail string. Entries that repeat the previous
// entry exactly are not added again, the previous entry is instead marked as
// repeated.
//
//	logger.Log(logger.Allow, "fbsink", "display unblanked")
//	logger.Logf(logger.Allow, "overlay", "geometry %s", rect)
//
// The log is bounded in length. Entries are echoed to an io.Writer if
// SetEcho() has been called.
//
// The Permission argument allows a component to decide whether logging is
// appropriate. For example, a component can stop logging repeated hardware
// errors after the first occurrence. Use logger.Allow when an entry should
// always be made.
package logger
