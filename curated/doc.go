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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. Errorf() takes a pattern and placeholder values, in the
// same way as fmt.Errorf(), but it is the pattern that identifies the error.
//
// Packages declare their patterns as constants and callers test for them with
// the Is() and Has() functions:
//
//	const DeviceError = "fbsink: device: %v"
//
//	err := curated.Errorf(DeviceError, "/dev/fb1")
//	if curated.Is(err, DeviceError) {
//		...
//	}
//
// Is() matches only the outermost pattern. Has() searches the error chain,
// including errors wrapped with fmt.Errorf("%w").
//
// The Error() function normalises the message by removing duplicate adjacent
// parts. This means a function can prefix an error with its own context
// without worrying whether the callee already did so:
//
//	"fbsink: fbsink: pan display failed" -> "fbsink: pan display failed"
package curated
