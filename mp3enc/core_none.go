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

//go:build !imxmp3

package mp3enc

import (
	"github.com/jetsetilly/imxoverlay/curated"
)

// HardwareCore returns the Core for the i.MX encoder library. This build
// does not include the library.
func HardwareCore() (Core, error) {
	return nil, curated.Errorf(UnavailableError, "built without the imxmp3 tag")
}
