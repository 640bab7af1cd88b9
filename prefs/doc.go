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

// Package prefs facilitates the storage of preferences. Preferences are
// values of type Bool, String, Int, Float or Duration. They are safe to read
// and write from more than one goroutine.
//
// Values can be added to a Disk instance with Add(). The Disk type stores the
// values in a YAML file:
//
//	dsk, err := prefs.NewDisk("imxoverlay.yaml")
//	var device prefs.String
//	err = dsk.Add("fbsink.device", &device)
//	err = dsk.Load()
//
// Values given on the command line take precedence over values loaded from
// disk. The command line string is a list of key::value pairs separated by
// semi-colons:
//
//	prefs.PushCommandLineStack("overlay.defer::true; fbsink.device::/dev/fb0")
//
// Each value type can have a hook function called before and after the value
// is set. An error returned by the pre-hook means the value is not set.
package prefs
