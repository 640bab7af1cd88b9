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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("v", false, "verbose output")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		fmt.Printf("* error: %v\n", err)
//		return
//	}
//
// Modes are added with AddSubModes(). The first sub-mode is the default and
// is selected if the first non-flag argument is not a listed sub-mode. After
// Parse(), the Mode() function returns the selected mode. The next layer of
// flags is parsed by calling NewMode() and Parse() again:
//
//	md.AddSubModes("OVERLAY", "FBSINK", "ENCODE")
//	p, err := md.Parse()
//	...
//	switch md.Mode() {
//	case "FBSINK":
//		md.NewMode()
//		device := md.AddString("device", "/dev/fb1", "framebuffer device")
//		p, err := md.Parse()
//		...
//	}
//
// Sub-mode comparisons are case insensitive. Help messages for the flags and
// the available sub-modes are printed automatically when the -help flag is
// encountered.
package modalflag
