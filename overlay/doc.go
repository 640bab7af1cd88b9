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

// Package overlay tracks the window that video is to be shown in and keeps
// the window painted so that the display hardware can composite the video
// layer through it.
//
// The owner of an Overlay is the component producing the video. The owner
// supplies hooks that are called when the on-screen geometry of the video
// changes, when the colour key is enabled or disabled and when the global
// alpha of the video layer should change.
//
// An Overlay uses a Backend. The none backend does nothing and is the
// default. The window backend uses a winsys.Display to read the window
// geometry, to paint the window and to receive window events. Events are
// polled at a fixed interval on a separate goroutine. All access to the
// display is serialised by a mutex which is released while calling the
// owner's hooks, so a hook can safely call back into the Overlay.
//
// Window events that change the layout of the window cause the geometry to
// be recalculated and the window to be repainted. With Config.DeferUpdate,
// bursts of such events are coalesced into a single update once the events
// have stopped for Config.DeferDelay.
package overlay
