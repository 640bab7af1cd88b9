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

// Package fbsink presents video frames on a Linux framebuffer device by
// panning the display to the physical address of each frame. It is intended
// for i.MX display controllers that can scan out of any physically
// contiguous memory.
//
// The Sink type follows the life cycle of a pipeline element. Moving the
// sink from StateReady to StatePaused opens the framebuffer device and
// starts an overlay.Overlay, which tracks the window the video is to be
// shown in. Moving back to StateReady restores the device to the mode it was
// in when it was opened.
//
// Frames are passed to ShowFrame(). Frames that are already physically
// contiguous are shown directly. Frames backed by a dma-buf have their
// physical address resolved through the dma-buf file descriptor. All other
// frames are copied into a buffer from the sink's Pool first.
//
// Output geometry (the video rectangle, keep-ratio policy and rotation) is
// applied lazily. Changes mark the sink as dirty and the output is
// reconfigured immediately before the next frame is shown.
package fbsink
