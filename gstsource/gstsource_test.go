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

package gstsource

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/jetsetilly/imxoverlay/test"
)

type sink struct {
	shown []fbsink.VideoInfo
	fail  bool
}

func (s *sink) SetCaps(_ fbsink.VideoInfo) error {
	return nil
}

func (s *sink) ShowFrame(buf fbsink.Buffer) error {
	if s.fail {
		return fmt.Errorf("pan failed")
	}
	s.shown = append(s.shown, buf.Meta())
	return nil
}

var info = fbsink.VideoInfo{Format: fbsink.FormatBGRA, Width: 64, Height: 32}

func TestDescription(t *testing.T) {
	test.ExpectEquality(t, Description("", info),
		"videotestsrc pattern=smpte ! videoconvert ! videoscale ! video/x-raw,format=BGRA,width=64,height=32 ! appsink name=fbsink sync=true max-buffers=2 drop=true")
	test.ExpectEquality(t, Description("filesrc location=a.mp4 ! decodebin", info),
		"filesrc location=a.mp4 ! decodebin ! videoconvert ! videoscale ! video/x-raw,format=BGRA,width=64,height=32 ! appsink name=fbsink sync=true max-buffers=2 drop=true")
}

func TestNewSource(t *testing.T) {
	_, err := NewSource(nil, "", info)
	test.ExpectSuccess(t, curated.Is(err, PipelineError))

	_, err = NewSource(&sink{}, "", fbsink.VideoInfo{})
	test.ExpectSuccess(t, curated.Is(err, PipelineError))
}

func TestDeliver(t *testing.T) {
	s := &sink{}
	src, err := NewSource(s, "", info)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, src.deliver(make([]byte, info.Size())))
	test.DemandEquality(t, len(s.shown), 1)
	test.ExpectEquality(t, s.shown[0], info)

	err = src.deliver(make([]byte, 10))
	test.ExpectSuccess(t, curated.Is(err, FrameError))

	s.fail = true
	err = src.deliver(make([]byte, info.Size()))
	test.ExpectSuccess(t, curated.Is(err, FrameError))

	frames, dropped := src.Frames()
	test.ExpectEquality(t, frames, 1)
	test.ExpectEquality(t, dropped, 2)
}
