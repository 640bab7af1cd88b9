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


package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/jetsetilly/imxoverlay/modalflag"
	"github.com/jetsetilly/imxoverlay/mp3enc"
	"github.com/jetsetilly/imxoverlay/overlay"
	"github.com/jetsetilly/imxoverlay/pcm"
	"github.com/jetsetilly/imxoverlay/test"
	"github.com/jetsetilly/imxoverlay/version"
)

// runLaunch runs launch() with the arguments and returns the state request it
// finishes with.
func runLaunch(t *testing.T, args ...string) (stateRequest, string) {
	t.Helper()

	// preferences are written to a temporary config directory
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var output bytes.Buffer
	sync := &mainSync{state: make(chan stateRequest)}
	go launch(sync, &output, args)

	select {
	case req := <-sync.state:
		return req, output.String()
	case <-time.After(5 * time.Second):
		t.Fatalf("launch did not finish")
	}
	return stateRequest{}, ""
}

func TestLaunchHelp(t *testing.T) {
	req, out := runLaunch(t, "-help")
	test.ExpectEquality(t, req.req, reqQuit)
	test.ExpectEquality(t, req.args, nil)
	test.ExpectSuccess(t, strings.Contains(out, "OVERLAY, FBSINK, ENCODE, VERIFY"))
}

func TestLaunchVersion(t *testing.T) {
	req, out := runLaunch(t, "-version")
	test.ExpectEquality(t, req.args, nil)
	test.ExpectSuccess(t, strings.HasPrefix(out, version.ApplicationName))
}

func TestLaunchError(t *testing.T) {
	req, out := runLaunch(t, "-nosuchflag")
	test.ExpectEquality(t, req.req, reqQuit)
	test.ExpectEquality(t, req.args, 10)
	test.ExpectSuccess(t, strings.HasPrefix(out, "* error:"))

	// ENCODE mode without an output file
	req, out = runLaunch(t, "ENCODE")
	test.ExpectEquality(t, req.req, reqQuit)
	test.ExpectEquality(t, req.args, 20)
	test.ExpectSuccess(t, strings.HasPrefix(out, "* error in ENCODE mode:"))

	// VERIFY mode with a missing encoded file
	req, out = runLaunch(t, "VERIFY", "-tone", "1s", filepath.Join(t.TempDir(), "missing.mp3"))
	test.ExpectEquality(t, req.args, 20)
	test.ExpectSuccess(t, strings.HasPrefix(out, "* error in VERIFY mode:"))
}

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefsFile)

	p, err := newPreferences(pth, "mp3enc.bitrate::192; overlay.backend::fake; fbsink.rotation::90r")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.mp3enc.Bitrate.Get(), 192)
	test.ExpectEquality(t, p.overlay.Backend.String(), "fake")
	test.ExpectEquality(t, p.fbsink.Rotation.String(), "90r")
	test.ExpectEquality(t, p.mp3enc.Quality.Get(), int(mp3enc.DefaultQuality))
	test.DemandSuccess(t, p.dsk.Save())

	// values saved to disk are loaded by a new instance
	p, err = newPreferences(pth, "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.mp3enc.Bitrate.Get(), 192)
	test.ExpectEquality(t, p.overlay.Backend.String(), "fake")

	// the command line takes precedence over the disk
	p, err = newPreferences(pth, "mp3enc.bitrate::320")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.mp3enc.Bitrate.Get(), 320)

	// invalid values are rejected by the preference hooks
	_, err = newPreferences(pth, "mp3enc.bitrate::100")
	test.ExpectFailure(t, err)
}

func TestOverlayFlags(t *testing.T) {
	p, err := newPreferences(filepath.Join(t.TempDir(), prefsFile), "overlay.deferupdate::true")
	test.DemandSuccess(t, err)

	md := &modalflag.Modes{}
	md.NewArgs([]string{"-backend", "fake"})
	md.NewMode()
	ovf := addOverlayFlags(md)
	r, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, r, modalflag.ParseContinue)

	cfg, fake := ovf.config(p, explicitly(md))
	test.ExpectEquality(t, cfg.Backend, fakeBackend)
	test.ExpectSuccess(t, cfg.DeferUpdate)
	test.ExpectSuccess(t, cfg.PrepareWindow)
	test.DemandSuccess(t, fake != nil)
	test.ExpectSuccess(t, fake.HasWindow(fakeWindow))

	// hooks are called from the poller goroutine
	d := &demo{output: io.Discard, fake: fake}
	test.ExpectEquality(t, d.PrepareWindow(), fakeWindow)

	// the fake display is used by the overlay
	ov, err := overlay.NewOverlay(d, d.hooks(), cfg)
	test.DemandSuccess(t, err)
	defer ov.Finalize()
	ov.Start()
	ov.PrepareWindowHandle(true)
	test.ExpectEquality(t, ov.Window(), fakeWindow)
}

func TestDemoMove(t *testing.T) {
	p, err := newPreferences(filepath.Join(t.TempDir(), prefsFile), "overlay.backend::fake")
	test.DemandSuccess(t, err)

	md := &modalflag.Modes{}
	md.NewArgs(nil)
	md.NewMode()
	ovf := addOverlayFlags(md)
	_, err = md.Parse()
	test.DemandSuccess(t, err)

	_, fake := ovf.config(p, explicitly(md))
	d := &demo{output: &bytes.Buffer{}, fake: fake}

	d.move(fakeStep, -fakeStep, 0, 0)
	r, err := fake.Attributes(fakeWindow)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r, fakeWindowRect.Translate(fakeStep, -fakeStep))

	// the window never shrinks below one step
	for range fakeWindowRect.W {
		d.move(0, 0, -fakeStep, -fakeStep)
	}
	r, err = fake.Attributes(fakeWindow)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.W, fakeStep)
	test.ExpectEquality(t, r.H, fakeStep)

	// without the fake backend nothing happens
	d = &demo{output: &bytes.Buffer{}}
	d.move(fakeStep, fakeStep, 0, 0)
	test.ExpectEquality(t, d.PrepareWindow(), 0)
}

// counting core produces one byte for every frame and one byte on flush.
type countingCore struct {
	frames int
}

func (c *countingCore) QueryMem() ([]mp3enc.MemBlock, mp3enc.RetVal) {
	blocks := make([]mp3enc.MemBlock, mp3enc.NumMemBlocks)
	for i := range blocks {
		blocks[i] = mp3enc.MemBlock{Type: mp3enc.FastStatic, Size: 64, Align: 4}
	}
	return blocks, mp3enc.Success
}

func (c *countingCore) Init(_ mp3enc.Params, _ []mp3enc.MemBlock) (int, mp3enc.RetVal) {
	return mp3enc.MaxOutput, mp3enc.Success
}

func (c *countingCore) EncodeFrame(_ []int16, out []byte) int {
	c.frames++
	out[0] = byte(c.frames)
	return 1
}

func (c *countingCore) Flush(out []byte) int {
	out[0] = 0xff
	return 1
}

func (c *countingCore) Version() string {
	return "counting core"
}

func TestEncodeAudio(t *testing.T) {
	// 10 whole frames and part of another
	a := pcm.Audio{
		SampleRate: 44100,
		Channels:   2,
		Samples:    make([]int16, (mp3enc.FrameSamples*10+100)*2),
	}

	params := mp3enc.Params{
		SampleRate: a.SampleRate,
		Bitrate:    mp3enc.DefaultBitrate,
		Channels:   a.Channels,
		Quality:    mp3enc.DefaultQuality,
	}

	var output bytes.Buffer
	var encoded bytes.Buffer
	n, err := encodeAudio(&output, &countingCore{}, params, a, &encoded)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 10)
	test.ExpectSuccess(t, bytes.Equal(encoded.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 0xff}))
	test.ExpectSuccess(t, strings.Contains(output.String(), "counting core"))

	// unsupported sample rate
	params.SampleRate = 8000
	_, err = encodeAudio(&output, &countingCore{}, params, a, &encoded)
	test.ExpectFailure(t, err)
}

func TestShowTestcard(t *testing.T) {
	info := fbsink.VideoInfo{Format: fbsink.FormatNV12, Width: 64, Height: 48}

	// the test card only supports BGRA
	err := showTestcard(t.Context(), nil, info, 25, 1)
	test.ExpectFailure(t, err)

	err = showTestcard(t.Context(), nil, info, 0, 1)
	test.ExpectFailure(t, err)
}
