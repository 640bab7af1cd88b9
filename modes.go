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
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/jetsetilly/imxoverlay/gstsource"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/modalflag"
	"github.com/jetsetilly/imxoverlay/mp3enc"
	"github.com/jetsetilly/imxoverlay/paths"
	"github.com/jetsetilly/imxoverlay/pcm"
	"github.com/jetsetilly/imxoverlay/testcard"
	"github.com/jetsetilly/imxoverlay/wavwriter"
	"github.com/jetsetilly/imxoverlay/winsys"
)

func fbsinkMode(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	cmn := addCommon(md)
	ovf := addOverlayFlags(md)

	device := md.AddString("device", fbsink.DefaultDevice, "framebuffer the video is shown on")
	primary := md.AddString("primary", fbsink.PrimaryDevice, "framebuffer of the display")
	rotate := md.AddString("rotate", fbsink.RotateIdentity.String(), "video direction")
	keepRatio := md.AddBool("keepratio", true, "keep the aspect ratio of the video")
	width := md.AddInt("width", 640, "width of the video")
	height := md.AddInt("height", 480, "height of the video")
	fps := md.AddInt("fps", 25, "frame rate of the test card")
	frames := md.AddInt("frames", 0, "number of frames to show (zero is unlimited)")
	gst := md.AddBool("gst", false, "show frames from a GStreamer pipeline rather than the test card")
	source := md.AddString("source", gstsource.DefaultSource, "source elements of the GStreamer pipeline")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := cmn.apply(md.Output)
	if err != nil {
		return err
	}

	set := explicitly(md)
	ovcfg, _ := ovf.config(prf, set)

	s, err := fbsink.NewSink(fbsink.Config{
		Primary: *primary,
		Overlay: ovcfg,
		Notify:  notices{},
	})
	if err != nil {
		return err
	}
	defer s.Close()

	prf.fbsink.Apply(s)
	if set["device"] {
		s.SetDevice(*device)
	}
	if set["rotate"] {
		r, err := fbsink.ParseRotation(*rotate)
		if err != nil {
			return err
		}
		s.SetRotation(r)
	}
	if set["keepratio"] {
		s.SetKeepRatio(*keepRatio)
	}

	if *ovf.window != 0 {
		s.SetWindowHandle(winsys.Handle(*ovf.window))
	} else {
		s.Overlay().PrepareWindowHandle(true)
	}

	// the sink is stopped cleanly on ctrl-c
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := fbsink.VideoInfo{
		Format: fbsink.FormatBGRA,
		Width:  *width,
		Height: *height,
	}

	err = cmn.profiled(md.Output, md.Mode(), func() error {
		if *gst {
			return showPipeline(ctx, s, *source, info)
		}
		return showTestcard(ctx, s, info, *fps, *frames)
	})

	// the summary is only available once the sink has left StatePaused
	if serr := s.SetState(fbsink.StateReady); err == nil {
		err = serr
	}

	fmt.Fprintln(md.Output, s.Summary())

	return err
}

// showTestcard shows test card frames at the frame rate until the number of
// frames has been shown or the context is cancelled. A frames value of zero
// means no limit.
func showTestcard(ctx context.Context, s *fbsink.Sink, info fbsink.VideoInfo, fps int, frames int) error {
	if fps <= 0 {
		return fmt.Errorf("frame rate must be positive")
	}

	card, err := testcard.New(info, color.White)
	if err != nil {
		return err
	}

	if err := s.SetState(fbsink.StatePaused); err != nil {
		return err
	}
	if err := s.SetCaps(card.Info()); err != nil {
		return err
	}
	if err := s.SetState(fbsink.StatePlaying); err != nil {
		return err
	}

	tck := time.NewTicker(time.Second / time.Duration(fps))
	defer tck.Stop()

	for n := 0; frames == 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-tck.C:
		}

		f, err := card.Frame(n)
		if err != nil {
			return err
		}
		if err := s.ShowFrame(f); err != nil {
			return err
		}
	}

	return nil
}

// showPipeline runs the GStreamer pipeline until the end of the stream or
// until the context is cancelled.
func showPipeline(ctx context.Context, s *fbsink.Sink, source string, info fbsink.VideoInfo) error {
	src, err := gstsource.NewSource(s, source, info)
	if err != nil {
		return err
	}

	if err := s.SetState(fbsink.StatePlaying); err != nil {
		return err
	}

	err = src.Run(ctx)

	shown, dropped := src.Frames()
	logger.Logf(logger.Allow, "gstsource", "%d frames shown, %d dropped", shown, dropped)

	return err
}

func encode(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("arguments: [input.wav] output.mp3")

	cmn := addCommon(md)

	bitrate := md.AddInt("bitrate", mp3enc.DefaultBitrate, "bitrate in kbps")
	quality := md.AddInt("quality", int(mp3enc.DefaultQuality), "encoding quality: 0 (low) or 1 (high)")
	tone := md.AddDuration("tone", 0, "encode a test tone of this duration instead of a wav file")
	freq := md.AddFloat64("freq", 440.0, "frequency of the test tone")
	rate := md.AddInt("rate", 44100, "sample rate of the test tone")
	channels := md.AddInt("channels", 2, "number of channels in the test tone")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := cmn.apply(md.Output)
	if err != nil {
		return err
	}

	set := explicitly(md)
	if set["bitrate"] {
		if err := prf.mp3enc.Bitrate.Set(*bitrate); err != nil {
			return err
		}
	}
	if set["quality"] {
		if err := prf.mp3enc.Quality.Set(*quality); err != nil {
			return err
		}
	}

	var a pcm.Audio
	var output string

	switch len(md.RemainingArgs()) {
	case 1:
		if *tone <= 0 {
			return fmt.Errorf("input wav file or test tone required for %s mode", md)
		}
		a = pcm.Tone(*rate, *channels, *freq, *tone)
		output = md.GetArg(0)
	case 2:
		a, err = readWAV(md.GetArg(0))
		if err != nil {
			return err
		}
		output = md.GetArg(1)
	default:
		return fmt.Errorf("output file required for %s mode", md)
	}

	core, err := mp3enc.HardwareCore()
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	var frames int
	err = cmn.profiled(md.Output, md.Mode(), func() error {
		var err error
		frames, err = encodeAudio(md.Output, core, prf.mp3enc.Params(a.SampleRate, a.Channels), a, f)
		return err
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "encoded %s to %s (%d frames)\n", a, output, frames)

	return nil
}

// the number of samples passed to the encoder in one call
const encodeChunk = 4096

// encodeAudio encodes the audio with the core and writes the result. Returns
// the number of frames encoded.
func encodeAudio(output io.Writer, core mp3enc.Core, params mp3enc.Params, a pcm.Audio, w io.Writer) (int, error) {
	enc, err := mp3enc.NewEncoder(core, params)
	if err != nil {
		return 0, err
	}
	defer func() {
		_, _ = enc.Close()
	}()

	fmt.Fprintf(output, "encoder: %s (%s)\n", enc.Version(), enc.Params())

	for i := 0; i < len(a.Samples); i += encodeChunk {
		b, err := enc.Encode(a.Samples[i:min(i+encodeChunk, len(a.Samples))])
		if err != nil {
			return enc.Frames(), err
		}
		if _, err := w.Write(b); err != nil {
			return enc.Frames(), err
		}
	}

	b, err := enc.Close()
	if err != nil {
		return enc.Frames(), err
	}
	if _, err := w.Write(b); err != nil {
		return enc.Frames(), err
	}

	return enc.Frames(), nil
}

func readWAV(filename string) (pcm.Audio, error) {
	f, err := os.Open(filename)
	if err != nil {
		return pcm.Audio{}, err
	}
	defer f.Close()
	return pcm.ReadWAV(f)
}

func verify(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("arguments: encoded.mp3 [source.wav]")

	cmn := addCommon(md)

	tolerance := md.AddDuration("tolerance", 100*time.Millisecond, "allowed difference in duration")
	wav := md.AddString("wav", "", "write the decoded audio to a wav file")
	keep := md.AddBool("keep", false, "keep the decoded audio as a wav file in the resource directory")
	tone := md.AddDuration("tone", 0, "compare with a test tone of this duration instead of a wav file")
	freq := md.AddFloat64("freq", 440.0, "frequency of the test tone")
	rate := md.AddInt("rate", 44100, "sample rate of the test tone")
	channels := md.AddInt("channels", 2, "number of channels in the test tone")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if _, err := cmn.apply(md.Output); err != nil {
		return err
	}

	var source pcm.Audio
	var sourceName string

	switch len(md.RemainingArgs()) {
	case 1:
		if *tone <= 0 {
			return fmt.Errorf("source wav file or test tone required for %s mode", md)
		}
		source = pcm.Tone(*rate, *channels, *freq, *tone)
		sourceName = "tone"
	case 2:
		sourceName = md.GetArg(1)
		source, err = readWAV(sourceName)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("encoded file required for %s mode", md)
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	rep, verr := pcm.Verify(f, source, *tolerance)
	fmt.Fprintln(md.Output, rep)

	out := *wav
	if out == "" && *keep {
		out, err = paths.ResourcePath("verify", paths.UniqueFilename("verify", sourceName)+".wav")
		if err != nil {
			return err
		}
	}

	if out != "" && rep.Decoded.Frames() > 0 {
		if err := writeWAV(out, rep.Decoded); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "decoded audio written to %s\n", filepath.Clean(out))
	}

	return verr
}

func writeWAV(filename string, a pcm.Audio) error {
	aw, err := wavwriter.New(filename)
	if err != nil {
		return err
	}
	if err := aw.Write(a); err != nil {
		return err
	}
	return aw.Close()
}
