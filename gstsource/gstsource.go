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

// Package gstsource feeds the frames of a GStreamer pipeline to the
// framebuffer sink. The pipeline is described in gst-launch syntax and is
// terminated by an appsink that converts to the format of the sink.
package gstsource

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// Sentinel patterns for the curated errors returned by this package.
const (
	PipelineError = "gstsource: pipeline: %v"
	FrameError    = "gstsource: frame: %v"
)

// DefaultSource is the source element used if none is given.
const DefaultSource = "videotestsrc pattern=smpte"

// name of the appsink element in the pipeline
const appsinkName = "fbsink"

// FrameSink is the destination for the frames of the pipeline.
type FrameSink interface {
	SetCaps(info fbsink.VideoInfo) error
	ShowFrame(buf fbsink.Buffer) error
}

// Description returns the gst-launch description of a pipeline from the
// source elements to an appsink producing frames of the video format.
func Description(source string, info fbsink.VideoInfo) string {
	if source == "" {
		source = DefaultSource
	}
	return fmt.Sprintf("%s ! videoconvert ! videoscale ! video/x-raw,format=%s,width=%d,height=%d ! appsink name=%s sync=true max-buffers=2 drop=true",
		source, info.Format, info.Width, info.Height, appsinkName)
}

// Source runs a pipeline and passes its frames to a FrameSink.
type Source struct {
	sink FrameSink
	info fbsink.VideoInfo
	desc string

	frames  atomic.Int64
	dropped atomic.Int64
}

// NewSource is the preferred method of initialisation for the Source type.
func NewSource(sink FrameSink, source string, info fbsink.VideoInfo) (*Source, error) {
	if sink == nil {
		return nil, curated.Errorf(PipelineError, "no sink")
	}
	if !info.Valid() {
		return nil, curated.Errorf(PipelineError, fmt.Sprintf("unsupported video %s", info))
	}

	return &Source{
		sink: sink,
		info: info,
		desc: Description(source, info),
	}, nil
}

// Frames returns the number of frames shown and the number dropped because
// of an error.
func (src *Source) Frames() (int, int) {
	return int(src.frames.Load()), int(src.dropped.Load())
}

// deliver shows a frame of pixel data. The data is only used for the
// duration of the call.
func (src *Source) deliver(data []byte) error {
	if len(data) < src.info.Size() {
		src.dropped.Add(1)
		return curated.Errorf(FrameError, fmt.Sprintf("short frame of %d bytes", len(data)))
	}

	err := src.sink.ShowFrame(&fbsink.Frame{
		Info: src.info,
		Data: data,
	})
	if err != nil {
		src.dropped.Add(1)
		return curated.Errorf(FrameError, err)
	}

	src.frames.Add(1)
	return nil
}

func (src *Source) onNewSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		return gst.FlowEOS
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	err := src.deliver(mapInfo.Bytes())
	buffer.Unmap()

	if err != nil {
		logger.Log(logger.Allow, "gstsource", err)
	}

	return gst.FlowOK
}

// Run the pipeline until the end of the stream, an error or until the
// context is cancelled.
func (src *Source) Run(ctx context.Context) error {
	gst.Init(nil)

	logger.Logf(logger.Allow, "gstsource", "%s", src.desc)

	pipeline, err := gst.NewPipelineFromString(src.desc)
	if err != nil {
		return curated.Errorf(PipelineError, err)
	}
	defer pipeline.SetState(gst.StateNull)

	elems, err := pipeline.GetElements()
	if err != nil {
		return curated.Errorf(PipelineError, err)
	}

	var appsink *app.Sink
	for _, e := range elems {
		if e.GetName() == appsinkName {
			appsink = app.SinkFromElement(e)
			break
		}
	}
	if appsink == nil {
		return curated.Errorf(PipelineError, fmt.Sprintf("no element named %s", appsinkName))
	}

	if err := src.sink.SetCaps(src.info); err != nil {
		return err
	}

	appsink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: src.onNewSample,
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return curated.Errorf(PipelineError, err)
	}

	bus := pipeline.GetPipelineBus()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msg := bus.TimedPop(50 * time.Millisecond)
		if msg == nil {
			continue
		}

		switch msg.Type() {
		case gst.MessageEOS:
			frames, dropped := src.Frames()
			logger.Logf(logger.Allow, "gstsource", "end of stream (%d frames, %d dropped)", frames, dropped)
			return nil

		case gst.MessageError:
			gerr := msg.ParseError()
			logger.Logf(logger.Allow, "gstsource", "%s", gerr.DebugString())
			return curated.Errorf(PipelineError, gerr.Error())
		}
	}
}
