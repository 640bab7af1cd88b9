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

package fbsink

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/geometry"
	"github.com/jetsetilly/imxoverlay/logger"
	"github.com/jetsetilly/imxoverlay/notifications"
	"github.com/jetsetilly/imxoverlay/overlay"
	"github.com/jetsetilly/imxoverlay/winsys"
)

// Default device paths.
const (
	DefaultDevice = "/dev/fb1"
	PrimaryDevice = "/dev/fb0"
)

// Sentinel patterns for the curated errors returned by this package.
const (
	StateError  = "fbsink: cannot change state from %s to %s"
	DeviceError = "fbsink: device: %v"
	CapsError   = "fbsink: caps: %v"
	FrameError  = "fbsink: frame: %v"
	PanError    = "fbsink: pan display: %v"
)

// State of the sink.
type State int

// List of valid State values. A sink can only move between adjacent states.
const (
	StateNull State = iota
	StateReady
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StateReady:
		return "ready"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config for a new Sink. The zero value is valid.
type Config struct {
	// framebuffer the video is shown on. empty string means DefaultDevice
	Device string

	// framebuffer used to find the size of the display. empty string means
	// PrimaryDevice. the display mode of the primary device is never changed
	Primary string

	// opens a framebuffer device. nil means OpenDevice()
	Open func(path string) (Device, error)

	// allocates memory for the buffer pool. nil means a DMAHeap with the
	// default heap
	Allocator Allocator

	// resolves the physical address of a dma-buf. nil means PhysAddr()
	Resolve func(fd int) (uintptr, error)

	// configuration of the overlay that tracks the video window
	Overlay overlay.Config

	// notifications are sent here if it is not nil
	Notify notifications.Notify

	// clock used for the frame rate statistics. nil means time.Now()
	Now func() time.Time
}

func (cfg *Config) normalise() {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.Primary == "" {
		cfg.Primary = PrimaryDevice
	}
	if cfg.Open == nil {
		cfg.Open = OpenDevice
	}
	if cfg.Allocator == nil {
		cfg.Allocator = DMAHeap{}
	}
	if cfg.Resolve == nil {
		cfg.Resolve = PhysAddr
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}

// Stats are the frame statistics of the sink.
type Stats struct {
	Device  string
	Frames  int
	RunTime time.Duration
}

// FPS returns the average number of frames shown per second while playing.
func (st Stats) FPS() float64 {
	if st.RunTime <= 0 {
		return 0
	}
	return float64(st.Frames) / st.RunTime.Seconds()
}

func (st Stats) String() string {
	return fmt.Sprintf("total showed frames (%d), device %s, playing for (%v), fps (%.3f)",
		st.Frames, st.Device, st.RunTime, st.FPS())
}

// Sink shows video frames on a framebuffer device.
type Sink struct {
	id      string
	cfg     Config
	overlay *overlay.Overlay

	// crit guards every field below. it is never held while calling the
	// overlay
	crit sync.Mutex

	state     State
	device    string
	rotation  Rotation
	keepRatio bool

	dev      Device
	displayW int
	displayH int

	stored    VarScreenInfo
	varStored bool
	varinfo   VarScreenInfo
	fixinfo   FixScreenInfo

	info    VideoInfo
	hasCaps bool
	crop    geometry.Rect

	// area of the display the video is to be shown in and the area actually
	// used once keep-ratio and rotation have been applied
	videoGeo geometry.Rect
	output   geometry.Rect
	dirty    bool

	pool *Pool
	last Buffer

	frames    int
	unblanked bool
	playing   time.Time
	runTime   time.Duration
	summary   Stats
}

// NewSink is the preferred method of initialisation for the Sink type. The
// sink is created in StateNull.
func NewSink(cfg Config) (*Sink, error) {
	cfg.normalise()

	s := &Sink{
		id:        uuid.NewString(),
		cfg:       cfg,
		device:    cfg.Device,
		keepRatio: true,
	}

	var err error
	s.overlay, err = overlay.NewOverlay(s, overlay.Hooks{
		Geometry: func(_ overlay.Owner, r geometry.Rect) bool {
			return s.UpdateGeometry(r)
		},
	}, cfg.Overlay)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Name implements the overlay.Owner interface.
func (s *Sink) Name() string {
	return fmt.Sprintf("fbsink %s", s.id[:8])
}

// ID returns the unique identifier of the sink.
func (s *Sink) ID() string {
	return s.id
}

// Overlay returns the overlay used to track the video window.
func (s *Sink) Overlay() *overlay.Overlay {
	return s.overlay
}

// SetWindowHandle sets the window the video is shown in.
func (s *Sink) SetWindowHandle(win winsys.Handle) {
	s.overlay.SetWindowHandle(win)
}

// Expose redraws the video window.
func (s *Sink) Expose() {
	s.overlay.Expose()
}

// HandleEvents enables or disables the processing of events for the video
// window.
func (s *Sink) HandleEvents(enable bool) {
	s.overlay.HandleEvents(enable)
}

// SetRenderRectangle sets the area of the window the video is shown in.
func (s *Sink) SetRenderRectangle(x, y, w, h int) error {
	return s.overlay.SetRenderRectangle(x, y, w, h)
}

// State returns the current state of the sink.
func (s *Sink) State() State {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.state
}

// SetState moves the sink through every intermediate state to the requested
// state.
func (s *Sink) SetState(to State) error {
	for {
		from := s.State()
		switch {
		case from < to:
			if err := s.ChangeState(from, from+1); err != nil {
				return err
			}
		case from > to:
			if err := s.ChangeState(from, from-1); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// ChangeState moves the sink between two adjacent states. The from argument
// must be the current state.
func (s *Sink) ChangeState(from, to State) error {
	s.crit.Lock()

	if s.state != from || (to != from+1 && to != from-1) || to < StateNull || to > StatePlaying {
		s.crit.Unlock()
		return curated.Errorf(StateError, from, to)
	}

	var err error

	switch {
	case from == StateReady && to == StatePaused:
		err = s.start()
	case from == StatePaused && to == StatePlaying:
		s.playing = s.cfg.Now()
	case from == StatePlaying && to == StatePaused:
		s.runTime += s.cfg.Now().Sub(s.playing)
	case from == StatePaused && to == StateReady:
		err = s.stop()
	}

	if err == nil {
		s.state = to
	}

	s.crit.Unlock()

	if err != nil {
		return err
	}

	// starting the overlay calls UpdateGeometry() if there is a window so
	// this must happen outside of the critical section
	switch {
	case from == StateReady && to == StatePaused:
		s.overlay.Start()
	case from == StatePaused && to == StateReady:
		s.overlay.Stop()
	}

	return nil
}

// start opens the device. must be called with the critical section held.
func (s *Sink) start() error {
	s.frames = 0
	s.runTime = 0
	s.dirty = true
	s.varStored = false
	s.unblanked = false
	s.hasCaps = false

	prim, err := s.cfg.Open(s.cfg.Primary)
	if err != nil {
		return curated.Errorf(DeviceError, err)
	}

	var v VarScreenInfo
	err = prim.GetVarScreenInfo(&v)
	_ = prim.Close()
	if err != nil {
		return curated.Errorf(DeviceError, err)
	}
	s.displayW = int(v.XRes)
	s.displayH = int(v.YRes)

	s.dev, err = s.cfg.Open(s.device)
	if err != nil {
		return curated.Errorf(DeviceError, err)
	}

	logger.Logf(logger.Allow, "fbsink", "%s: display is %dx%d", s.device, s.displayW, s.displayH)

	return nil
}

// stop restores and closes the device. must be called with the critical
// section held.
func (s *Sink) stop() error {
	s.summary = Stats{Device: s.device, Frames: s.frames, RunTime: s.runTime}
	if s.runTime > 0 {
		logger.Log(logger.Allow, "fbsink", s.summary)
	}

	s.frames = 0
	s.runTime = 0

	s.releaseLast()
	s.dropPool()

	if s.dev == nil {
		return nil
	}

	if s.device != s.cfg.Primary && s.unblanked {
		if err := s.dev.Blank(BlankNormal); err != nil {
			logger.Logf(logger.Allow, "fbsink", "%v", err)
		}
	}

	var err error
	if s.varStored {
		if e := s.dev.PutVarScreenInfo(&s.stored); e != nil {
			err = curated.Errorf(DeviceError, e)
		}
	}

	if e := s.dev.Close(); e != nil && err == nil {
		err = curated.Errorf(DeviceError, e)
	}
	s.dev = nil

	return err
}

// must be called with the critical section held.
func (s *Sink) releaseLast() {
	if pb, ok := s.last.(*PoolBuffer); ok {
		pb.Release()
	}
	s.last = nil
}

// must be called with the critical section held.
func (s *Sink) dropPool() {
	if s.pool == nil {
		return
	}
	if err := s.pool.SetActive(false); err != nil {
		logger.Logf(logger.Allow, "fbsink", "pool: %v", err)
	}
	s.pool = nil
}

// Summary returns the statistics of the most recent playback. The summary is
// updated when the sink moves from StatePaused to StateReady.
func (s *Sink) Summary() Stats {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.summary
}

// Stats returns the statistics of the current playback.
func (s *Sink) Stats() Stats {
	s.crit.Lock()
	defer s.crit.Unlock()

	st := Stats{Device: s.device, Frames: s.frames, RunTime: s.runTime}
	if s.state == StatePlaying {
		st.RunTime += s.cfg.Now().Sub(s.playing)
	}
	return st
}

// SetCaps sets the format of the frames that will be passed to ShowFrame().
// The sink must be in StatePaused or StatePlaying.
//
// If the device is not the primary display, the device is programmed with
// the resolution and format of the video.
func (s *Sink) SetCaps(info VideoInfo) error {
	s.crit.Lock()
	defer s.crit.Unlock()

	if s.dev == nil {
		return curated.Errorf(CapsError, "device not open")
	}
	if !info.Valid() {
		return curated.Errorf(CapsError, fmt.Sprintf("unsupported video %s", info))
	}

	if !s.varStored {
		if err := s.dev.GetVarScreenInfo(&s.stored); err != nil {
			return curated.Errorf(CapsError, err)
		}
		s.varStored = true
	}
	s.varinfo = s.stored

	if s.device != s.cfg.Primary {
		s.varinfo.XOffset = 0
		s.varinfo.XRes = uint32(info.Width)
		s.varinfo.XResVirtual = uint32(info.Width)
		s.varinfo.YOffset = 0
		s.varinfo.YRes = uint32(info.Height)
		s.varinfo.YResVirtual = uint32(info.Height)
		s.varinfo.Activate |= ActivateForce
		s.varinfo.Grayscale = uint32(info.Format)

		if err := s.dev.PutVarScreenInfo(&s.varinfo); err != nil {
			return curated.Errorf(CapsError, err)
		}
	}

	if err := s.dev.GetFixScreenInfo(&s.fixinfo); err != nil {
		return curated.Errorf(CapsError, err)
	}
	if err := s.dev.GetVarScreenInfo(&s.varinfo); err != nil {
		return curated.Errorf(CapsError, err)
	}

	logger.Logf(logger.Allow, "fbsink", "%s (%s): %s, var %dx%d virtual %dx%d",
		s.device, s.fixinfo.Name(), info,
		s.varinfo.XRes, s.varinfo.YRes, s.varinfo.XResVirtual, s.varinfo.YResVirtual)

	if s.videoGeo.W == 0 {
		s.videoGeo = geometry.Rect{W: s.displayW, H: s.displayH}
	}

	if s.pool != nil && s.pool.Config().Info != info {
		s.releaseLast()
		s.dropPool()
	}

	s.info = info
	s.hasCaps = true
	s.dirty = true

	return nil
}

// ProposeAllocation returns the configuration of the sink's buffer pool for
// frames described by info. A pool is created if one does not exist or if
// the existing pool is for different frames.
func (s *Sink) ProposeAllocation(info VideoInfo) (PoolConfig, error) {
	if !info.Valid() {
		return PoolConfig{}, curated.Errorf(CapsError, fmt.Sprintf("unsupported video %s", info))
	}

	s.crit.Lock()
	defer s.crit.Unlock()

	if s.pool != nil && s.pool.Config().Info != info {
		s.releaseLast()
		s.dropPool()
	}

	if s.pool == nil {
		s.pool = NewPool(s.cfg.Allocator, ProposeAllocation(info))
	}

	return s.pool.Config(), nil
}

// Pool returns the buffer pool created by ProposeAllocation(). Frame
// producers can acquire buffers from the pool and pass them to ShowFrame()
// to avoid a copy. The result is nil if there is no pool.
func (s *Sink) Pool() *Pool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.pool
}

// ShowFrame pans the display to the frame.
//
// The sink takes ownership of buffers acquired from its Pool. They are
// released when the next frame is shown or when the sink is stopped.
func (s *Sink) ShowFrame(buf Buffer) error {
	if buf == nil {
		return curated.Errorf(FrameError, "no buffer")
	}

	var notices []notifications.Notice
	defer func() {
		for _, n := range notices {
			s.notify(n)
		}
	}()

	s.crit.Lock()
	defer s.crit.Unlock()

	if s.dev == nil {
		return curated.Errorf(FrameError, "device not open")
	}

	if c, ok := buf.Crop(); ok && c != s.crop {
		s.crop = c
		logger.Logf(logger.Allow, "fbsink", "crop %s", c)
	}

	phys := buf.PhysAddr()
	var copied *PoolBuffer

	if phys == 0 {
		if fd, ok := buf.DMAFd(); ok {
			var err error
			phys, err = s.cfg.Resolve(fd)
			if err != nil {
				return curated.Errorf(FrameError, err)
			}
		} else {
			var err error
			copied, err = s.copyToPool(buf)
			if err != nil {
				return curated.Errorf(FrameError, err)
			}
			buf = copied
			phys = copied.PhysAddr()
			if phys == 0 {
				if fd, ok := copied.DMAFd(); ok {
					phys, err = s.cfg.Resolve(fd)
					if err != nil {
						copied.Release()
						return curated.Errorf(FrameError, err)
					}
				}
			}
		}
	}

	if s.dirty {
		s.configureOutput()
		notices = append(notices, notifications.NotifyReconfigured)
	}

	if phys != 0 {
		s.varinfo.Reserved[0] = uint32(phys)
		if err := s.dev.PanDisplay(&s.varinfo); err != nil {
			if copied != nil {
				copied.Release()
			}
			return curated.Errorf(PanError, err)
		}
	}

	if s.frames == 0 {
		if s.device != s.cfg.Primary {
			if err := s.dev.Blank(BlankUnblank); err != nil {
				logger.Logf(logger.Allow, "fbsink", "%v", err)
			}
			s.unblanked = true
		}
		notices = append(notices, notifications.NotifyFirstFrame)
	}

	if s.last != buf {
		s.releaseLast()
	}
	s.last = buf
	s.frames++

	return nil
}

// copyToPool copies the frame into a buffer from the pool, creating and
// activating the pool if necessary. must be called with the critical section
// held.
func (s *Sink) copyToPool(buf Buffer) (*PoolBuffer, error) {
	info := buf.Meta()
	if !info.Valid() {
		if !s.hasCaps {
			return nil, fmt.Errorf("no video info")
		}
		info = s.info
	}

	if s.pool != nil && s.pool.Config().Info != info {
		s.releaseLast()
		s.dropPool()
	}

	if s.pool == nil {
		s.pool = NewPool(s.cfg.Allocator, ProposeAllocation(info))
		logger.Logf(logger.Allow, "fbsink", "created buffer pool for %s", info)
	}

	if !s.pool.IsActive() {
		if err := s.pool.SetActive(true); err != nil {
			return nil, fmt.Errorf("activate pool: %w", err)
		}
	}

	pb, err := s.pool.Acquire()
	if err != nil {
		return nil, err
	}

	copyFrame(pb.Bytes(), pb.Meta(), buf.Bytes(), info)

	return pb, nil
}

// configureOutput applies the keep-ratio policy and rotation to the video
// geometry. must be called with the critical section held.
func (s *Sink) configureOutput() {
	if s.keepRatio {
		srcW, srcH := s.info.Width, s.info.Height
		if s.rotation.swapsAxes() {
			srcW, srcH = srcH, srcW
		}
		s.output = geometry.Center(srcW, srcH, s.videoGeo)
	} else {
		s.output = s.videoGeo
	}

	logger.Logf(logger.Allow, "fbsink", "keep ratio %v, rotation %s, output %s", s.keepRatio, s.rotation, s.output)

	s.dirty = false
}

// Output returns the area of the display the video is shown in. It is
// updated when a frame is shown after a change of geometry.
func (s *Sink) Output() geometry.Rect {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.output
}

// UpdateGeometry sets the area of the display the video is to be shown in.
// It is the geometry hook for the sink's overlay. Rectangles with no area
// are ignored. If the sink is paused the last frame is shown again.
func (s *Sink) UpdateGeometry(r geometry.Rect) bool {
	if !r.Valid() {
		return true
	}

	s.crit.Lock()
	if r == s.videoGeo {
		s.crit.Unlock()
		return true
	}

	s.videoGeo = r
	s.dirty = true
	logger.Logf(logger.Allow, "fbsink", "resize to %s", r)

	last := s.last
	reshow := s.state == StatePaused && last != nil
	s.crit.Unlock()

	if reshow {
		if err := s.ShowFrame(last); err != nil {
			logger.Logf(logger.Allow, "fbsink", "%v", err)
		}
	}

	return true
}

// VideoGeometry returns the area of the display the video is to be shown
// in.
func (s *Sink) VideoGeometry() geometry.Rect {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.videoGeo
}

// SetDevice sets the framebuffer device. The change takes effect the next
// time the sink moves to StatePaused.
func (s *Sink) SetDevice(path string) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.device = path
	s.dirty = true
}

// Device returns the path of the framebuffer device.
func (s *Sink) Device() string {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.device
}

// SetRotation sets the video direction.
func (s *Sink) SetRotation(r Rotation) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.rotation = r
	s.dirty = true
}

// Rotation returns the video direction.
func (s *Sink) Rotation() Rotation {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.rotation
}

// SetKeepRatio sets whether the aspect ratio of the video is preserved when
// it is scaled to the video geometry.
func (s *Sink) SetKeepRatio(keep bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.keepRatio = keep
	s.dirty = true
}

// KeepRatio returns true if the aspect ratio of the video is preserved.
func (s *Sink) KeepRatio() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.keepRatio
}

func (s *Sink) notify(notice notifications.Notice) {
	if s.cfg.Notify == nil {
		return
	}
	if err := s.cfg.Notify.Notify(notice); err != nil {
		logger.Logf(logger.Allow, "fbsink", "%v", err)
	}
}

// Close moves the sink to StateNull and releases the overlay. The sink must
// not be used afterwards.
func (s *Sink) Close() error {
	err := s.SetState(StateNull)
	s.overlay.Finalize()
	return err
}
