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
	"errors"
	"sync"

	"github.com/jetsetilly/imxoverlay/geometry"
)

// Limits on the number of buffers in a Pool.
const (
	MinBuffers = 3
	MaxBuffers = 30
)

// Alignment of frame dimensions required by the display hardware.
const Alignment = 8

// PoolConfig is the result of allocation negotiation. Upstream frame
// producers should allocate frames with the padding so that both dimensions
// are a multiple of Alignment.
type PoolConfig struct {
	Info          VideoInfo
	Size          int
	Min           int
	Max           int
	PaddingRight  int
	PaddingBottom int
}

// Aligned returns true if no padding is required.
func (cfg PoolConfig) Aligned() bool {
	return cfg.PaddingRight == 0 && cfg.PaddingBottom == 0
}

// ProposeAllocation returns the pool configuration for frames described by
// info.
func ProposeAllocation(info VideoInfo) PoolConfig {
	return PoolConfig{
		Info:          info,
		Size:          info.Size(),
		Min:           MinBuffers,
		Max:           MaxBuffers,
		PaddingRight:  geometry.Align(info.Width, Alignment),
		PaddingBottom: geometry.Align(info.Height, Alignment),
	}
}

// ErrPoolExhausted is returned by Acquire() if the maximum number of buffers
// are already in use.
var ErrPoolExhausted = errors.New("pool exhausted")

// ErrPoolInactive is returned by Acquire() if the pool has not been
// activated.
var ErrPoolInactive = errors.New("pool is not active")

// Pool is a set of reusable physically contiguous buffers.
type Pool struct {
	crit sync.Mutex

	cfg    PoolConfig
	alloc  Allocator
	active bool

	free []*PoolBuffer

	// number of buffers allocated. free and acquired
	allocated int
}

// NewPool is the preferred method of initialisation for the Pool type.
func NewPool(alloc Allocator, cfg PoolConfig) *Pool {
	return &Pool{
		cfg:   cfg,
		alloc: alloc,
	}
}

// Config returns the configuration of the pool.
func (p *Pool) Config() PoolConfig {
	return p.cfg
}

// SetActive activates or deactivates the pool. Activating the pool allocates
// the minimum number of buffers. Deactivating the pool frees every buffer
// that is not in use. Buffers in use are freed when they are released.
func (p *Pool) SetActive(active bool) error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if active == p.active {
		return nil
	}
	p.active = active

	if !active {
		var err error
		for _, b := range p.free {
			if e := b.blk.Free(); err == nil {
				err = e
			}
			p.allocated--
		}
		p.free = p.free[:0]
		return err
	}

	for p.allocated < p.cfg.Min {
		b, err := p.allocate()
		if err != nil {
			return err
		}
		p.free = append(p.free, b)
	}

	return nil
}

// IsActive returns true if the pool has been activated.
func (p *Pool) IsActive() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.active
}

// allocate must be called with the critical section held.
func (p *Pool) allocate() (*PoolBuffer, error) {
	blk, err := p.alloc.Allocate(p.cfg.Size)
	if err != nil {
		return nil, err
	}
	p.allocated++
	return &PoolBuffer{pool: p, blk: blk, info: p.cfg.Info}, nil
}

// Acquire a buffer from the pool. The buffer must be returned with Release()
// when it is no longer required.
func (p *Pool) Acquire() (*PoolBuffer, error) {
	p.crit.Lock()
	defer p.crit.Unlock()

	if !p.active {
		return nil, ErrPoolInactive
	}

	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		b.info = p.cfg.Info
		b.released = false
		return b, nil
	}

	if p.allocated >= p.cfg.Max {
		return nil, ErrPoolExhausted
	}

	return p.allocate()
}

func (p *Pool) release(b *PoolBuffer) {
	p.crit.Lock()
	defer p.crit.Unlock()

	if b.released {
		return
	}
	b.released = true

	if p.active {
		p.free = append(p.free, b)
		return
	}

	_ = b.blk.Free()
	p.allocated--
}

// Allocated returns the number of buffers allocated by the pool, including
// those in use.
func (p *Pool) Allocated() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.allocated
}

// PoolBuffer is a Buffer acquired from a Pool.
type PoolBuffer struct {
	pool     *Pool
	blk      Block
	info     VideoInfo
	released bool
}

// Release the buffer back to the pool. It is safe to call Release() more
// than once.
func (b *PoolBuffer) Release() {
	b.pool.release(b)
}

// PhysAddr implements the Buffer interface.
func (b *PoolBuffer) PhysAddr() uintptr {
	return b.blk.PhysAddr()
}

// DMAFd implements the Buffer interface.
func (b *PoolBuffer) DMAFd() (int, bool) {
	fd := b.blk.Fd()
	return fd, fd >= 0
}

// Crop implements the Buffer interface.
func (b *PoolBuffer) Crop() (geometry.Rect, bool) {
	return geometry.Rect{}, false
}

// Meta implements the Buffer interface.
func (b *PoolBuffer) Meta() VideoInfo {
	return b.info
}

// Bytes implements the Buffer interface.
func (b *PoolBuffer) Bytes() []byte {
	return b.blk.Bytes()
}
