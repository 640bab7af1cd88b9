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

//go:build imxmp3

package mp3enc

/*
#cgo CFLAGS: -I/usr/include/imx-mm/audio-codec
#cgo LDFLAGS: -l_mp3_enc_arm12_elinux
#include <stdlib.h>
#include <mp3_enc_interface.h>
*/
import "C"

import (
	"unsafe"

	"github.com/jetsetilly/imxoverlay/curated"
)

// the library keeps pointers to the memory blocks between calls so they are
// allocated by C
type imxCore struct {
	config C.MP3E_Encoder_Config
	params C.MP3E_Encoder_Parameter
}

// HardwareCore returns the Core for the i.MX encoder library.
func HardwareCore() (Core, error) {
	return &imxCore{}, nil
}

func (c *imxCore) Alloc(size int) ([]byte, error) {
	p := C.malloc(C.size_t(size))
	if p == nil {
		return nil, curated.Errorf(InitError, "out of memory")
	}
	return unsafe.Slice((*byte)(p), size), nil
}

func (c *imxCore) Free(b []byte) {
	if len(b) > 0 {
		C.free(unsafe.Pointer(&b[0]))
	}
}

func (c *imxCore) QueryMem() ([]MemBlock, RetVal) {
	c.config.instance_id = 0

	if rv := RetVal(C.mp3e_query_mem(&c.config)); rv != Success {
		return nil, rv
	}

	blocks := make([]MemBlock, NumMemBlocks)
	for i := range blocks {
		mi := c.config.mem_info[i]
		blocks[i] = MemBlock{
			Type:  MemType(mi._type),
			Size:  int(mi.size),
			Align: int(mi.align),
		}
	}

	return blocks, Success
}

func (c *imxCore) Init(p Params, blocks []MemBlock) (int, RetVal) {
	for i := range blocks {
		c.config.mem_info[i].ptr = (*C.MP3E_INT32)(unsafe.Pointer(&blocks[i].Data[0]))
	}

	c.params.app_sampling_rate = C.MP3E_INT32(p.SampleRate)
	c.params.app_bit_rate = C.MP3E_INT32(p.Bitrate)
	c.params.app_mode = C.MP3E_INT32(p.Mode())

	rv := RetVal(C.mp3e_encode_init(&c.params, &c.config))

	return int(c.params.mp3e_outbuf_size), rv
}

func (c *imxCore) EncodeFrame(in []int16, out []byte) int {
	C.mp3e_encode_frame((*C.MP3E_INT16)(unsafe.Pointer(&in[0])), &c.config, (*C.MP3E_INT8)(unsafe.Pointer(&out[0])))
	return int(c.config.num_bytes)
}

func (c *imxCore) Flush(out []byte) int {
	C.mp3e_flush_bitstream(&c.config, (*C.MP3E_INT8)(unsafe.Pointer(&out[0])))
	return int(c.config.num_bytes)
}

func (c *imxCore) Version() string {
	return C.GoString(C.MP3ECodecVersionInfo())
}
