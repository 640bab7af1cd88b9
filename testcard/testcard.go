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

// Package testcard produces video frames for the framebuffer sink when
// there is no other source. The card is an SVG image rasterised to the size
// of the video with a marker that moves from frame to frame.
package testcard

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/jetsetilly/imxoverlay/curated"
	"github.com/jetsetilly/imxoverlay/fbsink"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Sentinel pattern for the curated errors returned by this package.
const CardError = "testcard: %v"

const card = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 160 90">
<rect x="0" y="0" width="160" height="90" fill="#101010"/>
<rect x="0" y="0" width="20" height="60" fill="#c0c0c0"/>
<rect x="20" y="0" width="20" height="60" fill="#c0c000"/>
<rect x="40" y="0" width="20" height="60" fill="#00c0c0"/>
<rect x="60" y="0" width="20" height="60" fill="#00c000"/>
<rect x="80" y="0" width="20" height="60" fill="#c000c0"/>
<rect x="100" y="0" width="20" height="60" fill="#c00000"/>
<rect x="120" y="0" width="20" height="60" fill="#0000c0"/>
<rect x="140" y="0" width="20" height="60" fill="#000000"/>
<circle cx="80" cy="45" r="30" fill="none" stroke="#ffffff" stroke-width="1.5"/>
<line x1="80" y1="10" x2="80" y2="80" stroke="#ffffff" stroke-width="0.75"/>
<line x1="45" y1="45" x2="115" y2="45" stroke="#ffffff" stroke-width="0.75"/>
</svg>`

const marker = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<circle cx="5" cy="5" r="4.5" fill="currentColor"/>
</svg>`

// Card renders test card frames.
type Card struct {
	info fbsink.VideoInfo

	base   *image.RGBA
	marker *image.RGBA
	frame  *image.RGBA
}

// New is the preferred method of initialisation for the Card type. Only
// BGRA frames are supported.
func New(info fbsink.VideoInfo, markerColor color.Color) (*Card, error) {
	if info.Format != fbsink.FormatBGRA || !info.Valid() {
		return nil, curated.Errorf(CardError, fmt.Sprintf("unsupported video %s", info))
	}

	c := &Card{
		info:  info,
		frame: image.NewRGBA(image.Rect(0, 0, info.Width, info.Height)),
	}

	var err error
	c.base, err = rasterise(card, info.Width, info.Height)
	if err != nil {
		return nil, curated.Errorf(CardError, err)
	}

	r, g, b, _ := markerColor.RGBA()
	sz := max(info.Height/10, 1)
	c.marker, err = rasterise(strings.ReplaceAll(marker, "currentColor", fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)), sz, sz)
	if err != nil {
		return nil, curated.Errorf(CardError, err)
	}

	return c, nil
}

func rasterise(svg string, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// Info returns the description of the frames produced by the card.
func (c *Card) Info() fbsink.VideoInfo {
	return c.info
}

// MarkerPosition returns the top left of the marker in the numbered frame.
// The marker crosses the lower third of the card once every second at
// 50fps.
func (c *Card) MarkerPosition(n int) image.Point {
	span := c.info.Width - c.marker.Bounds().Dx()
	if span <= 0 {
		return image.Point{Y: c.info.Height * 3 / 4}
	}

	// back and forth
	p := (n * span / 50) % (span * 2)
	if p > span {
		p = span*2 - p
	}

	return image.Point{X: p, Y: c.info.Height * 3 / 4}
}

// Render draws the numbered frame into dst, which must be at least
// Info().Size() bytes long.
func (c *Card) Render(n int, dst []byte) error {
	if len(dst) < c.info.Size() {
		return curated.Errorf(CardError, fmt.Sprintf("buffer of %d bytes is too small", len(dst)))
	}

	draw.Draw(c.frame, c.frame.Bounds(), c.base, image.Point{}, draw.Src)

	pos := c.MarkerPosition(n)
	r := c.marker.Bounds().Add(pos)
	draw.Draw(c.frame, r, c.marker, image.Point{}, draw.Over)

	// RGBA to BGRA
	stride := c.info.LineSize()
	for y := 0; y < c.info.Height; y++ {
		src := c.frame.Pix[y*c.frame.Stride : y*c.frame.Stride+c.info.Width*4]
		row := dst[y*stride : y*stride+c.info.Width*4]
		for x := 0; x < len(src); x += 4 {
			row[x] = src[x+2]
			row[x+1] = src[x+1]
			row[x+2] = src[x]
			row[x+3] = src[x+3]
		}
	}

	return nil
}

// Frame returns the numbered frame in a new buffer.
func (c *Card) Frame(n int) (*fbsink.Frame, error) {
	f := &fbsink.Frame{
		Info: c.info,
		Data: make([]byte, c.info.Size()),
	}
	if err := c.Render(n, f.Data); err != nil {
		return nil, err
	}
	return f, nil
}

// Scale returns the card scaled to a new size. The frame is scaled rather
// than rasterised again so that the result matches what a scaling display
// would show.
func (c *Card) Scale(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(img, img.Bounds(), c.base, c.base.Bounds(), draw.Src, nil)
	return img
}
