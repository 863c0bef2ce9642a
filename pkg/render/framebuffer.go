// Package render provides the software rasterization core for softrast:
// a packed-pixel framebuffer, triangle rasterizers, and the per-frame
// transform/cull pipeline.
package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// ErrOutOfBounds is returned by At for coordinates outside the buffer.
var ErrOutOfBounds = errors.New("render: pixel coordinate out of bounds")

// Framebuffer is a bounds-checked rectangular view over a linear array of
// packed ARGB8888 pixels. Writes outside the buffer are silently dropped;
// reads outside it are an error.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []Color // Row-major, len == Width*Height
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// Clear fills the entire buffer with a single color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
}

// SetPixel writes c at (x, y). Out-of-bounds writes are a no-op:
// rasterization legitimately produces boundary coordinates.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pix[y*fb.Width+x] = c
}

// At returns the color at (x, y), or ErrOutOfBounds.
func (fb *Framebuffer) At(x, y int) (Color, error) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, fb.Width, fb.Height)
	}
	return fb.Pix[y*fb.Width+x], nil
}

// FillScanline fills the half-open pixel span [x0, x1) on row y,
// clipped to the buffer bounds.
func (fb *Framebuffer) FillScanline(y, x0, x1 int, c Color) {
	if y < 0 || y >= fb.Height {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > fb.Width {
		x1 = fb.Width
	}
	row := y * fb.Width
	for x := x0; x < x1; x++ {
		fb.Pix[row+x] = c
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle, clipped to the buffer.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawGrid draws grid lines every spacing pixels across the whole buffer.
func (fb *Framebuffer) DrawGrid(spacing int, c Color) {
	if spacing <= 0 {
		return
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if x%spacing == 0 || y%spacing == 0 {
				fb.Pix[y*fb.Width+x] = c
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Bytes returns the packed pixel data as bytes: 4 bytes per pixel in
// alpha, red, green, blue order (most significant byte first), row-major,
// no padding between rows. Display collaborators depend on this layout
// bit for bit.
func (fb *Framebuffer) Bytes() []byte {
	out := make([]byte, len(fb.Pix)*4)
	for i, p := range fb.Pix {
		binary.BigEndian.PutUint32(out[i*4:], uint32(p))
	}
	return out
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pix[y*fb.Width+x].RGBA8())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
