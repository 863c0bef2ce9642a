package render

import "image/color"

// Color is a packed ARGB8888 pixel value (0xAARRGGBB).
type Color uint32

// Palette used by the default scene.
const (
	ColorBackground Color = 0xFF1E1E1E
	ColorGrid       Color = 0xFF333333
	ColorFill       Color = 0xFF444444
	ColorWireframe  Color = 0xFF00FF00
	ColorVertex     Color = 0xFFFF0000
	ColorBlack      Color = 0xFF000000
	ColorWhite      Color = 0xFFFFFFFF
	ColorMagenta    Color = 0xFFFF00FF
)

// RGB packs opaque channel values into a Color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBA packs channel values into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// RGBA8 converts the packed value to the standard library color type.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}
