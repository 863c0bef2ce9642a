package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalRenderer presents a framebuffer on a terminal. Each terminal
// cell shows two vertically stacked pixels via the upper-half-block
// character, so the framebuffer height is twice the terminal row count.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int // terminal columns
	height int // terminal rows
}

// NewTerminalRenderer creates a renderer for the given terminal size.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a framebuffer should have
// to fill this terminal.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render converts the framebuffer to terminal cells.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush pushes the pending cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}

// Draw converts the framebuffer to terminal cells and places them on the
// screen. Each cell is ▀ with fg = top pixel and bg = bottom pixel.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb, col, topY),
					Bg: cellColor(fb, col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor reads a pixel for presentation. Out-of-bounds rows (the last
// half-block of an odd-height area) and fully transparent pixels map to
// no color.
func cellColor(fb *Framebuffer, x, y int) color.Color {
	c, err := fb.At(x, y)
	if err != nil || c.A() == 0 {
		return nil
	}
	return c.RGBA8()
}
