// Package render rasterizes logical-coordinate 2D drawing into a character
// cell screen.
//
// Client coordinates treat one cell as 1 unit wide and PixelsPerRow units
// tall, so a terminal cell approximates a square pair of pixels and the
// logical aspect ratio survives scaling.
package render

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// PixelsPerRow is the client height of one terminal row.
const PixelsPerRow = 2

// Glyphs used for filled areas.
const (
	GlyphFill  = '█'
	GlyphShade = '░'
	GlyphDot   = '●'
	GlyphLine  = '•'
)

// matrix is a 2D affine transform: x' = a*x + c*y + e, y' = b*x + d*y + f.
type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{a: 1, d: 1}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m matrix) invert() (matrix, bool) {
	det := m.a*m.d - m.b*m.c
	if det == 0 {
		return matrix{}, false
	}
	return matrix{
		a: m.d / det,
		b: -m.b / det,
		c: -m.c / det,
		d: m.a / det,
		e: (m.c*m.f - m.d*m.e) / det,
		f: (m.b*m.e - m.a*m.f) / det,
	}, true
}

// mul returns m followed by n applied in local space (m × n).
func (m matrix) mul(n matrix) matrix {
	return matrix{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

// Canvas is an engine.Surface drawing into a core.Screen.
type Canvas struct {
	screen  *core.Screen
	resW    int
	resH    int
	display core.Box
	xf      matrix
	stack   []matrix
}

// NewCanvas creates a canvas over screen. The display rect initially
// covers the whole screen and the resolution equals the client size.
func NewCanvas(screen *core.Screen) *Canvas {
	c := &Canvas{screen: screen, xf: identity}
	w, h := c.ClientSize()
	c.resW, c.resH = int(w), int(h)
	c.display = core.NewBox(0, 0, w, h)
	return c
}

// Screen returns the backing cell buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// ClientSize returns the screen size in client units.
func (c *Canvas) ClientSize() (w, h float64) {
	return float64(c.screen.Width()), float64(c.screen.Height() * PixelsPerRow)
}

// SetResolution sets the logical buffer size and resets the transform.
func (c *Canvas) SetResolution(w, h int) {
	c.resW, c.resH = w, h
	c.xf = identity
	c.stack = c.stack[:0]
}

// Resolution returns the logical buffer size.
func (c *Canvas) Resolution() (int, int) {
	return c.resW, c.resH
}

// SetDisplayRect places the buffer on the screen, in client units.
func (c *Canvas) SetDisplayRect(r core.Box) {
	c.display = r
}

// DisplayRect returns the buffer's client rectangle.
func (c *Canvas) DisplayRect() core.Box {
	return c.display
}

// Save pushes the current transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.xf)
}

// Restore pops the last saved transform. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.xf = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin.
func (c *Canvas) Translate(dx, dy float64) {
	c.xf = c.xf.mul(matrix{a: 1, d: 1, e: dx, f: dy})
}

// Rotate turns the axes clockwise by radians (screen y points down).
func (c *Canvas) Rotate(radians float64) {
	sin, cos := math.Sincos(radians)
	c.xf = c.xf.mul(matrix{a: cos, b: sin, c: -sin, d: cos})
}

// toClient maps transformed logical coordinates into client space.
func (c *Canvas) toClient(x, y float64) (float64, float64) {
	x, y = c.xf.apply(x, y)
	return c.display.X + x*c.sx(), c.display.Y + y*c.sy()
}

func (c *Canvas) sx() float64 {
	if c.resW <= 0 {
		return 1
	}
	return c.display.W / float64(c.resW)
}

func (c *Canvas) sy() float64 {
	if c.resH <= 0 {
		return 1
	}
	return c.display.H / float64(c.resH)
}

// toCell maps a client point to the cell containing it.
func toCell(cx, cy float64) (int, int) {
	return int(math.Floor(cx)), int(math.Floor(cy / PixelsPerRow))
}

// clip returns the cell range covered by the display rect.
func (c *Canvas) clip() (x0, y0, x1, y1 int) {
	x0 = max(0, int(math.Floor(c.display.X)))
	y0 = max(0, int(math.Floor(c.display.Y/PixelsPerRow)))
	x1 = min(c.screen.Width(), int(math.Ceil(c.display.Right())))
	y1 = min(c.screen.Height(), int(math.Ceil(c.display.Bottom()/PixelsPerRow)))
	return x0, y0, x1, y1
}

func (c *Canvas) plot(col, row int, r rune, color core.Color) {
	x0, y0, x1, y1 := c.clip()
	if col < x0 || col >= x1 || row < y0 || row >= y1 {
		return
	}
	c.screen.SetColored(col, row, r, color)
}

// Clear wipes the display area. A non-default background is shaded.
func (c *Canvas) Clear(bg core.Color) {
	r := ' '
	if bg != core.ColorDefault && bg != core.ColorBlack {
		r = GlyphShade
	}
	x0, y0, x1, y1 := c.clip()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetColored(x, y, r, bg)
		}
	}
}

// fill paints every cell whose center lies inside the shape described by
// inside (tested in local logical coordinates). A shape too small to
// cover any cell center still paints the cell under its anchor.
func (c *Canvas) fill(corners [4][2]float64, anchorX, anchorY float64, glyph, tiny rune, color core.Color, inside func(x, y float64) bool) {
	inv, ok := c.xf.invert()
	if !ok {
		return
	}
	sx, sy := c.sx(), c.sy()
	if sx == 0 || sy == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		cx, cy := c.toClient(p[0], p[1])
		minX, maxX = math.Min(minX, cx), math.Max(maxX, cx)
		minY, maxY = math.Min(minY, cy), math.Max(maxY, cy)
	}

	col0, row0 := toCell(minX, minY)
	col1, row1 := toCell(maxX, maxY)
	painted := false
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			// Cell center back to local logical space.
			cx := float64(col) + 0.5
			cy := (float64(row) + 0.5) * PixelsPerRow
			lx, ly := inv.apply((cx-c.display.X)/sx, (cy-c.display.Y)/sy)
			if inside(lx, ly) {
				c.plot(col, row, glyph, color)
				painted = true
			}
		}
	}
	if !painted {
		col, row := toCell(c.toClient(anchorX, anchorY))
		c.plot(col, row, tiny, color)
	}
}

// FillRect fills a rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, color core.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	corners := [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}}
	c.fill(corners, x+w/2, y+h/2, GlyphFill, GlyphFill, color, func(lx, ly float64) bool {
		return lx >= x && lx < x+w && ly >= y && ly < y+h
	})
}

// StrokeRect outlines a rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, color core.Color) {
	c.Line(x, y, x+w, y, color)
	c.Line(x+w, y, x+w, y+h, color)
	c.Line(x+w, y+h, x, y+h, color)
	c.Line(x, y+h, x, y, color)
}

// FillCircle fills a disc.
func (c *Canvas) FillCircle(cx, cy, r float64, color core.Color) {
	if r <= 0 {
		return
	}
	corners := [4][2]float64{{cx - r, cy - r}, {cx + r, cy - r}, {cx - r, cy + r}, {cx + r, cy + r}}
	c.fill(corners, cx, cy, GlyphFill, GlyphDot, color, func(lx, ly float64) bool {
		dx, dy := lx-cx, ly-cy
		return dx*dx+dy*dy <= r*r
	})
}

// Line draws a one-cell-wide segment with Bresenham's algorithm.
func (c *Canvas) Line(x1, y1, x2, y2 float64, color core.Color) {
	ax, ay := toCell(c.toClient(x1, y1))
	bx, by := toCell(c.toClient(x2, y2))

	dx := core.Abs(bx - ax)
	dy := -core.Abs(by - ay)
	stepX, stepY := 1, 1
	if ax > bx {
		stepX = -1
	}
	if ay > by {
		stepY = -1
	}
	err := dx + dy
	for {
		c.plot(ax, ay, GlyphLine, color)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += stepX
		}
		if e2 <= dx {
			err += dx
			ay += stepY
		}
	}
}

// FillText writes text centered on (x, y). Text is never scaled.
func (c *Canvas) FillText(x, y float64, text string, color core.Color) {
	col, row := toCell(c.toClient(x, y))
	col -= utf8.RuneCountInString(text) / 2
	for i, r := range []rune(text) {
		c.plot(col+i, row, r, color)
	}
}
