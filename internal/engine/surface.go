package engine

import "github.com/vovakirdan/arcade-hub/internal/core"

// Surface is the immediate-mode 2D drawing capability lent to the active unit.
// Coordinates are logical pixels of the buffer resolution, subject to the
// current transform.
type Surface interface {
	// SetResolution sets the buffer resolution. Units always set it to
	// their logical size.
	SetResolution(w, h int)
	Resolution() (w, h int)

	// SetDisplayRect places the scaled buffer on the host display, in
	// client coordinates. It never changes the buffer resolution.
	SetDisplayRect(r core.Box)
	DisplayRect() core.Box

	Clear(bg core.Color)
	FillRect(x, y, w, h float64, c core.Color)
	StrokeRect(x, y, w, h float64, c core.Color)
	FillCircle(cx, cy, r float64, c core.Color)
	Line(x1, y1, x2, y2 float64, c core.Color)
	// FillText draws text centered on (x, y).
	FillText(x, y float64, text string, c core.Color)

	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(radians float64)
}

// ClientToLogical maps a client coordinate into the surface's buffer space
// through its display rect.
func ClientToLogical(s Surface, clientX, clientY float64) (x, y float64) {
	r := s.DisplayRect()
	w, h := s.Resolution()
	x, y = clientX, clientY
	if r.W > 0 {
		x = (clientX - r.X) * float64(w) / r.W
	}
	if r.H > 0 {
		y = (clientY - r.Y) * float64(h) / r.H
	}
	return x, y
}

// ClientToLogicalX is the horizontal half of ClientToLogical.
func ClientToLogicalX(s Surface, clientX float64) float64 {
	x, _ := ClientToLogical(s, clientX, 0)
	return x
}
