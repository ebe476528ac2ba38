package simulation

// Surface is the drawing target the world is laid out on.
// Shells (ebiten window, terminal, headless runner) implement it; the engine only needs its size.
type Surface interface {
	Size() (width, height int)
}

// Bounds is the rectangle [0, Width] × [0, Height] agents live in.
// It implements Surface so headless callers can use it directly.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size implements Surface.
func (b Bounds) Size() (int, int) {
	return int(b.Width), int(b.Height)
}

// boundsOf validates a surface and turns it into Bounds.
func boundsOf(s Surface) (Bounds, error) {
	if s == nil {
		return Bounds{}, ErrSurfaceNotReady
	}
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return Bounds{}, ErrSurfaceNotReady
	}
	return Bounds{Width: float64(w), Height: float64(h)}, nil
}
