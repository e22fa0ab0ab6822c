package termpic

import "fmt"

// Dim is an optional requested dimension. The zero value is unset.
type Dim struct {
	value int
	set   bool
}

// Auto returns an unset dimension, derived from the aspect ratio or the terminal.
func Auto() Dim {
	return Dim{}
}

// Exactly returns a dimension explicitly set to n.
func Exactly(n int) Dim {
	return Dim{value: n, set: true}
}

// Get returns the value and whether it was set
func (d Dim) Get() (int, bool) {
	return d.value, d.set
}

func (d Dim) String() string {
	if !d.set {
		return "auto"
	}
	return fmt.Sprintf("%d", d.value)
}

// Request holds the requested output size in pixel units. Height counts
// half-character rows, so a request of N character rows is Exactly(2*N).
type Request struct {
	Width  Dim
	Height Dim
}

// Size is a concrete width and height in pixels
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rows returns the number of character rows needed to show s with half blocks
func (s Size) Rows() int {
	return (s.Height + 1) / 2
}

// Resolve computes the target size for an image of size src.
//
// With nothing requested the source size is kept, then fitted to the terminal
// width, then (using the width-fitted height) to the terminal height. The two
// fits run one after the other rather than as a single min-ratio fit.
// A single requested dimension derives the other from the source aspect ratio;
// two requested dimensions are used as given. Every result is at least 1x1.
func Resolve(src Size, req Request, term TerminalGeometry) Size {
	w, wSet := req.Width.Get()
	h, hSet := req.Height.Get()

	switch {
	case !wSet && !hSet:
		w, h = src.Width, src.Height
		if w > term.Cols {
			w = term.Cols
			h = scale(src.Height, term.Cols, src.Width)
		}
		if h > term.PixelRows {
			h = term.PixelRows
			w = scale(src.Width, term.PixelRows, src.Height)
		}
	case !hSet:
		h = scale(src.Height, w, src.Width)
	case !wSet:
		w = scale(src.Width, h, src.Height)
	}

	return Size{Width: max(w, 1), Height: max(h, 1)}
}

// scale returns n * (num / den), truncated toward zero. The ratio is kept in
// single precision, so some sizes land one pixel below the exact value.
func scale(n, num, den int) int {
	if den == 0 {
		return 0
	}
	return int(float32(n) * (float32(num) / float32(den)))
}
