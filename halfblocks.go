package termpic

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	// HalfBlock is the lower half block glyph. Its foreground paints the lower
	// half of the cell and the cell background shows through the upper half.
	HalfBlock = "▄"

	resetStyle = "\x1b[0m"
)

// alphaThreshold is the alpha at or below which a pixel counts as transparent
// when the full alpha range is not requested.
const alphaThreshold = 128

// HalfblocksRenderer draws two pixel rows per character row using
// 24-bit color escapes and the lower half block glyph.
type HalfblocksRenderer struct{}

// Name returns the renderer name
func (r *HalfblocksRenderer) Name() string {
	return "halfblocks"
}

// Render writes the escape sequence stream for img to w.
//
// Each cell pairs pixel (x, y) with (x, y+1). The upper pixel becomes the
// cell background and the lower one the glyph foreground. When the image has
// an odd number of rows the last row is paired with a fully transparent
// background-colored pixel. Cells transparent enough are written as a plain
// space with default colors, unless opts.NoAlpha is set.
func (r *HalfblocksRenderer) Render(w io.Writer, img *image.NRGBA, opts RenderOptions) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()
	filler := opts.Background.transparent()

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			upper := img.NRGBAAt(x, y)
			lower := filler
			if y+1 < bounds.Max.Y {
				lower = img.NRGBAAt(x, y+1)
			}

			if !opts.NoAlpha && transparentCell(upper, lower, opts.FullAlpha) {
				bw.WriteString(resetStyle + " ")
				continue
			}
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s",
				lower.R, lower.G, lower.B, upper.R, upper.G, upper.B, HalfBlock)
		}
		bw.WriteString(resetStyle + "\n")
	}

	return bw.Flush()
}

// transparentCell reports whether a cell can be left blank. Both pixels must
// be at least half transparent, or fully transparent when fullAlpha is set.
func transparentCell(upper, lower color.NRGBA, fullAlpha bool) bool {
	if upper.A == 0 && lower.A == 0 {
		return true
	}
	return !fullAlpha && upper.A <= alphaThreshold && lower.A <= alphaThreshold
}
