package termpic

import (
	"image"
	"io"
	"strings"

	"github.com/charmbracelet/x/mosaic"
)

// MosaicRenderer draws the image with charmbracelet's mosaic block encoder
type MosaicRenderer struct{}

// Name returns the renderer name
func (r *MosaicRenderer) Name() string {
	return "mosaic"
}

// Render writes img to w using mosaic, one character cell per two pixel rows.
// Transparency is already blended into the colors, so the image is drawn opaque
// and opts is not consulted: every cell is drawn, transparent or not.
func (r *MosaicRenderer) Render(w io.Writer, img *image.NRGBA, opts RenderOptions) error {
	bounds := img.Bounds()
	size := Size{Width: bounds.Dx(), Height: bounds.Dy()}

	// mosaic packs a 2x2 pixel block into each cell, so columns are doubled
	// to keep one cell per source column.
	m := mosaic.New().
		Dither(false).
		Width(size.Width * 2).
		Height(size.Rows() * 2)

	output := m.Render(opaque(img))
	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	_, err := io.WriteString(w, output)
	return err
}

// opaque returns a copy of img with every alpha set to 255
func opaque(img *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
