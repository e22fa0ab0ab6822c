package termpic

import (
	"fmt"
	"image"
	"io"
	"strings"
)

// Renderer turns a sized, composited pixel buffer into terminal output
type Renderer interface {
	// Render writes the escape sequence stream for img to w
	Render(w io.Writer, img *image.NRGBA, opts RenderOptions) error

	// Name returns the renderer name
	Name() string
}

// RenderOptions contains the options shared by all renderers
type RenderOptions struct {
	// Background fills the missing row under an odd-height image
	Background RGB
	// NoAlpha draws transparent cells in the background color instead of skipping them
	NoAlpha bool
	// FullAlpha only skips cells whose pixels are both fully transparent
	FullAlpha bool
}

// Renderers lists the available renderer names
var Renderers = []string{"halfblocks", "mosaic"}

// GetRenderer returns a renderer by name. An empty name selects halfblocks.
func GetRenderer(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", "halfblocks":
		return &HalfblocksRenderer{}, nil
	case "mosaic":
		return &MosaicRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported renderer: %s (want one of %s)", name, strings.Join(Renderers, ", "))
	}
}
