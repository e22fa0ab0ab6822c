package termpic

import (
	"bytes"
	"image"
	"io"
)

// Options configures a Display run
type Options struct {
	// Size is the requested size in pixels; unset dimensions are derived
	Size Request
	// Background is blended under transparent pixels
	Background RGB
	// NoAlpha draws transparent regions in the background color instead of skipping them
	NoAlpha bool
	// FullAlpha only skips cells that are fully transparent, not merely mostly
	FullAlpha bool
	// Renderer draws the result; nil selects the halfblocks renderer
	Renderer Renderer
}

func (o Options) renderOptions() RenderOptions {
	return RenderOptions{
		Background: o.Background,
		NoAlpha:    o.NoAlpha,
		FullAlpha:  o.FullAlpha,
	}
}

func (o Options) renderer() Renderer {
	if o.Renderer == nil {
		return &HalfblocksRenderer{}
	}
	return o.Renderer
}

// Prepare resolves the target size for src, then resamples and composites it.
// The pixels of src are handed over to the returned buffer and src.Pixels is
// cleared.
func Prepare(src *Source, term TerminalGeometry, opts Options) (*image.NRGBA, error) {
	if src == nil || src.Pixels == nil {
		return nil, ErrNilImage
	}

	hadAlpha := src.HadAlpha()
	target := Resolve(src.Size(), opts.Size, term)

	pixels := Resample(src.Pixels, target, hadAlpha)
	src.Pixels = nil

	Composite(pixels, opts.Background, hadAlpha)
	return pixels, nil
}

// Display runs the whole pipeline for src and writes the result to w.
// Nothing is written unless every stage before rendering succeeded.
func Display(w io.Writer, src *Source, term TerminalGeometry, opts Options) error {
	pixels, err := Prepare(src, term, opts)
	if err != nil {
		return err
	}
	return opts.renderer().Render(w, pixels, opts.renderOptions())
}

// RenderString runs the pipeline for src and returns the output as a string
func RenderString(src *Source, term TerminalGeometry, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Display(&buf, src, term, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderFile loads the image at path and renders it with opts
func RenderFile(path string, term TerminalGeometry, opts Options) (string, error) {
	src, err := Load(path)
	if err != nil {
		return "", err
	}
	return RenderString(src, term, opts)
}
