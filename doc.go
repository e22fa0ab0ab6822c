/*
Package termpic renders raster images as full-color output in a character
terminal. Each character cell shows two vertically stacked pixels: the cell
background carries the upper pixel and a lower half block glyph (▄) in the
foreground color carries the lower one.

The pipeline runs in four steps:

  - Resolve picks a target size that fits the terminal and keeps the aspect ratio
  - Resample scales the pixels to that size in linear light
  - Composite blends translucent pixels over the terminal background color
  - a Renderer writes the 24-bit color escape sequences

Basic Usage:

	src, err := termpic.Load("image.png")
	if err != nil {
	    log.Fatal(err)
	}

	geometry, _ := termpic.QueryTerminalGeometry()
	err = termpic.Display(os.Stdout, src, geometry, termpic.Options{
	    Background: termpic.Gray,
	})

Sizing:

Requested sizes are optional per dimension. Heights are counted in pixel
rows, which is twice the number of character rows:

	opts := termpic.Options{
	    Size: termpic.Request{
	        Width:  termpic.Exactly(80),
	        Height: termpic.Auto(),
	    },
	}

Transparency:

Cells whose two pixels are both at least half transparent are printed as a
plain space so the terminal's own background shows through. FullAlpha narrows
that to fully transparent pixels; NoAlpha disables it and draws the
background color instead.
*/
package termpic
