package termpic

import "image"

// Composite blends every pixel of img over bg in place, weighting by the
// pixel's alpha. It does nothing unless hadAlpha is set.
//
// Alpha is left as is: the renderer still needs it to tell nearly
// transparent pixels (drawn as blank cells) from nearly opaque ones.
func Composite(img *image.NRGBA, bg RGB, hadAlpha bool) {
	if !hadAlpha {
		return
	}

	bgc := [3]float32{float32(bg.R), float32(bg.G), float32(bg.B)}
	bounds := img.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			a := float32(row[x+3]) / 255
			for c := 0; c < 3; c++ {
				row[x+c] = uint8(float32(row[x+c])*a + bgc[c]*(1-a))
			}
		}
	}
}
