package termpic

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// srgbToLinear maps an 8-bit sRGB channel to 16-bit linear light
var srgbToLinear [256]uint16

func init() {
	for i := range srgbToLinear {
		l, _, _ := colorful.Color{R: float64(i) / 255}.LinearRgb()
		srgbToLinear[i] = uint16(math.Round(l * 0xffff))
	}
}

// linearToSRGB maps a 16-bit linear light channel back to 8-bit sRGB
func linearToSRGB(v uint32) uint8 {
	c := colorful.LinearRgb(float64(v)/0xffff, 0, 0).R
	return uint8(math.Round(min(max(c, 0), 1) * 255))
}

// Resample returns img scaled to target.
//
// If img already has the target size it is returned as is, with no copy;
// otherwise a new buffer is allocated and img should no longer be used.
// Callers must not rely on either outcome.
//
// Filtering happens in linear light. When hadAlpha is set, color is
// premultiplied by alpha so transparent pixels do not bleed into their
// neighbours; otherwise alpha is ignored and the result is opaque.
func Resample(img *image.NRGBA, target Size, hadAlpha bool) *image.NRGBA {
	bounds := img.Bounds()

	// Skip resize if already correct size
	if bounds.Dx() == target.Width && bounds.Dy() == target.Height {
		return img
	}

	// Downscaling by area favours a softer filter; upscaling keeps edges sharp.
	interp := resize.Bicubic
	if bounds.Dx()*bounds.Dy() > target.Width*target.Height {
		interp = resize.MitchellNetravali
	}

	linear := toLinear(img, hadAlpha)
	scaled := resize.Resize(uint(target.Width), uint(target.Height), linear, interp)

	return fromLinear(scaled, target, hadAlpha)
}

// toLinear converts img to premultiplied 16-bit linear light
func toLinear(img *image.NRGBA, hadAlpha bool) *image.RGBA64 {
	bounds := img.Bounds()
	dst := image.NewRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+bounds.Dx()*8]
		for x := 0; x < bounds.Dx(); x++ {
			s := src[x*4 : x*4+4]
			a := uint32(0xffff)
			if hadAlpha {
				a = uint32(s[3]) * 0x101
			}
			o := out[x*8 : x*8+8]
			for c := 0; c < 3; c++ {
				v := uint32(srgbToLinear[s[c]]) * a / 0xffff
				o[c*2] = uint8(v >> 8)
				o[c*2+1] = uint8(v)
			}
			o[6] = uint8(a >> 8)
			o[7] = uint8(a)
		}
	}
	return dst
}

// fromLinear converts premultiplied linear light back to 8-bit sRGB
func fromLinear(img image.Image, target Size, hadAlpha bool) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, target.Width, target.Height))
	bounds := img.Bounds()

	for y := 0; y < target.Height; y++ {
		for x := 0; x < target.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			o := dst.Pix[y*dst.Stride+x*4 : y*dst.Stride+x*4+4]
			if !hadAlpha {
				o[0], o[1], o[2], o[3] = linearToSRGB(r), linearToSRGB(g), linearToSRGB(b), 0xff
				continue
			}
			if a == 0 {
				continue
			}
			o[0] = linearToSRGB(unpremultiply(r, a))
			o[1] = linearToSRGB(unpremultiply(g, a))
			o[2] = linearToSRGB(unpremultiply(b, a))
			o[3] = uint8(a >> 8)
		}
	}
	return dst
}

func unpremultiply(c, a uint32) uint32 {
	return min(c, a) * 0xffff / a
}
