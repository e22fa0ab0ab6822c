package termpic

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	// Register decoders for extra formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrEmptyPath is returned by Load for an empty path
	ErrEmptyPath = errors.New("path cannot be empty")
	// ErrNilImage is returned by FromImage for a nil image
	ErrNilImage = errors.New("image cannot be nil")
)

// Source is a decoded image ready for the pipeline
type Source struct {
	// Pixels is the image as 8-bit non-premultiplied RGBA
	Pixels *image.NRGBA
	// Channels is the channel count of the original image: 1 gray, 2 gray and
	// alpha, 3 color, 4 color and alpha
	Channels int
	// Format is the name of the decoder that read the image, if any
	Format string
}

// HadAlpha reports whether the original image carried an alpha channel
func (s *Source) HadAlpha() bool {
	return s.Channels == 2 || s.Channels == 4
}

// Size returns the size of the decoded image
func (s *Source) Size() Size {
	b := s.Pixels.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Load decodes the image file at path
func Load(path string) (*Source, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes an image in any registered format from r
func Decode(r io.Reader) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	src.Format = format
	return src, nil
}

// FromImage wraps an already decoded image
func FromImage(img image.Image) (*Source, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	return &Source{
		Pixels:   toNRGBA(img),
		Channels: channelCount(img),
	}, nil
}

// toNRGBA copies img into a new NRGBA buffer anchored at the origin
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// Copy straight alpha as is; a round trip through premultiplied color
	// would lose precision in translucent pixels.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < bounds.Dy(); y++ {
			i := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[i:i+bounds.Dx()*4])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// channelCount infers the channel count of the original image from its
// concrete type. Premultiplied buffers only count as having alpha when they
// are not opaque, since decoders use them for plain RGB data too.
func channelCount(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.Alpha, *image.Alpha16:
		return 2
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return 4
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return 4
	}
	if img.ColorModel() == color.GrayModel || img.ColorModel() == color.Gray16Model {
		return 1
	}
	return 3
}
