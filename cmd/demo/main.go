package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"strings"

	"github.com/blacktop/go-termpic"
)

func main() {
	if len(os.Args) > 1 {
		// If a file is provided, render it
		renderFile(os.Args[1])
	} else {
		// Otherwise, create a test pattern
		renderTestPattern()
	}
}

func renderFile(path string) {
	fmt.Printf("Rendering image: %s\n\n", path)

	geometry, _ := termpic.QueryTerminalGeometry()

	src, err := termpic.Load(path)
	if err != nil {
		log.Fatalf("Error loading file: %v", err)
	}
	if err := termpic.Display(os.Stdout, src, geometry, termpic.Options{}); err != nil {
		log.Fatalf("Error rendering file: %v", err)
	}

	fmt.Println("\nFixed 40 character width on a gray background:")

	src, err = termpic.Load(path)
	if err != nil {
		log.Fatalf("Error loading file: %v", err)
	}
	err = termpic.Display(os.Stdout, src, geometry, termpic.Options{
		Size:       termpic.Request{Width: termpic.Exactly(40)},
		Background: termpic.Gray,
	})
	if err != nil {
		log.Fatalf("Error rendering with options: %v", err)
	}
}

func renderTestPattern() {
	fmt.Print("Creating test pattern...\n\n")

	img := createTestPattern()
	geometry, _ := termpic.QueryTerminalGeometry()

	variants := []struct {
		name string
		opts termpic.Options
	}{
		{"Default (black, transparent cells skipped)", termpic.Options{}},
		{"White background", termpic.Options{Background: termpic.White}},
		{"Gray background, full alpha range", termpic.Options{Background: termpic.Gray, FullAlpha: true}},
		{"No alpha", termpic.Options{NoAlpha: true}},
		{"Mosaic renderer", termpic.Options{Renderer: &termpic.MosaicRenderer{}}},
	}

	for _, v := range variants {
		fmt.Printf("\n=== %s ===\n", v.name)

		// every run consumes its source, so start from a fresh one
		src, err := termpic.FromImage(img)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		v.opts.Size = termpic.Request{Width: termpic.Exactly(40)}
		if err := termpic.Display(os.Stdout, src, geometry, v.opts); err != nil {
			fmt.Printf("Error with %s: %v\n", v.name, err)
		}

		fmt.Print(strings.Repeat("-", 50) + "\n")
	}
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern that fades out towards the bottom
	for y := range size {
		for x := range size {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			a := uint8(255 - (y*255)/size)
			img.Set(x, y, color.NRGBA{r, g, b, a})
		}
	}

	// Red square
	draw.Draw(img, image.Rect(20, 20, 60, 60),
		&image.Uniform{color.NRGBA{255, 0, 0, 255}},
		image.Point{}, draw.Src)

	// Fully transparent hole
	draw.Draw(img, image.Rect(140, 20, 180, 60),
		&image.Uniform{color.NRGBA{}},
		image.Point{}, draw.Src)

	// Half transparent blue square
	draw.Draw(img, image.Rect(20, 140, 60, 180),
		&image.Uniform{color.NRGBA{0, 0, 255, 128}},
		image.Point{}, draw.Src)

	// White square
	draw.Draw(img, image.Rect(140, 140, 180, 180),
		&image.Uniform{color.NRGBA{255, 255, 255, 255}},
		image.Point{}, draw.Src)

	return img
}
