// Package texture produces the RGBA pixel data uploaded by the demo scenes.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the side length of the square demo textures.
const DefaultSize = 512

// Red is the colour of the block texture.
var Red = color.RGBA{R: 255, A: 255}

// ColorBlock returns a size×size image filled with c.
func ColorBlock(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// TextOptions describes a text texture.
type TextOptions struct {
	Size    int     // Texture side length; zero selects DefaultSize.
	Content string  // Single line of text.
	Points  float64 // Font size at 72 DPI.

	Foreground color.Color // Default white.
	Background color.Color // Default opaque black.

	// Font is an OpenType/TrueType font file. Nil selects Go Regular.
	Font []byte
}

// Text renders opts.Content centred on a square background.
func Text(opts TextOptions) (*image.RGBA, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Points <= 0 {
		return nil, fmt.Errorf("invalid font size %v", opts.Points)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.White
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.Font == nil {
		opts.Font = goregular.TTF
	}

	parsed, err := opentype.Parse(opts.Font)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    opts.Points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}

	// Centre the layout box: advance width by line height, baseline at ascent.
	metrics := face.Metrics()
	width := drawer.MeasureString(opts.Content)
	height := metrics.Ascent + metrics.Descent
	side := fixed.I(opts.Size)
	drawer.Dot = fixed.Point26_6{
		X: (side - width) / 2,
		Y: (side-height)/2 + metrics.Ascent,
	}
	drawer.DrawString(opts.Content)

	return img, nil
}
