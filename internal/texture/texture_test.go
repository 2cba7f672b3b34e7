package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestColorBlock(t *testing.T) {
	img := ColorBlock(DefaultSize, Red)

	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("bounds = %v, want 512x512", b)
	}
	if len(img.Pix) != 512*512*4 {
		t.Fatalf("len(Pix) = %d", len(img.Pix))
	}
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 || img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want opaque red", i/4, img.Pix[i:i+4])
		}
	}
}

// litBounds returns the bounding box of pixels brighter than the background.
func litBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	first := true
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				continue
			}
			p := image.Rect(x, y, x+1, y+1)
			if first {
				r, first = p, false
			} else {
				r = r.Union(p)
			}
		}
	}
	return r
}

func TestText_CentredWhiteOnBlack(t *testing.T) {
	img, err := Text(TextOptions{Content: "Hello", Points: 40})
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Fatalf("bounds = %v", b)
	}

	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Fatalf("corner = %v, want opaque black", got)
	}

	lit := litBounds(img)
	if lit.Empty() {
		t.Fatalf("no text pixels rendered")
	}
	cx := (lit.Min.X + lit.Max.X) / 2
	cy := (lit.Min.Y + lit.Max.Y) / 2
	if cx < 256-16 || cx > 256+16 {
		t.Fatalf("text centre x = %d, want near 256 (lit %v)", cx, lit)
	}
	if cy < 256-24 || cy > 256+24 {
		t.Fatalf("text centre y = %d, want near 256 (lit %v)", cy, lit)
	}
	if lit.Dx() > 256 || lit.Dy() > 80 {
		t.Fatalf("text box %v too large for 40pt", lit)
	}
}

func TestText_LargerPointsWiderText(t *testing.T) {
	small, err := Text(TextOptions{Content: "Hello", Points: 20})
	if err != nil {
		t.Fatalf("Text(20) error: %v", err)
	}
	large, err := Text(TextOptions{Content: "Hello", Points: 60})
	if err != nil {
		t.Fatalf("Text(60) error: %v", err)
	}
	if litBounds(large).Dx() <= litBounds(small).Dx() {
		t.Fatalf("expected 60pt text wider than 20pt")
	}
}

func TestText_Errors(t *testing.T) {
	if _, err := Text(TextOptions{Content: "x"}); err == nil {
		t.Fatalf("expected error for zero size")
	}
	if _, err := Text(TextOptions{Content: "x", Points: 12, Font: []byte("not a font")}); err == nil {
		t.Fatalf("expected error for bad font data")
	}
}
