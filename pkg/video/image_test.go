package video

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestToImage(t *testing.T) {
	green := PackRGB(0x00, 0xFF, 0x30)
	img := ToImage([]uint32{green, 0, 0, green}, 2, 2)

	if got := img.RGBAAt(0, 0); got.G != 0xFF || got.B != 0x30 || got.A != 0xFF {
		t.Errorf("pixel (0,0): expected green, got %v", got)
	}
	if got := img.RGBAAt(1, 0); got.G != 0 || got.A != 0 {
		t.Errorf("pixel (1,0): expected zero, got %v", got)
	}
}

func TestScale(t *testing.T) {
	green := PackRGB(0x00, 0xFF, 0x30)
	img := ToImage([]uint32{green, 0}, 2, 1)

	out := Scale(img, 1, 2)
	b := out.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds: expected 2x2, got %dx%d", b.Dx(), b.Dy())
	}
	for y := 0; y < 2; y++ {
		_, g, _, _ := out.At(0, y).RGBA()
		if g>>8 != 0xFF {
			t.Errorf("pixel (0,%d): expected green channel 0xFF, got 0x%X", y, g>>8)
		}
	}

	if Scale(img, 1, 1) != img {
		t.Error("Scale(1,1): expected the same image")
	}
}

func TestSavePNG(t *testing.T) {
	img := ToImage([]uint32{PackRGB(1, 2, 3)}, 1, 1)
	path := filepath.Join(t.TempDir(), "shot.png")

	if err := SavePNG(path, img, 1, 2); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := dec.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Errorf("decoded size: expected 1x2, got %dx%d", b.Dx(), b.Dy())
	}
}
