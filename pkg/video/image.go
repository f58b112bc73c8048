package video

import (
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// ToImage wraps width x height packed pixels as an image.
func ToImage(pixels []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && i < len(pixels); i++ {
		r, g, b, a := UnpackRGB(pixels[i])
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}

// Scale returns img enlarged by whole factors using nearest neighbour
// sampling, which keeps character cells sharp.
func Scale(img image.Image, sx, sy int) image.Image {
	if sx <= 1 && sy <= 1 {
		return img
	}
	if sx < 1 {
		sx = 1
	}
	if sy < 1 {
		sy = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*sx, b.Dy()*sy))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG writes img scaled by (sx, sy) as a PNG.
func EncodePNG(w io.Writer, img image.Image, sx, sy int) error {
	return png.Encode(w, Scale(img, sx, sy))
}

// SavePNG encodes img scaled by (sx, sy) to filename.
func SavePNG(filename string, img image.Image, sx, sy int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodePNG(f, img, sx, sy)
}
