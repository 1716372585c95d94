package renderer

import (
	"image"
	"image/color"
)

// Pixel is a quantized 8-bit RGB color
type Pixel struct {
	R, G, B uint8
}

// PixelBuffer is the render target. Renderers only write cells and never resize it.
// Row 0 is the top scanline.
type PixelBuffer interface {
	Width() int
	Height() int
	SetPixel(row, col int, p Pixel)
}

// Image is an in-memory PixelBuffer that also satisfies image.Image,
// so it can be handed directly to the standard encoders.
type Image struct {
	width, height int
	pixels        []Pixel // row-major
}

// NewImage allocates a black image of the given size
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}
}

// Width returns the number of columns. A nil image has no columns.
func (img *Image) Width() int {
	if img == nil {
		return 0
	}
	return img.width
}

// Height returns the number of rows. A nil image has no rows.
func (img *Image) Height() int {
	if img == nil {
		return 0
	}
	return img.height
}

// SetPixel writes a cell. Distinct rows may be written from different goroutines.
func (img *Image) SetPixel(row, col int, p Pixel) {
	img.pixels[row*img.width+col] = p
}

// Pixel returns the cell at (row, col)
func (img *Image) Pixel(row, col int) Pixel {
	return img.pixels[row*img.width+col]
}

// ColorModel implements image.Image
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image; y is the row, x the column
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	p := img.Pixel(y, x)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// ToRGBA copies the image into a standard RGBA image
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	for row := 0; row < img.height; row++ {
		for col := 0; col < img.width; col++ {
			p := img.Pixel(row, col)
			rgba.SetRGBA(col, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}
