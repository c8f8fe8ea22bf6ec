package icon

import (
	"image"
	"image/color"
)

// Canvas is a scaled RGB raster of an icon. It implements the image.Image
// interface so it can be passed directly to an encoder.
type Canvas struct {
	Pix    []Color
	Stride int
	Scale  int
}

// NewCanvas returns a white canvas large enough to hold an icon with each
// pixel replicated into a scale by scale block.
func NewCanvas(scale int) *Canvas {
	w, h := Width*scale, Height*scale
	c := &Canvas{
		Pix:    make([]Color, w*h),
		Stride: w,
		Scale:  scale,
	}
	for i := range c.Pix {
		c.Pix[i] = White
	}
	return c
}

// DrawPixel paints the icon pixel at (x, y) as a block of c.Scale by c.Scale
// canvas cells. x and y must be within the icon.
func (c *Canvas) DrawPixel(x, y int, col Color) {
	for dy := 0; dy < c.Scale; dy++ {
		i := (y*c.Scale+dy)*c.Stride + x*c.Scale
		for dx := 0; dx < c.Scale; dx++ {
			c.Pix[i+dx] = col
		}
	}
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Stride, len(c.Pix)/c.Stride)
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(c.Bounds())) {
		return color.RGBA{}
	}
	return c.Pix[y*c.Stride+x]
}

// Opaque reports whether the canvas is fully opaque, which it always is.
func (c *Canvas) Opaque() bool {
	return true
}
