package icon

import "image/color"

// Color is an opaque 24-bit RGB color. It implements the color.Color
// interface.
type Color struct {
	R, G, B uint8
}

// White is the canvas background.
var White = Color{0xff, 0xff, 0xff}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

func expand(c uint16) uint8 {
	return uint8(c<<3 + c>>2)
}

// DecodeColor converts a packed palette word to a Color. The word is packed
// as 0BBBBBGGGGGRRRRR and each 5-bit channel is widened to 8 bits by
// replicating its top bits into the bottom.
func DecodeColor(w uint16) Color {
	return Color{
		expand(w & 0x1f),
		expand(w >> 5 & 0x1f),
		expand(w >> 10 & 0x1f),
	}
}
