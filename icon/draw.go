package icon

func lowerNibble(b byte) byte {
	return b & 0x0f
}

func upperNibble(b byte) byte {
	return b >> 4 & 0x0f
}

// Position returns the icon coordinates of the left pixel packed into byte
// index of the given chunk. Each chunk is one 8 by 8 tile, stored row-major
// across the 4 by 4 grid of tiles.
func Position(chunk, index int) (x, y int) {
	x = (chunk*tileWidth)%Width + (index*2)%tileWidth
	y = (chunk/tileX)*tileHeight + index/(tileWidth>>1)
	return
}

// Draw rasterizes the bitmap onto the canvas using colors from the palette.
// Pixels using palette index 0 are left untouched.
func Draw(c *Canvas, b *Bitmap, p *Palette) {
	for chunk := 0; chunk < numTiles; chunk++ {
		for i := 0; i < chunkBytes; i++ {
			pixel := b[chunk*chunkBytes+i]
			x, y := Position(chunk, i)

			if left := lowerNibble(pixel); left != 0 {
				c.DrawPixel(x, y, p.Color(left))
			}
			if right := upperNibble(pixel); right != 0 {
				c.DrawPixel(x+1, y, p.Color(right))
			}
		}
	}
}

// Decode returns a new canvas at the given scale with the icon drawn on it.
func Decode(b *Bitmap, p *Palette, scale int) *Canvas {
	c := NewCanvas(scale)
	Draw(c, b, p)
	return c
}
