/*
Package icon implements the Nintendo DS banner icon decoder.

The icon is defined as 32 by 32 pixels exactly which is split into sixteen 8
by 8 tiles, four across and four down. A single 16 color palette is shared by
every tile and palette index 0 is transparent.

The bitmap is stored as 512 bytes of pixel information; a 4-bit index for each
pixel with the left pixel of each pair in the lower nibble. The palette that
follows is 16 colors, each stored as a little-endian packed 16-bit value.
*/
package icon

const (
	tileWidth  = 8
	tileHeight = tileWidth
	tilePixels = tileWidth * tileHeight
	tileX      = 4
	tileY      = 4
	numTiles   = tileX * tileY

	// ColorsPerPalette is the number of entries in the icon palette
	ColorsPerPalette = 16

	// Width and Height are the unscaled icon dimensions in pixels
	Width  = tileWidth * tileX
	Height = tileHeight * tileY

	chunkBytes = tilePixels >> 1

	// BitmapSize is the size in bytes of the packed 4-bit bitmap
	BitmapSize = numTiles * chunkBytes

	// PaletteSize is the size in bytes of the packed palette
	PaletteSize = ColorsPerPalette * 2
)

// Bitmap holds the packed 4-bit pixel indices of an icon.
type Bitmap [BitmapSize]byte

// Palette holds the raw 15-bit color words of an icon.
type Palette [ColorsPerPalette]uint16

// Color returns the decoded color at palette index i. Only the low nibble of
// i is used.
func (p *Palette) Color(i uint8) Color {
	return DecodeColor(p[i&0x0f])
}
