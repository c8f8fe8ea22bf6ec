package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	tables := []struct {
		chunk, index int
		x, y         int
	}{
		{0, 0, 0, 0},
		{0, 1, 2, 0},
		{0, 3, 6, 0},
		{0, 4, 0, 1},
		{0, 31, 6, 7},
		{1, 0, 8, 0},
		{3, 5, 26, 1},
		{4, 0, 0, 8},
		{5, 9, 10, 10},
		{15, 31, 30, 31},
	}

	for _, table := range tables {
		x, y := Position(table.chunk, table.index)
		assert.Equal(t, table.x, x, "chunk %d index %d", table.chunk, table.index)
		assert.Equal(t, table.y, y, "chunk %d index %d", table.chunk, table.index)
	}
}

func TestPositionFormula(t *testing.T) {
	for chunk := 0; chunk < numTiles; chunk++ {
		for i := 0; i < chunkBytes; i++ {
			x, y := Position(chunk, i)
			assert.Equal(t, (chunk*8)%32+(i*2)%8, x)
			assert.Equal(t, (chunk/4)*8+i/4, y)
		}
	}
}

func TestPositionCoversIcon(t *testing.T) {
	var seen [Height][Width]int
	for chunk := 0; chunk < numTiles; chunk++ {
		for i := 0; i < chunkBytes; i++ {
			x, y := Position(chunk, i)
			seen[y][x]++
			seen[y][x+1]++
		}
	}
	for y := range seen {
		for x := range seen[y] {
			assert.Equal(t, 1, seen[y][x], "(%d, %d)", x, y)
		}
	}
}

func TestDrawTransparent(t *testing.T) {
	var (
		b Bitmap
		p Palette
	)
	for i := range p {
		p[i] = 0x001f
	}

	c := Decode(&b, &p, 2)
	for _, px := range c.Pix {
		assert.Equal(t, White, px)
	}
}

func TestDrawNibbleOrder(t *testing.T) {
	var (
		b Bitmap
		p Palette
	)
	b[0] = 0x12
	p[1] = 0x0000
	p[2] = 0x7fff
	p[3] = 0x001f

	// Chunk 5, byte 9 lands at (10, 10) and (11, 10)
	b[5*chunkBytes+9] = 0x30

	c := Decode(&b, &p, 1)

	black := Color{}
	red := Color{0xff, 0x00, 0x00}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			switch {
			case x == 1 && y == 0:
				assert.Equal(t, black, c.At(x, y))
			case x == 11 && y == 10:
				assert.Equal(t, red, c.At(x, y))
			default:
				// (0, 0) is palette entry 2 which is also white
				assert.Equal(t, White, c.At(x, y), "(%d, %d)", x, y)
			}
		}
	}
}

func TestDrawScaled(t *testing.T) {
	var (
		b Bitmap
		p Palette
	)
	for i := range b {
		b[i] = 0x11
	}
	p[1] = 0x7c00

	c := Decode(&b, &p, 3)
	blue := Color{0x00, 0x00, 0xff}
	for _, px := range c.Pix {
		assert.Equal(t, blue, px)
	}
}
