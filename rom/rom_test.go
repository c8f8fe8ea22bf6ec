package rom

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ndsicon/icon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const banner = 0x200

func testImage() []byte {
	b := make([]byte, banner+0x240)
	copy(b[titleAddress:], "POKEMON D\x00\x00\x00")
	copy(b[gameCodeAddress:], "ADAE")
	binary.LittleEndian.PutUint32(b[DefaultLayout.IconOffsetAddress:], banner)
	for i := 0; i < icon.BitmapSize; i++ {
		b[banner+DefaultLayout.BitmapOffset+i] = byte(i)
	}
	for i := 0; i < icon.ColorsPerPalette; i++ {
		binary.LittleEndian.PutUint16(b[banner+DefaultLayout.PaletteOffset+i*2:], uint16(0x7000|i))
	}
	return b
}

func TestTileOffset(t *testing.T) {
	r := New(testImage(), DefaultLayout)

	offset, err := r.TileOffset()
	require.NoError(t, err)
	assert.Equal(t, uint32(banner), offset)
}

func TestTileOffsetTruncated(t *testing.T) {
	r := New(make([]byte, DefaultLayout.IconOffsetAddress+3), DefaultLayout)

	_, err := r.TileOffset()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, "header", oob.Region)
	assert.Equal(t, uint64(0x6c), oob.End)
	assert.Equal(t, 0x6b, oob.Length)
}

func TestBitmap(t *testing.T) {
	r := New(testImage(), DefaultLayout)

	b, err := r.Bitmap(banner)
	require.NoError(t, err)
	for i := range b {
		assert.Equal(t, byte(i), b[i])
	}
}

func TestBitmapIsCopy(t *testing.T) {
	image := testImage()
	r := New(image, DefaultLayout)

	b, err := r.Bitmap(banner)
	require.NoError(t, err)
	b[0] = 0xff
	assert.Equal(t, byte(0), image[banner+DefaultLayout.BitmapOffset])
}

func TestBitmapTruncated(t *testing.T) {
	image := testImage()
	// One byte short of the end of the bitmap
	r := New(image[:banner+DefaultLayout.BitmapOffset+icon.BitmapSize-1], DefaultLayout)

	_, err := r.Bitmap(banner)
	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, "bitmap", oob.Region)

	// Exactly long enough
	r = New(image[:banner+DefaultLayout.BitmapOffset+icon.BitmapSize], DefaultLayout)
	_, err = r.Bitmap(banner)
	assert.NoError(t, err)
}

func TestBitmapHostileOffset(t *testing.T) {
	r := New(testImage(), DefaultLayout)

	_, err := r.Bitmap(0xffffffff)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestPalette(t *testing.T) {
	r := New(testImage(), DefaultLayout)

	p, err := r.Palette(banner)
	require.NoError(t, err)
	for i := range p {
		assert.Equal(t, uint16(0x7000|i), p[i])
	}
}

func TestPaletteTruncated(t *testing.T) {
	image := testImage()
	r := New(image[:banner+DefaultLayout.PaletteOffset+icon.PaletteSize-1], DefaultLayout)

	_, err := r.Palette(banner)
	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Equal(t, "palette", oob.Region)
	assert.Contains(t, oob.Error(), "palette region 0x420-0x440")
}

func TestHeader(t *testing.T) {
	r := New(testImage(), DefaultLayout)

	title, err := r.Title()
	require.NoError(t, err)
	assert.Equal(t, "POKEMON D", title)

	code, err := r.GameCode()
	require.NoError(t, err)
	assert.Equal(t, "ADAE", code)

	_, err = New(make([]byte, 8), DefaultLayout).Title()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "00000000", New(nil, DefaultLayout).Checksum())
	assert.Equal(t, "CBF43926", New([]byte("123456789"), DefaultLayout).Checksum())
}

func TestLayout(t *testing.T) {
	b := make([]byte, 0x300)
	binary.LittleEndian.PutUint32(b[0x10:], 0x40)
	b[0x40+0x08] = 0xab

	r := New(b, Layout{IconOffsetAddress: 0x10, BitmapOffset: 0x08, PaletteOffset: 0x208})
	offset, err := r.TileOffset()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x40), offset)

	bitmap, err := r.Bitmap(offset)
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), bitmap[0])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.nds")
	require.NoError(t, os.WriteFile(file, testImage(), 0644))

	r, err := Load(file, DefaultLayout)
	require.NoError(t, err)
	assert.Equal(t, banner+0x240, r.Len())

	_, err = Load(filepath.Join(dir, "missing.nds"), DefaultLayout)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
