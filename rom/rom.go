/*
Package rom reads the regions of a Nintendo DS cartridge ROM image needed to
locate and decode the banner icon.

The header holds a little-endian pointer to the banner. The icon bitmap and
palette sit at fixed offsets from that pointer. Every read is checked against
the length of the image so a truncated or corrupt file fails cleanly.
*/
package rom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io/ioutil"
	"strings"

	"github.com/bodgit/ndsicon/icon"
)

const (
	titleAddress    = 0x000
	titleSize       = 12
	gameCodeAddress = 0x00c
	gameCodeSize    = 4
	pointerSize     = 4
)

// Layout describes where the icon is found within a ROM image.
type Layout struct {
	// IconOffsetAddress is the header address of the banner pointer
	IconOffsetAddress int
	// BitmapOffset is the offset of the bitmap from the banner
	BitmapOffset int
	// PaletteOffset is the offset of the palette from the banner
	PaletteOffset int
}

// DefaultLayout is the layout used by retail DS cartridges.
var DefaultLayout = Layout{
	IconOffsetAddress: 0x68,
	BitmapOffset:      0x20,
	PaletteOffset:     0x220,
}

// ErrOutOfBounds is matched by every *OutOfBoundsError.
var ErrOutOfBounds = errors.New("rom: region out of bounds")

// OutOfBoundsError records a read that would extend past the end of the
// image.
type OutOfBoundsError struct {
	Region string
	Start  uint64
	End    uint64
	Length int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("rom: %s region 0x%x-0x%x exceeds image length 0x%x", e.Region, e.Start, e.End, e.Length)
}

// Is reports whether target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ROM is an in-memory ROM image.
type ROM struct {
	b      []byte
	layout Layout
}

// New returns a ROM backed by b. b must not be modified afterwards.
func New(b []byte, l Layout) *ROM {
	return &ROM{
		b:      b,
		layout: l,
	}
}

// Load reads the whole of file into memory.
func Load(file string, l Layout) (*ROM, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return New(b, l), nil
}

// Len returns the size of the image in bytes.
func (r *ROM) Len() int {
	return len(r.b)
}

func (r *ROM) region(name string, start uint64, size int) ([]byte, error) {
	end := start + uint64(size)
	if end > uint64(len(r.b)) {
		return nil, &OutOfBoundsError{
			Region: name,
			Start:  start,
			End:    end,
			Length: len(r.b),
		}
	}
	return r.b[start:end], nil
}

// TileOffset returns the banner pointer stored in the header.
func (r *ROM) TileOffset() (uint32, error) {
	b, err := r.region("header", uint64(r.layout.IconOffsetAddress), pointerSize)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Bitmap returns a copy of the icon bitmap for the banner at tileOffset.
func (r *ROM) Bitmap(tileOffset uint32) (*icon.Bitmap, error) {
	b, err := r.region("bitmap", uint64(tileOffset)+uint64(r.layout.BitmapOffset), icon.BitmapSize)
	if err != nil {
		return nil, err
	}
	bitmap := new(icon.Bitmap)
	copy(bitmap[:], b)
	return bitmap, nil
}

// Palette returns the icon palette for the banner at tileOffset.
func (r *ROM) Palette(tileOffset uint32) (*icon.Palette, error) {
	b, err := r.region("palette", uint64(tileOffset)+uint64(r.layout.PaletteOffset), icon.PaletteSize)
	if err != nil {
		return nil, err
	}
	palette := new(icon.Palette)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, palette); err != nil {
		return nil, err
	}
	return palette, nil
}

func (r *ROM) ascii(name string, address, size int) (string, error) {
	b, err := r.region(name, uint64(address), size)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b)), nil
}

// Title returns the game title from the header.
func (r *ROM) Title() (string, error) {
	return r.ascii("title", titleAddress, titleSize)
}

// GameCode returns the four character game code from the header.
func (r *ROM) GameCode() (string, error) {
	return r.ascii("game code", gameCodeAddress, gameCodeSize)
}

// Checksum returns the CRC-32 of the whole image.
func (r *ROM) Checksum() string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(r.b))
}
