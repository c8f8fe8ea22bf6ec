package ndsicon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/bodgit/ndsicon/icon"
	"github.com/ericpauley/go-quantize/quantize"
	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/bmp"
)

// Format is an output image format.
type Format int

// Supported output formats.
const (
	PNG Format = iota
	BMP
	ICO
)

// Icons in an ICO file can't be larger than this in either direction
const maxICOSize = 256

var errUnknownFormat = errors.New("unknown image format")

var formats = map[Format]string{
	PNG: "png",
	BMP: "bmp",
	ICO: "ico",
}

var encoders = map[Format]func(io.Writer, image.Image) error{
	PNG: png.Encode,
	BMP: bmp.Encode,
	ICO: ico.Encode,
}

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	for f, name := range formats {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownFormat, s)
}

func (f Format) String() string {
	if name, ok := formats[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension, including the leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

func reduce(m image.Image, colors int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func (e *Extractor) encode(c *icon.Canvas) ([]byte, error) {
	var m image.Image = c
	if e.opts.Colors > 0 {
		m = reduce(c, e.opts.Colors)
	}

	b := new(bytes.Buffer)
	if err := encoders[e.opts.Format](b, m); err != nil {
		return nil, fmt.Errorf("unable to encode %s: %w", e.opts.Format, err)
	}
	return b.Bytes(), nil
}
