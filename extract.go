package ndsicon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/ndsicon/icon"
	"github.com/bodgit/ndsicon/rom"
)

func (e *Extractor) decode(r *rom.ROM) (*icon.Canvas, error) {
	offset, err := r.TileOffset()
	if err != nil {
		return nil, err
	}

	bitmap, err := r.Bitmap(offset)
	if err != nil {
		return nil, err
	}

	palette, err := r.Palette(offset)
	if err != nil {
		return nil, err
	}

	return icon.Decode(bitmap, palette, e.opts.Scale), nil
}

func (e *Extractor) cached(crc string) ([]byte, error) {
	if e.db == nil {
		return nil, nil
	}
	i, err := e.db.FindIconByCRC(crc)
	if err != nil || i == nil {
		return nil, err
	}
	if i.Scale != e.opts.Scale || i.Format != e.opts.Format || i.Colors != e.opts.Colors || i.Layout != e.opts.Layout {
		return nil, nil
	}
	return i.Image, nil
}

func (e *Extractor) catalog(r *rom.ROM, crc string, b []byte) error {
	if e.db == nil {
		return nil
	}

	title, err := r.Title()
	if err != nil {
		return err
	}

	code, err := r.GameCode()
	if err != nil {
		return err
	}

	return e.db.AddIcon(&Icon{
		CRC:      crc,
		GameCode: code,
		Title:    title,
		Scale:    e.opts.Scale,
		Format:   e.opts.Format,
		Colors:   e.opts.Colors,
		Layout:   e.opts.Layout,
		Image:    b,
	})
}

// Extract decodes the icon in the ROM image at file and writes it to the
// output directory as name with the extension of the configured format. It
// returns the path of the written file.
func (e *Extractor) Extract(file, name string) (string, error) {
	r, err := rom.Load(file, e.opts.Layout)
	if err != nil {
		return "", err
	}

	crc := r.Checksum()

	b, err := e.cached(crc)
	if err != nil {
		return "", err
	}

	if b != nil {
		e.debugf("Using catalog icon for \"%s\", with CRC \"%s\"\n", file, crc)
		return e.save(name, b)
	}

	c, err := e.decode(r)
	if err != nil {
		return "", err
	}

	if b, err = e.encode(c); err != nil {
		return "", err
	}

	out, err := e.save(name, b)
	if err != nil {
		return "", err
	}

	// Only catalog icons that made it to disk
	if err := e.catalog(r, crc, b); err != nil {
		return "", err
	}

	return out, nil
}

// ExtractIcon is like Extract but reports any failure to the logger rather
// than returning it. It returns true if the icon was written.
func (e *Extractor) ExtractIcon(file, name string) bool {
	out, err := e.Extract(file, name)
	if err != nil {
		e.logger.Printf("Unable to extract icon from \"%s\": %v\n", file, err)
		return false
	}
	e.debugf("Extracted icon from \"%s\" to \"%s\"\n", file, out)
	return true
}

func stem(file string) string {
	base := filepath.Base(file)
	return base[:len(base)-len(filepath.Ext(base))]
}

// ExtractFiles calls ExtractIcon for each file, naming each icon after the
// file without its extension.
func (e *Extractor) ExtractFiles(files ...string) Summary {
	var s Summary
	for _, file := range files {
		s.add(e.ExtractIcon(file, stem(file)))
	}
	return s
}

func (e *Extractor) outputPath(name string) string {
	return filepath.Join(e.opts.OutputDir, name+e.opts.Format.Extension())
}

func (e *Extractor) save(name string, b []byte) (string, error) {
	if err := os.MkdirAll(e.opts.OutputDir, 0755); err != nil {
		return "", err
	}

	file := e.outputPath(name)

	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return "", err
	}

	if err = f.Close(); err != nil {
		return "", fmt.Errorf("unable to close %s: %w", file, err)
	}

	return file, nil
}
