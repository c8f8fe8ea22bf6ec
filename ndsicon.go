/*
Package ndsicon is a library for extracting the banner icon from Nintendo DS
cartridge ROM images.
*/
package ndsicon

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/bodgit/ndsicon/icon"
	"github.com/bodgit/ndsicon/rom"
)

const (
	// Extension is the file extension of ROM images found by Scan
	Extension = ".nds"

	// DefaultScale is the default pixel replication factor
	DefaultScale = 32

	// DefaultOutputDir is the directory icons are written to
	DefaultOutputDir = "icons"
)

// Options configures an Extractor.
type Options struct {
	// Scale is the number of output pixels per icon pixel in each direction
	Scale int
	// OutputDir is where icons are written, created if it doesn't exist
	OutputDir string
	// Format is the image format written
	Format Format
	// Colors reduces the icon to a palette of this many colors, 0 keeps
	// full RGB
	Colors int
	// Workers is the number of ROM images processed concurrently by Scan
	Workers int
	// Layout locates the icon within each ROM image
	Layout rom.Layout
	// Verbose logs each successful extraction as well as failures
	Verbose bool
}

// DefaultOptions returns the options used by the command line tool when no
// flags are given.
func DefaultOptions() Options {
	return Options{
		Scale:     DefaultScale,
		OutputDir: DefaultOutputDir,
		Format:    PNG,
		Workers:   1,
		Layout:    rom.DefaultLayout,
	}
}

// Extractor writes out the icons of ROM images.
type Extractor struct {
	opts   Options
	db     *IconDB
	logger *log.Logger
}

// New returns an Extractor. db may be nil in which case no catalog is kept,
// and a nil logger discards everything.
func New(opts Options, db *IconDB, logger *log.Logger) (*Extractor, error) {
	if opts.Scale < 1 {
		return nil, errors.New("scale must be at least 1")
	}
	if opts.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if opts.Colors != 0 && (opts.Colors < 2 || opts.Colors > 256) {
		return nil, errors.New("colors must be 0 or between 2 and 256")
	}
	if _, ok := encoders[opts.Format]; !ok {
		return nil, errUnknownFormat
	}
	if opts.Format == ICO && icon.Width*opts.Scale > maxICOSize {
		return nil, fmt.Errorf("%s output is limited to %dx%d pixels, scale must be at most %d", ICO, maxICOSize, maxICOSize, maxICOSize/icon.Width)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Extractor{
		opts:   opts,
		db:     db,
		logger: logger,
	}, nil
}

func (e *Extractor) debugf(format string, v ...interface{}) {
	if e.opts.Verbose {
		e.logger.Printf(format, v...)
	}
}
