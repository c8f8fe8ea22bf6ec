package ndsicon

import (
	"bytes"
	"encoding/binary"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ndsicon/rom"
	"github.com/stretchr/testify/require"
)

// testROM returns a minimal ROM image with the banner at offset 0, chunk 0
// byte 0 set to 0x12, palette entry 1 black and entry 2 white.
func testROM() []byte {
	b := make([]byte, rom.DefaultLayout.PaletteOffset+32)
	b[rom.DefaultLayout.BitmapOffset] = 0x12
	binary.LittleEndian.PutUint16(b[rom.DefaultLayout.PaletteOffset+2:], 0x0000)
	binary.LittleEndian.PutUint16(b[rom.DefaultLayout.PaletteOffset+4:], 0x7fff)
	return b
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, b, 0644))
	return file
}

func newTestExtractor(t *testing.T, opts Options, db *IconDB) (*Extractor, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	e, err := New(opts, db, log.New(buf, "", 0))
	require.NoError(t, err)
	return e, buf
}

func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Scale = 1
	opts.OutputDir = filepath.Join(t.TempDir(), "icons")
	return opts
}
