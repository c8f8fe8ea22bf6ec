package ndsicon

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/ndsicon/rom"
	_ "github.com/mattn/go-sqlite3"
)

// Icon is an extracted icon as stored in the catalog.
type Icon struct {
	CRC      string
	GameCode string
	Title    string
	Scale    int
	Format   Format
	Colors   int
	Layout   rom.Layout
	Image    []byte
}

// IconDB is a catalog of extracted icons keyed by the CRC-32 of the ROM
// image they came from.
type IconDB struct {
	db *sql.DB
}

// NewIconDB opens or creates the catalog in file.
func NewIconDB(file string) (*IconDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// sqlite only allows a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS icon (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, game_code TEXT NOT NULL, title TEXT NOT NULL, scale INTEGER NOT NULL, format TEXT NOT NULL, colors INTEGER NOT NULL, icon_offset_address INTEGER NOT NULL, bitmap_offset INTEGER NOT NULL, palette_offset INTEGER NOT NULL, image BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &IconDB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *IconDB) Close() error {
	return db.db.Close()
}

// AddIcon stores i, replacing any icon with the same CRC.
func (db *IconDB) AddIcon(i *Icon) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO icon (crc, game_code, title, scale, format, colors, icon_offset_address, bitmap_offset, palette_offset, image) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", i.CRC, i.GameCode, i.Title, i.Scale, i.Format.String(), i.Colors, i.Layout.IconOffsetAddress, i.Layout.BitmapOffset, i.Layout.PaletteOffset, i.Image); err != nil {
		return err
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanIcon(s scanner) (*Icon, error) {
	var (
		i      Icon
		format string
		err    error
	)
	if err = s.Scan(&i.CRC, &i.GameCode, &i.Title, &i.Scale, &format, &i.Colors, &i.Layout.IconOffsetAddress, &i.Layout.BitmapOffset, &i.Layout.PaletteOffset, &i.Image); err != nil {
		return nil, err
	}
	if i.Format, err = ParseFormat(format); err != nil {
		return nil, err
	}
	return &i, nil
}

// FindIconByCRC returns the icon for the ROM image with the given CRC, or nil
// if there isn't one.
func (db *IconDB) FindIconByCRC(crc string) (*Icon, error) {
	i, err := scanIcon(db.db.QueryRow("SELECT crc, game_code, title, scale, format, colors, icon_offset_address, bitmap_offset, palette_offset, image FROM icon WHERE crc = ?", crc))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return i, nil
	default:
		return nil, err
	}
}

// Icons returns every icon in the catalog ordered by title.
func (db *IconDB) Icons() ([]*Icon, error) {
	rows, err := db.db.Query("SELECT crc, game_code, title, scale, format, colors, icon_offset_address, bitmap_offset, palette_offset, image FROM icon ORDER BY title, crc")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var icons []*Icon
	for rows.Next() {
		i, err := scanIcon(rows)
		if err != nil {
			return nil, err
		}
		icons = append(icons, i)
	}
	return icons, rows.Err()
}
