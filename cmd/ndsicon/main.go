package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/bodgit/ndsicon"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func openDB(c *cli.Context) (*ndsicon.IconDB, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return ndsicon.NewIconDB(c.String("db"))
}

func newExtractor(c *cli.Context, dir string, db *ndsicon.IconDB) (*ndsicon.Extractor, error) {
	format, err := ndsicon.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	opts := ndsicon.DefaultOptions()
	opts.Scale = c.Int("scale")
	opts.Format = format
	opts.Colors = c.Int("colors")
	opts.Workers = c.Int("workers")
	opts.Verbose = c.Bool("verbose")
	opts.OutputDir = c.String("output")
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(dir, ndsicon.DefaultOutputDir)
	}

	return ndsicon.New(opts, db, log.New(os.Stderr, "", 0))
}

func run(c *cli.Context, fn func(*ndsicon.Extractor) (ndsicon.Summary, error), dir string) error {
	db, err := openDB(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if db != nil {
		defer db.Close()
	}

	e, err := newExtractor(c, dir, db)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	s, err := fn(e)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if s.Found > 0 && c.Bool("verbose") {
		fmt.Fprintf(os.Stderr, "%d extracted, %d failed\n", s.Extracted, s.Failed)
	}

	return nil
}

func scan(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		dir = cwd
	}

	return run(c, func(e *ndsicon.Extractor) (ndsicon.Summary, error) {
		return e.Scan(dir)
	}, dir)
}

func main() {
	app := cli.NewApp()

	app.Name = "ndsicon"
	app.Usage = "Nintendo DS ROM icon extractor"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NDSICON_DB"},
			Usage:   "path to icon catalog",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: ndsicon.DefaultScale,
			Usage: "pixel replication factor",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "output directory (default: DIRECTORY/icons)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: ndsicon.PNG.String(),
			Usage: "output format; png, bmp or ico",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "quantize icons to this many colors, 0 keeps RGB",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 1,
			Usage: "number of ROM images to process concurrently",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = scan

	app.Commands = []*cli.Command{
		{
			Name:        "scan",
			Usage:       "Extract icons from every ROM image in a directory",
			Description: "",
			ArgsUsage:   "[DIRECTORY]",
			Action:      scan,
		},
		{
			Name:        "extract",
			Usage:       "Extract icons from ROM images",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cwd, err := os.Getwd()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return run(c, func(e *ndsicon.Extractor) (ndsicon.Summary, error) {
					return e.ExtractFiles(c.Args().Slice()...), nil
				}, cwd)
			},
		},
		{
			Name:        "list",
			Usage:       "List icons in the catalog",
			Description: "",
			Action: func(c *cli.Context) error {
				if c.String("db") == "" {
					return cli.NewExitError("no catalog given, use --db", 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				icons, err := db.Icons()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "CRC\tCODE\tTITLE\tSCALE\tFORMAT\tBYTES")
				for _, i := range icons {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n", i.CRC, i.GameCode, i.Title, i.Scale, i.Format, len(i.Image))
				}
				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
