package ndsicon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Summary counts the outcome of extracting a batch of ROM images.
type Summary struct {
	Found     int
	Extracted int
	Failed    int
}

func (s *Summary) add(ok bool) {
	s.Found++
	if ok {
		s.Extracted++
	} else {
		s.Failed++
	}
}

func isROM(dir string, info os.FileInfo) bool {
	if !strings.EqualFold(filepath.Ext(info.Name()), Extension) {
		return false
	}

	// Symlinks count if they resolve to a normal file
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(filepath.Join(dir, info.Name()))
		if err != nil {
			return false
		}
		info = target
	}

	// Ignore anything that isn't a normal file
	return info.Mode().IsRegular()
}

func (e *Extractor) findROMs(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	defer d.Close()

	infos, err := d.Readdir(0)
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, info := range infos {
			if !isROM(dir, info) {
				continue
			}

			select {
			case out <- filepath.Join(dir, info.Name()):
			case <-ctx.Done():
				errc <- errors.New("scan cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

type counter struct {
	extracted int64
	failed    int64
}

func (c *counter) summary() Summary {
	s := Summary{
		Extracted: int(atomic.LoadInt64(&c.extracted)),
		Failed:    int(atomic.LoadInt64(&c.failed)),
	}
	s.Found = s.Extracted + s.Failed
	return s
}

func (e *Extractor) romWorker(ctx context.Context, in <-chan string, c *counter) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				errc <- errors.New("scan cancelled")
				return
			default:
			}

			// A failed ROM image is logged and skipped, it never stops the scan
			if e.ExtractIcon(file, stem(file)) {
				atomic.AddInt64(&c.extracted, 1)
			} else {
				atomic.AddInt64(&c.failed, 1)
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan extracts the icon from every ROM image in the top level of path. The
// returned error is only non-nil if the directory itself can't be read.
func (e *Extractor) Scan(path string) (Summary, error) {
	return e.ScanContext(context.Background(), path)
}

// ScanContext is like Scan but stops handing out ROM images once ctx is
// done, returning an error.
func (e *Extractor) ScanContext(ctx context.Context, path string) (Summary, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return Summary{}, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	roms, errc, err := e.findROMs(ctx, dir)
	if err != nil {
		return Summary{}, err
	}
	errcList = append(errcList, errc)

	c := new(counter)
	for i := 0; i < e.opts.Workers; i++ {
		errcList = append(errcList, e.romWorker(ctx, roms, c))
	}

	if err := waitForPipeline(errcList...); err != nil {
		return c.summary(), err
	}

	s := c.summary()
	if s.Found == 0 {
		e.logger.Printf("No %s file found in \"%s\"\n", Extension, dir)
	}
	return s, nil
}
