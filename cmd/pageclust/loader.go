package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pagecluster/htmlpage"
)

// loadDir parses every UTF-8 file below dir, in lexical path order. Files
// that are not valid UTF-8 are skipped.
func loadDir(ctx context.Context, dir string) ([]*htmlpage.Page, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loadFiles(ctx, paths)
}

// loadFiles parses paths concurrently and returns the pages in input order.
func loadFiles(ctx context.Context, paths []string) ([]*htmlpage.Page, error) {
	pages := make([]*htmlpage.Page, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !utf8.Valid(body) {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			p, err := htmlpage.ParseString("file://"+filepath.ToSlash(abs), string(body))
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := pages[:0]
	for _, p := range pages {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
