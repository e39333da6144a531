/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Seednode/globetrotter/destinations"
	"github.com/fsnotify/fsnotify"
)

// CatalogLoadError is returned when the destination catalog cannot be read,
// decoded or validated.
type CatalogLoadError struct {
	Source string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

type catalogFile struct {
	Destinations destinations.Catalog `json:"destinations"`
}

func loadCatalog(r io.Reader) (destinations.Catalog, error) {
	var data catalogFile

	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the catalog")
	}

	if data.Destinations == nil {
		return nil, errors.New(`missing "destinations" list`)
	}

	if err := data.Destinations.Validate(); err != nil {
		return nil, err
	}

	return data.Destinations, nil
}

// catalogStore holds the current catalog snapshot. Reloads swap the whole
// snapshot, so readers never see a partial catalog.
type catalogStore struct {
	cfg     *Config
	path    string
	current atomic.Pointer[destinations.Catalog]
}

func newCatalogStore(cfg *Config) (*catalogStore, error) {
	s := &catalogStore{
		cfg: cfg,
	}

	if cfg.catalog != "" {
		path, err := filepath.Abs(cfg.catalog)
		if err != nil {
			return nil, &CatalogLoadError{Source: cfg.catalog, Err: err}
		}
		s.path = path
	}

	if err := s.reload(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *catalogStore) source() string {
	if s.path == "" {
		return builtinCatalog
	}

	return s.path
}

// Catalog returns the current snapshot.
func (s *catalogStore) Catalog() destinations.Catalog {
	return *s.current.Load()
}

func (s *catalogStore) reload() error {
	startTime := time.Now()

	f, size, err := openCatalog(s.path)
	if err != nil {
		return &CatalogLoadError{Source: s.source(), Err: err}
	}
	defer f.Close()

	catalog, err := loadCatalog(f)
	if err != nil {
		return &CatalogLoadError{Source: s.source(), Err: err}
	}

	s.current.Store(&catalog)

	logf(s.cfg, "CATALOG: Loaded %d destinations (%s) from %s in %s",
		len(catalog),
		humanReadableSize(size),
		s.source(),
		time.Since(startTime).Round(time.Microsecond),
	)

	return nil
}

// watch reloads the catalog file whenever it is written or replaced, until ctx
// is done. A failed reload keeps the previous snapshot.
func (s *catalogStore) watch(ctx context.Context, errs chan<- error) error {
	if s.path == "" {
		return errors.New("the built-in catalog cannot be watched")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory rather than the file, so editors that save by
	// renaming a temporary file over the original are still seen.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()

		return err
	}

	logf(s.cfg, "CATALOG: Watching %s for changes", s.path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != s.path {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				if err := s.reload(); err != nil {
					reportError(ctx, errs, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				reportError(ctx, errs, err)
			}
		}
	}()

	return nil
}
