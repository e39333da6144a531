/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
)

const builtinCatalog = "builtin:data/destinations.json"

//go:embed data/destinations.json
var destinationsJSON []byte

// openCatalog returns a reader for the catalog at path, or for the built-in
// catalog if path is empty, along with its size in bytes.
func openCatalog(path string) (io.ReadCloser, int64, error) {
	if path == "" {
		return io.NopCloser(bytes.NewReader(destinationsJSON)), int64(len(destinationsJSON)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, 0, err
	}

	if info.IsDir() {
		f.Close()

		return nil, 0, fmt.Errorf("%s is a directory", path)
	}

	return f, info.Size(), nil
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}
