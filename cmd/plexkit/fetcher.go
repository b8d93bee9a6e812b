package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// dirFetcher serves Plex responses captured as JSON files. A request for
// /library/sections/3/all?type=10 reads library/sections/3/all.10.json and
// falls back to library/sections/3/all.json. Pages past the first are
// empty so paginated reads stop after one file.
type dirFetcher struct {
	dir string
}

func (f dirFetcher) Fetch(ctx context.Context, path string, query url.Values) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if start := query.Get("X-Plex-Container-Start"); start != "" && start != "0" {
		return map[string]any{"MediaContainer": map[string]any{"size": float64(0)}}, nil
	}

	base := filepath.Join(f.dir, filepath.FromSlash(strings.Trim(path, "/")))
	var candidates []string
	if t := query.Get("type"); t != "" {
		candidates = append(candidates, base+"."+t+".json")
	}
	candidates = append(candidates, base+".json")

	for _, name := range candidates {
		body, err := readJSON(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return body, err
	}
	return nil, fmt.Errorf("no capture for %s: %w", path, fs.ErrNotExist)
}

// readJSON decodes a JSON file into the generic tree the parsers read.
func readJSON(name string) (any, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return body, nil
}
