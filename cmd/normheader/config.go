// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/normheader/header"
)

// configFile is looked up in the scanned directory when -config is not set.
const configFile = ".normheader.txtar"

type config struct {
	path       string // absolute path of the archive
	exclusions []string
	styles     *header.Styles
}

// isExcluded reports whether path matches an exclusion suffix or is a
// config archive itself.
func (cfg *config) isExcluded(path string) bool {
	if filepath.Base(path) == configFile {
		return true
	}
	if abs, err := filepath.Abs(path); err == nil && abs == cfg.path {
		return true
	}
	for _, ex := range cfg.exclusions {
		if strings.HasSuffix(path, ex) {
			return true
		}
	}
	return false
}

// loadConfig reads the project config archive at path. A missing archive is
// not an error unless required is set.
func loadConfig(path string, required bool) (*config, error) {
	cfg := &config{styles: header.DefaultStyles()}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.path = abs
	}

	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	for _, f := range ar.Files {
		switch f.Name {
		case "exclusions.json":
			if err := json.Unmarshal(f.Data, &cfg.exclusions); err != nil {
				return nil, fmt.Errorf("%s: exclusions.json: %w", path, err)
			}
		case "styles.json":
			var styles map[string]string
			if err := json.Unmarshal(f.Data, &styles); err != nil {
				return nil, fmt.Errorf("%s: styles.json: %w", path, err)
			}
			for ext, name := range styles {
				style, ok := header.StyleByName(name)
				if !ok {
					return nil, fmt.Errorf("%s: styles.json: unknown style %q for %q", path, name, ext)
				}
				cfg.styles.Register(ext, style)
			}
		}
	}

	return cfg, nil
}
