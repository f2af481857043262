// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the site generator's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config describes where a site's sources live and where output goes.
// Relative paths are resolved against the directory of the configuration file.
type Config struct {
	// Content is the directory holding Markdown pages.
	Content string `yaml:"content"`
	// Static is the directory whose files are copied verbatim to Public.
	// It may be absent on disk.
	Static string `yaml:"static"`
	// Public is the output directory.
	Public string `yaml:"public"`
	// Template is the path to the HTML page template.
	Template string `yaml:"template"`
	// Workers limits the number of pages generated concurrently.
	// Zero means one per available CPU.
	Workers int `yaml:"workers"`
}

// Validation errors.
var (
	ErrEmptyPath       = errors.New("path is empty")
	ErrNegativeWorkers = errors.New("workers must not be negative")
	ErrOverlappingDirs = errors.New("public directory overlaps a source path")
)

// maxFileSize is the largest configuration file Load accepts.
const maxFileSize = 1 << 20

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Content:  "content",
		Static:   "static",
		Public:   "public",
		Template: "template.html",
	}
}

// Load reads the configuration file at path.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes a YAML configuration and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("parse config: %d bytes exceeds limit of %d", len(data), maxFileSize)
	}
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports whether the configuration is usable.
func (cfg *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"content", cfg.Content},
		{"public", cfg.Public},
		{"template", cfg.Template},
	} {
		if f.value == "" {
			return fmt.Errorf("config: %s: %w", f.name, ErrEmptyPath)
		}
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("config: %w (got %d)", ErrNegativeWorkers, cfg.Workers)
	}
	// Public is removed and rebuilt, so it must not hold any source.
	if overlaps(cfg.Public, cfg.Content) {
		return fmt.Errorf("config: public and content: %w", ErrOverlappingDirs)
	}
	if cfg.Static != "" && overlaps(cfg.Public, cfg.Static) {
		return fmt.Errorf("config: public and static: %w", ErrOverlappingDirs)
	}
	if within(cfg.Template, cfg.Public) {
		return fmt.Errorf("config: template inside public: %w", ErrOverlappingDirs)
	}
	return nil
}

func (cfg *Config) resolve(dir string) {
	for _, p := range []*string{&cfg.Content, &cfg.Static, &cfg.Public, &cfg.Template} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

// within reports whether path is dir or a descendant of it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
