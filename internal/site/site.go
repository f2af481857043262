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

// Package site generates a static HTML site from a tree of Markdown pages.
package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go4.org/bytereplacer"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"zombiezen.com/go/sitemark"
)

// Template placeholders.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

const (
	markdownExt = ".md"
	htmlExt     = ".html"
)

// A Generator writes pages and static assets to disk.
// The zero value is a silent generator
// that uses one worker per available CPU.
type Generator struct {
	// Logf, if not nil, is called with a line of progress output
	// for each file copied or generated.
	// Calls are serialized.
	Logf func(format string, args ...any)
	// Workers limits the number of pages GenerateTree generates at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int

	logMu sync.Mutex
}

// logf calls Logf one line at a time,
// so Logf need not be safe for concurrent use.
func (g *Generator) logf(format string, args ...any) {
	if g.Logf == nil {
		return
	}
	g.logMu.Lock()
	defer g.logMu.Unlock()
	g.Logf(format, args...)
}

// CopyStatic replaces dst with a copy of the directory tree at src.
// A missing src leaves dst as an empty directory.
func (g *Generator) CopyStatic(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("copy static: %w", err)
	}
	if err := os.MkdirAll(dst, 0o777); err != nil {
		return fmt.Errorf("copy static: %w", err)
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		g.logf("No static directory at %s", src)
		return nil
	}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			g.logf("Creating directory: %s", target)
			return os.Mkdir(target, 0o777)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		g.logf("Copying file: %s to %s", path, target)
		return copyFile(target, path)
	})
	if err != nil {
		return fmt.Errorf("copy static: %w", err)
	}
	return nil
}

func copyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}

// GeneratePage converts the Markdown file at from
// and writes it to dest using the template file at templatePath.
// Parent directories of dest are created as needed.
func (g *Generator) GeneratePage(from, templatePath, dest string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("generate %s: %w", from, err)
	}
	return g.generatePage(from, tmpl, dest)
}

func (g *Generator) generatePage(from string, tmpl []byte, dest string) error {
	g.logf("Generating page from %s to %s", from, dest)
	source, err := os.ReadFile(from)
	if err != nil {
		return fmt.Errorf("generate %s: %w", from, err)
	}
	page, err := RenderPage(tmpl, string(source))
	if err != nil {
		return fmt.Errorf("generate %s: %w", from, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o777); err != nil {
		return fmt.Errorf("generate %s: %w", from, err)
	}
	if err := os.WriteFile(dest, page, 0o666); err != nil {
		return fmt.Errorf("generate %s: %w", from, err)
	}
	return nil
}

// RenderPage converts a Markdown document and substitutes its title and HTML
// for the placeholders in tmpl.
// The source is normalized to Unicode NFC before conversion.
// Substituted text is not itself searched for placeholders.
func RenderPage(tmpl []byte, markdown string) ([]byte, error) {
	markdown = norm.NFC.String(markdown)
	root, err := sitemark.Convert(markdown)
	if err != nil {
		return nil, err
	}
	title, err := sitemark.ExtractTitle(markdown)
	if err != nil {
		return nil, err
	}
	r := bytereplacer.New(
		TitlePlaceholder, title,
		ContentPlaceholder, root.HTML(),
	)
	// Replace may modify its argument.
	buf := make([]byte, len(tmpl))
	copy(buf, tmpl)
	return r.Replace(buf), nil
}

// GenerateTree generates a page for every Markdown file under contentDir.
// Each "name.md" is written to "name.html"
// at the same relative path under destDir.
// A page that fails to generate does not stop the others:
// GenerateTree returns the failures joined in path order.
func (g *Generator) GenerateTree(contentDir, templatePath, destDir string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("generate pages: %w", err)
	}
	pages, err := findPages(contentDir)
	if err != nil {
		return fmt.Errorf("generate pages: %w", err)
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	errs := make([]error, len(pages))
	grp := new(errgroup.Group)
	grp.SetLimit(workers)
	for i, rel := range pages {
		grp.Go(func() error {
			from := filepath.Join(contentDir, rel)
			dest := filepath.Join(destDir, strings.TrimSuffix(rel, markdownExt)+htmlExt)
			errs[i] = g.generatePage(from, tmpl, dest)
			return nil
		})
	}
	grp.Wait()
	return errors.Join(errs...)
}

// findPages returns the paths of Markdown files under dir,
// relative to dir, in lexical order.
func findPages(dir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != markdownExt {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		pages = append(pages, rel)
		return nil
	})
	return pages, err
}
