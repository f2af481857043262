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

// sitemark builds a static HTML site from a directory of Markdown pages.
//
// Usage:
//
//	sitemark [flags]
//	sitemark fmt [-w] FILE [...]
//
// The first form copies the static directory into the public directory
// and then generates an HTML page for every Markdown file in the content directory.
// The second form prints the given Markdown files in normalized form,
// or rewrites them in place with -w.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"zombiezen.com/go/sitemark"
	"zombiezen.com/go/sitemark/format"
	"zombiezen.com/go/sitemark/internal/config"
	"zombiezen.com/go/sitemark/internal/site"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "fmt" {
		return runFormat(args[1:], stdout, stderr)
	}
	return runBuild(args, stderr)
}

type buildFlags struct {
	config   string
	content  string
	static   string
	public   string
	template string
	workers  int
	quiet    bool
	verbose  bool
}

func runBuild(args []string, stderr io.Writer) int {
	fset := flag.NewFlagSet("sitemark", flag.ContinueOnError)
	fset.SetOutput(stderr)
	f := new(buildFlags)
	fset.StringVarP(&f.config, "config", "c", "", "YAML configuration `file`")
	fset.StringVar(&f.content, "content", "", "Markdown content `dir`ectory")
	fset.StringVar(&f.static, "static", "", "static assets `dir`ectory")
	fset.StringVar(&f.public, "public", "", "output `dir`ectory")
	fset.StringVar(&f.template, "template", "", "HTML template `file`")
	fset.IntVarP(&f.workers, "workers", "j", 0, "number of pages to generate concurrently (0 = one per CPU)")
	fset.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fset.BoolVarP(&f.verbose, "verbose", "v", false, "print runtime settings")
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitUsage
	}
	if fset.NArg() > 0 {
		fmt.Fprintf(stderr, "sitemark: unexpected argument %q\n", fset.Arg(0))
		return exitUsage
	}
	if f.quiet && f.verbose {
		fmt.Fprintln(stderr, "sitemark: --quiet and --verbose are mutually exclusive")
		return exitUsage
	}

	logger := func(string, ...any) {}
	if f.verbose {
		logger = func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}
	// Error ignored: maxprocs.Set only fails if the GOMAXPROCS environment variable
	// is invalid, in which case the runtime default applies.
	undoMaxProcs, _ := maxprocs.Set(maxprocs.Logger(logger))
	defer undoMaxProcs()

	cfg, err := loadConfig(fset, f)
	if err != nil {
		fmt.Fprintln(stderr, "sitemark:", err)
		return exitUsage
	}
	g := &site.Generator{Workers: cfg.Workers}
	if !f.quiet {
		g.Logf = func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}
	if f.verbose {
		fmt.Fprintf(stderr, "Content: %s\nStatic: %s\nPublic: %s\nTemplate: %s\n",
			cfg.Content, cfg.Static, cfg.Public, cfg.Template)
	}

	if cfg.Static == "" {
		err = os.MkdirAll(cfg.Public, 0o777)
	} else {
		err = g.CopyStatic(cfg.Static, cfg.Public)
	}
	if err != nil {
		fmt.Fprintln(stderr, "sitemark:", err)
		return exitFailure
	}
	if err := g.GenerateTree(cfg.Content, cfg.Template, cfg.Public); err != nil {
		fmt.Fprintln(stderr, "sitemark:", err)
		return exitFailure
	}
	return exitSuccess
}

// loadConfig reads the configuration file, if any,
// and applies the flags that were set explicitly.
func loadConfig(fset *flag.FlagSet, f *buildFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		cfg, err = config.Load(f.config)
		if err != nil {
			return nil, err
		}
	}
	if fset.Changed("content") {
		cfg.Content = f.content
	}
	if fset.Changed("static") {
		cfg.Static = f.static
	}
	if fset.Changed("public") {
		cfg.Public = f.public
	}
	if fset.Changed("template") {
		cfg.Template = f.template
	}
	if fset.Changed("workers") {
		cfg.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runFormat(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("sitemark fmt", flag.ContinueOnError)
	fset.SetOutput(stderr)
	write := fset.BoolP("write", "w", false, "write result to source file instead of stdout")
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitUsage
	}
	if fset.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: sitemark fmt [-w] FILE [...]")
		return exitUsage
	}
	code := exitSuccess
	for _, path := range fset.Args() {
		if err := formatFile(path, *write, stdout); err != nil {
			fmt.Fprintln(stderr, "sitemark:", err)
			code = exitFailure
		}
	}
	return code
}

func formatFile(path string, write bool, stdout io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	blocks := sitemark.ParseBlocks(string(source))
	if !write {
		return format.Format(stdout, blocks)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(format.FormatString(string(source))), info.Mode().Perm())
}
