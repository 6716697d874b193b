// Package scaffold implements "init" command: it creates description,
// source and resource package templates for new plugins.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"c4ddev/rpkg"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Description is a single plugin to be created.
type Description struct {
	Kind Kind
	Name string
	ID   int
}

// Plan classifies names by their prefix, merges them with explicitly typed
// ones and assigns sequential plugin IDs starting with firstID. Result is
// ordered by kind.
func Plan(names []string, explicit map[Kind][]string, firstID int) ([]Description, error) {
	byKind := make(map[Kind][]string, len(explicit))
	for k, list := range explicit {
		byKind[k] = append(byKind[k], list...)
	}
	for _, name := range names {
		k, err := KindFromName(name)
		if err != nil {
			return nil, err
		}
		byKind[k] = append(byKind[k], name)
	}

	var result []Description
	id := firstID
	for _, kn := range KindNames() {
		k, _ := ParseKind(kn)
		for _, name := range byKind[k] {
			result = append(result, Description{Kind: k, Name: name, ID: id})
			id++
		}
	}
	return result, nil
}

// Options controls where and how templates are written.
type Options struct {
	Root      string // project directory
	SourceDir string // relative to Root, empty selects "src" when present or "source"
	Rpkg      bool   // produce .rpkg sources instead of headers and string tables
	Overwrite bool
	Banner    string // first line of generated headers, may be empty
}

type generator struct {
	opts    Options
	log     *zap.Logger
	tmpl    *template.Template
	written []string
}

// Generate creates directories and files for descriptions and returns names
// of files written. Existing files are kept unless Overwrite is requested,
// c4d_symbols.h is never overwritten.
func Generate(opts Options, descriptions []Description, log *zap.Logger) ([]string, error) {
	tmpl, err := template.New("scaffold").Funcs(sprig.FuncMap()).ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.SourceDir == "" {
		opts.SourceDir = "source"
		if fi, err := os.Stat(filepath.Join(opts.Root, "src")); err == nil && fi.IsDir() {
			opts.SourceDir = "src"
		}
		log.Info("Using source directory", zap.String("dir", opts.SourceDir))
	}

	g := &generator{opts: opts, log: log, tmpl: tmpl}
	if err := g.layout(); err != nil {
		return g.written, err
	}
	for _, d := range descriptions {
		if err := g.description(d); err != nil {
			return g.written, fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	return g.written, nil
}

func (g *generator) path(parts ...string) string {
	return filepath.Join(append([]string{g.opts.Root}, parts...)...)
}

func (g *generator) layout() error {
	dirs := []string{g.path(g.opts.SourceDir), g.path("res"), g.path("res", "description")}
	if !g.opts.Rpkg {
		dirs = append(dirs, g.path("res", rpkg.LanguageUs.Dir(), "description"))
	}
	for _, dir := range dirs {
		if err := g.mkdir(dir); err != nil {
			return err
		}
	}
	symbols := rpkg.NewPackage(rpkg.SymbolsPackageName)
	return g.write(symbols.HeaderPath(g.path("res")), symbols.Header(g.opts.Banner), false)
}

type values struct {
	Name   string
	ID     int
	Base   string
	Groups []string
	Parent string
}

func (g *generator) description(d Description) error {
	info := d.Kind.info()
	v := values{Name: d.Name, ID: d.ID, Base: info.base, Groups: info.groups, Parent: info.parent}

	if err := g.render(g.path("res", "description", d.Name+".res"), "description.res.tmpl", v); err != nil {
		return err
	}
	if err := g.render(g.path(g.opts.SourceDir, d.Name+".cpp"), "plugin.cpp.tmpl", v); err != nil {
		return err
	}
	if g.opts.Rpkg {
		return g.render(g.path(g.opts.SourceDir, d.Name+".rpkg"), "package.rpkg.tmpl", v)
	}

	pkg := rpkg.NewPackage(d.Name)
	pkg.Symbols.Add(d.Name, d.ID)
	pkg.Localize(rpkg.LanguageUs, d.Name, d.Name)
	if err := g.write(pkg.HeaderPath(g.path("res")), pkg.Header(g.opts.Banner), true); err != nil {
		return err
	}
	return g.write(pkg.StringTablePath(g.path("res"), rpkg.LanguageUs), pkg.StringTable(rpkg.LanguageUs), true)
}

func (g *generator) render(name, tmpl string, v values) error {
	buf := new(bytes.Buffer)
	if err := g.tmpl.ExecuteTemplate(buf, tmpl, v); err != nil {
		return fmt.Errorf("unable to expand template %s: %w", tmpl, err)
	}
	return g.write(name, buf.Bytes(), true)
}

func (g *generator) mkdir(dir string) error {
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create directory: %w", err)
	}
	g.log.Info("Directory created", zap.String("dir", dir))
	return nil
}

// write creates file, existing files are replaced only when allowed and
// requested.
func (g *generator) write(name string, data []byte, replaceable bool) error {
	_, err := os.Stat(name)
	switch {
	case err == nil && !replaceable:
		return nil
	case err == nil && !g.opts.Overwrite:
		g.log.Warn("File already exists, skipping", zap.String("file", name))
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}
	if err := g.mkdir(filepath.Dir(name)); err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write file: %w", err)
	}
	g.log.Info("File written", zap.String("file", name))
	g.written = append(g.written, name)
	return nil
}
