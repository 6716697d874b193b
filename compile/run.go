// Package compile implements "rpkg" command: it builds resource package
// sources into symbol headers and string tables.
package compile

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"c4ddev/archive"
	"c4ddev/config"
	"c4ddev/misc"
	"c4ddev/rpkg"
	"c4ddev/state"
)

// ErrNoInput is returned when command line has no sources.
var ErrNoInput = errors.New("no input files")

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("rpkg")

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return ErrNoInput
	}

	env.ResDir = env.Cfg.Resources.ResDir
	if cmd.IsSet("res") {
		env.ResDir = cmd.String("res")
	}
	env.NoHeader = !env.Cfg.Resources.Header || cmd.Bool("no-header")

	log.Info("Processing starting", zap.Strings("sources", sources), zap.String("res", env.ResDir), zap.Bool("no_header", env.NoHeader))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b := &builder{
		resDir: env.ResDir,
		rpt:    env.Rpt,
		log:    log,
	}
	if !env.NoHeader {
		b.banner = rpkg.HeaderBanner(misc.GetVersion())
	}
	return b.process(ctx, sources)
}

// builder compiles sources one by one. Failure of a single package is
// logged and remembered, processing continues with the next one.
type builder struct {
	resDir string
	banner string
	rpt    *config.Report
	log    *zap.Logger

	built int
	errs  error
}

func (b *builder) fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}

// process returns combined error for all failed sources.
func (b *builder) process(ctx context.Context, sources []string) error {
	// nothing is read or written without resource directory
	if err := rpkg.CheckResDir(b.resDir); err != nil {
		return err
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(b.errs, err)
		}
		if err := b.source(ctx, src); err != nil {
			b.log.Error("Unable to process source", zap.String("source", src), zap.Error(err))
			b.fail(err)
		}
	}
	if b.built == 0 && b.errs == nil {
		b.log.Warn("Nothing to process", zap.Strings("sources", sources))
	}
	return b.errs
}

// source dispatches single command line argument: directory, zip archive or
// package file.
func (b *builder) source(ctx context.Context, src string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return b.dir(ctx, src)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for %s", src)
	}

	zipped, err := isArchiveFile(src)
	if err != nil {
		return fmt.Errorf("unable to check archive type: %w", err)
	}
	if zipped {
		return b.archive(ctx, src)
	}
	return b.file(src)
}

func (b *builder) dir(ctx context.Context, dir string) error {
	found, err := findSources(dir)
	if err != nil {
		return fmt.Errorf("unable to scan directory: %w", err)
	}
	if len(found) == 0 {
		b.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	for _, name := range found {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.file(name); err != nil {
			b.log.Error("Unable to process file", zap.String("file", name), zap.Error(err))
			b.fail(err)
		}
	}
	return nil
}

func (b *builder) archive(ctx context.Context, path string) error {
	count := 0
	err := archive.Walk(path, sourceExt, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		data, err := archive.ReadFile(f)
		if err == nil {
			err = b.build(data, f.Name, arc+":"+f.Name)
		}
		if err != nil {
			b.log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			b.fail(err)
		}
		return nil
	})
	if err == nil && count == 0 {
		b.log.Debug("Nothing to process", zap.String("archive", path))
	}
	return err
}

func (b *builder) file(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return b.build(data, path, path)
}

// build compiles single package, name is used to derive default package name,
// origin only for messages.
func (b *builder) build(data []byte, name, origin string) error {
	text, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	pkg, err := rpkg.Parse(text, name)
	if err != nil {
		return err
	}
	b.built++
	b.rpt.StoreData(fmt.Sprintf("packages/%03d-%s.txt", b.built, slug.Make(origin)), []byte(pkg.String()))

	written, err := rpkg.Write(pkg, b.resDir, b.banner)
	for _, out := range written {
		if rel, err := filepath.Rel(b.resDir, out); err == nil {
			b.rpt.Store(filepath.ToSlash(filepath.Join("result", rel)), out)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}

	languages := make([]string, 0, pkg.Localizations.Len())
	for _, lang := range pkg.Languages() {
		languages = append(languages, lang.DisplayName())
	}
	b.log.Info("Package compiled",
		zap.String("source", origin), zap.String("package", pkg.Name),
		zap.Int("symbols", pkg.Symbols.Len()), zap.Strings("languages", languages), zap.Strings("files", written))
	return nil
}
