// Package export implements "symbols" command.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"c4ddev/config"
	"c4ddev/state"
	"c4ddev/symbols"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("symbols")

	format := env.Cfg.Resources.Symbols.Format
	if cmd.IsSet("format") {
		if format, err = config.ParseSymbolsFormat(cmd.String("format")); err != nil {
			return fmt.Errorf("unable to export symbols: %w", err)
		}
	}
	dirs := env.Cfg.Resources.Symbols.ResDirs
	if cmd.IsSet("res") {
		dirs = cmd.StringSlice("res")
	}
	if cmd.Args().Len() > 0 {
		log.Warn("Malformed command line, unexpected arguments", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	c, err := symbols.Collect(dirs, log)
	if err != nil {
		return fmt.Errorf("unable to collect symbols: %w", err)
	}

	var out io.Writer = os.Stdout
	fname := cmd.String("outfile")
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			if er := f.Close(); er != nil && err == nil {
				err = er
			}
		}()
		out = f
		env.Rpt.Store("symbols/"+filepath.Base(fname), fname)
	} else {
		fname = "STDOUT"
	}

	log.Info("Exporting symbols",
		zap.Stringer("format", format), zap.Strings("dirs", dirs), zap.String("file", fname),
		zap.Int("symbols", c.Symbols.Len()), zap.Int("description_symbols", c.Descriptions.Len()))

	if err := symbols.Export(out, format, c); err != nil {
		return fmt.Errorf("unable to export symbols: %w", err)
	}
	return nil
}
