package scaffold

import (
	"context"
	"fmt"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"c4ddev/misc"
	"c4ddev/rpkg"
	"c4ddev/state"
)

func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("init")
	cfg := &env.Cfg.Resources.Scaffold

	env.Overwrite = cmd.Bool("overwrite")

	explicit := map[Kind][]string{
		KindObject:   cmd.StringSlice("object"),
		KindTag:      cmd.StringSlice("tag"),
		KindShader:   cmd.StringSlice("shader"),
		KindXnode:    cmd.StringSlice("xnode"),
		KindMaterial: cmd.StringSlice("material"),
	}
	descriptions, err := Plan(cmd.Args().Slice(), explicit, cfg.FirstID)
	if err != nil {
		return err
	}
	if len(descriptions) == 0 {
		log.Info("No plugins requested, creating project layout only")
	}

	opts := Options{
		Root:      ".",
		SourceDir: cfg.SourceDir,
		Rpkg:      cmd.Bool("rpkg"),
		Overwrite: env.Overwrite,
	}
	if cmd.IsSet("src") {
		opts.SourceDir = cmd.String("src")
	}
	if env.Cfg.Resources.Header {
		opts.Banner = rpkg.HeaderBanner(misc.GetVersion())
	}

	for _, d := range descriptions {
		log.Debug("Creating plugin", zap.Stringer("kind", d.Kind), zap.String("name", d.Name), zap.Int("id", d.ID))
	}
	written, err := Generate(opts, descriptions, log)
	for _, name := range written {
		env.Rpt.Store(filepath.ToSlash(filepath.Join("init", name)), name)
	}
	if err != nil {
		return fmt.Errorf("unable to create templates: %w", err)
	}
	log.Info("Templates created", zap.Int("plugins", len(descriptions)), zap.Int("files", len(written)))
	return nil
}
