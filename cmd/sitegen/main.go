// cmd/sitegen/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"sitegen/internal/builder"
	"sitegen/internal/config"
	"sitegen/internal/scaffold"

	"github.com/alecthomas/kong"
)

// CLI is the command line surface. Running sitegen without a command builds
// the site in the current directory.
type CLI struct {
	Config  string `short:"c" help:"Site configuration file." default:"site.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Build BuildCmd `cmd:"" default:"1" help:"Build the site into the output directory."`
	Init  InitCmd  `cmd:"" help:"Create a new site skeleton."`
}

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(cli *CLI, logger *slog.Logger) error {
	cfg, err := config.LoadSiteConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}
	logger.Debug("Loaded site config", "path", cli.Config, "output", cfg.OutputDir)

	if _, err := builder.BuildSite(cfg, builder.BuildOptions{Logger: logger}); err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	return nil
}

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir string `arg:"" help:"Directory to create the site in." type:"path"`
}

func (i *InitCmd) Run(logger *slog.Logger) error {
	logger.Info("Scaffolding new site", "dir", i.Dir)
	return scaffold.CreateNewSite(i.Dir, os.Stdout)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sitegen"),
		kong.Description("Builds a static site from Markdown content, templates and static assets."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := ctx.Run(&cli, logger); err != nil {
		slog.Error("Operation failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
