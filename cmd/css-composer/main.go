package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/csscomposer/internal/composer"
	"bennypowers.dev/csscomposer/internal/log"
	"bennypowers.dev/csscomposer/internal/runner"
	"bennypowers.dev/csscomposer/internal/version"
	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v3"
)

const appName = "css-composer"

var errNoInput = errors.New("no input patterns: pass globs as arguments or set files in the configuration")

func setLogLevel(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, err
	}
	log.SetLevel(level)
	return ctx, nil
}

// loadConfig reads --config when given, otherwise discovers the project
// configuration in root
func loadConfig(fs afero.Fs, root string, cmd *cli.Command) (*composer.Config, error) {
	if path := cmd.String("config"); path != "" {
		return composer.LoadFile(fs, path)
	}
	return composer.Load(fs, root)
}

func compose(stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		fs := afero.NewOsFs()
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}

		cfg, err := loadConfig(fs, root, cmd)
		if err != nil {
			return fmt.Errorf("unable to prepare configuration: %w", err)
		}
		if cfg.Source == "" {
			log.Debug("Using defaults (no configuration file)")
		} else {
			log.Debug("Using configuration from %s", cfg.Source)
		}

		steps := cfg.Passes
		if cmd.IsSet("passes") {
			steps = composer.ParseSteps(cmd.String("passes"))
		}
		pipeline, err := composer.New(steps, composer.DefaultRegistry())
		if err != nil {
			return err
		}

		patterns := cmd.Args().Slice()
		if len(patterns) == 0 {
			patterns = cfg.Files
		}
		if len(patterns) == 0 {
			return errNoInput
		}

		out := cfg.Out
		if cmd.IsSet("out") {
			out = cmd.String("out")
		}

		return runner.New(fs, pipeline, runner.Options{
			RootDir:  root,
			Patterns: patterns,
			OutDir:   out,
			Write:    cmd.Bool("write"),
			Stdout:   stdout,
		}).Run(ctx)
	}
}

func newApp(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "rewrites theme macros, unit functions and color references in stylesheets",
		Version:         version.Get().String(),
		ArgsUsage:       "PATTERN...",
		HideHelpCommand: true,
		Before:          setLogLevel,
		Writer:          stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML or JSON)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write results below `DIR`, keeping relative paths"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "rewrite files in place"},
			&cli.StringFlag{Name: "passes", Aliases: []string{"p"}, Usage: "comma separated `LIST` of passes to run, replacing the configured ones"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "`LEVEL` of messages written to stderr (debug, info, warn, error)"},
		},
		Action: compose(stdout),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp(os.Stdout).Run(ctx, os.Args)
	stop()
	if err != nil {
		log.Error("%v", err)
		log.Sync()
		os.Exit(1)
	}
}
