package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flexlay/pkg/config"
	"flexlay/pkg/css"
	"flexlay/pkg/layout"
	"flexlay/pkg/pipeline"
	"flexlay/pkg/render"
	"flexlay/pkg/scene"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand; set values override the
// config file.
type globalFlags struct {
	configPath string
	width      float64
	height     float64
	mode       string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "flexlay",
		Short: "Flexbox layout engine",
		Long: `flexlay lays out scenes of nested flex containers and reports the
resulting geometry or renders it to PNG.

Scenes are YAML files (or .html markup) describing a viewport, a tree of
styled nodes and optional scripts that run before layout.

Examples:
  flexlay layout scene.yaml                 # Print box geometry
  flexlay layout scene.yaml --format json   # Geometry as JSON
  flexlay render scene.yaml -o out.png      # Render to PNG
  flexlay render scene.yaml --width 320     # Reflow at a narrower viewport`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "TOML config file")
	pf.Float64Var(&flags.width, "width", 0, "viewport width (default: scene or config)")
	pf.Float64Var(&flags.height, "height", 0, "viewport height (default: scene or config)")
	pf.StringVar(&flags.mode, "mode", "", "distribution mode (single/iterative)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug/info/warn/error)")

	root.AddCommand(newLayoutCmd(&flags))
	root.AddCommand(newRenderCmd(&flags))
	return root
}

// setup resolves configuration for one command run: file, then flags.
// It installs the layout logger as a side effect.
func setup(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}
	pf := cmd.Flags()
	if pf.Changed("width") {
		cfg.Viewport.Width = flags.width
	}
	if pf.Changed("height") {
		cfg.Viewport.Height = flags.height
	}
	if pf.Changed("mode") {
		cfg.Layout.Distribution = flags.mode
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	layout.SetLogger(logger)
	return cfg, nil
}

// loadScene reads the scene and builds a pipeline for cfg.
func loadScene(cmd *cobra.Command, cfg config.Config, path string) (*scene.Scene, *pipeline.Pipeline, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	mode, _ := cfg.DistributionMode()
	renderOpts, err := renderOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(pipeline.Options{
		Mode:      mode,
		Render:    renderOpts,
		ScriptOut: cmd.ErrOrStderr(),
		ScriptErr: cmd.ErrOrStderr(),
	})
	return sc, p, nil
}

func renderOptions(cfg config.Config) (render.Options, error) {
	opts := render.DefaultOptions()
	bg, ok := css.ParseColor(cfg.Render.Background)
	if !ok {
		return opts, fmt.Errorf("invalid background %q", cfg.Render.Background)
	}
	opts.Background = bg
	opts.Labels = cfg.Render.Labels
	opts.Scale = cfg.Render.Scale
	return opts, nil
}

func viewportOf(cfg config.Config) layout.Size {
	return layout.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
}
