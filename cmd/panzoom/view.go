package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phanxgames/panzoom"
	"github.com/phanxgames/panzoom/ebitenhost"
	"github.com/phanxgames/panzoom/svgdoc"
	"github.com/spf13/cobra"
)

type viewOptions struct {
	configPath    string
	width, height int
	watch         bool
	script        string
	screenshotDir string

	minScale, maxScale float64
	zoomStep           float64
	noControls         bool
}

func newViewCommand() *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "view <file.svg>",
		Short: "Open an SVG in a window with zoom and pan",
		Long: `Opens an SVG in a desktop window. Scroll to zoom, drag to pan, double-click
to reset. +, - and 0 zoom from the keyboard; arrows nudge the view.

With --watch the file and the --config file are reloaded when they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.IntVar(&opts.width, "width", 800, "Window width")
	f.IntVar(&opts.height, "height", 600, "Window height")
	f.BoolVarP(&opts.watch, "watch", "w", true, "Reload the file and config when they change")
	f.StringVar(&opts.script, "script", "", "JSON input script to play, then exit")
	f.StringVar(&opts.screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")
	f.Float64Var(&opts.minScale, "min-scale", 0, "Override minScale")
	f.Float64Var(&opts.maxScale, "max-scale", 0, "Override maxScale")
	f.Float64Var(&opts.zoomStep, "zoom-step", 0, "Override zoomStep")
	f.BoolVar(&opts.noControls, "no-controls", false, "Hide the on-screen controls")

	return cmd
}

// loadViewConfig reads the config file (if any) and applies flag overrides.
// Only flags the user set override the file.
func loadViewConfig(cmd *cobra.Command, opts viewOptions) (panzoom.Config, error) {
	cfg := panzoom.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = panzoom.LoadConfigFile(opts.configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("min-scale") {
		cfg.MinScale = opts.minScale
	}
	if flags.Changed("max-scale") {
		cfg.MaxScale = opts.maxScale
	}
	if flags.Changed("zoom-step") {
		cfg.ZoomStep = opts.zoomStep
	}
	if opts.noControls {
		cfg.ShowControls = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runView(cmd *cobra.Command, path string, opts viewOptions) error {
	cfg, err := loadViewConfig(cmd, opts)
	if err != nil {
		return err
	}
	doc, err := svgdoc.Load(path)
	if err != nil {
		return err
	}

	host := ebitenhost.New(doc, &cfg, ebitenhost.Options{
		Width:         opts.width,
		Height:        opts.height,
		ScreenshotDir: opts.screenshotDir,
		ExitWhenDone:  opts.script != "",
	})

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := ebitenhost.LoadTestScript(data)
		if err != nil {
			return err
		}
		host.SetTestRunner(runner)
	}

	if opts.watch {
		stop, err := watchView(cmd, host, path, opts)
		if err != nil {
			return err
		}
		defer stop()
	}

	return ebitenhost.Run(host, "panzoom - "+filepath.Base(path))
}

// watchView reloads the document and config on change. Editors often write
// in several steps, so events are debounced.
func watchView(cmd *cobra.Command, host *ebitenhost.Host, path string, opts viewOptions) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch directories, not files: editors replace files by rename.
	targets := map[string]bool{cleanAbs(path): true}
	if opts.configPath != "" {
		targets[cleanAbs(opts.configPath)] = true
	}
	dirs := map[string]bool{}
	for t := range targets {
		dirs[filepath.Dir(t)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	log := panzoom.Logger()
	go func() {
		var timer *time.Timer
		pending := map[string]bool{}
		fire := make(chan struct{}, 1)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := cleanAbs(ev.Name)
				if !targets[name] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				pending[name] = true
				if timer == nil {
					timer = time.AfterFunc(100*time.Millisecond, func() {
						select {
						case fire <- struct{}{}:
						default:
						}
					})
				} else {
					timer.Reset(100 * time.Millisecond)
				}
			case <-fire:
				if opts.configPath != "" && pending[cleanAbs(opts.configPath)] {
					if cfg, err := loadViewConfig(cmd, opts); err != nil {
						log.Warn("config reload failed", "path", opts.configPath, "err", err)
					} else {
						host.SetConfig(cfg)
					}
				}
				if pending[cleanAbs(path)] {
					if doc, err := svgdoc.Load(path); err != nil {
						log.Warn("document reload failed", "path", path, "err", err)
					} else {
						host.Reload(doc)
					}
				}
				clear(pending)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "err", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

func cleanAbs(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
