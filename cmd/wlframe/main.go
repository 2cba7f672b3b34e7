package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/wlframe/internal/config"
	"github.com/1broseidon/wlframe/internal/logging"
	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/render"
	"github.com/1broseidon/wlframe/internal/scene"
	"gopkg.in/yaml.v3"
)

// backend supplies the native protocol and GPU bindings.
type backend struct {
	dial   func(display string, log *slog.Logger) platform.Dialer
	gpu    func(log *slog.Logger) platform.GPU
	gl     func(log *slog.Logger) platform.GL
	fences func() platform.FenceAPI
}

func main() {
	// The frame loop has no shutdown path; it runs until the process exits.
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, nativeBackend()))
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wlframe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  solid               Draw a red full-window quad (GLES2)")
	fmt.Fprintln(w, "  block               Draw a red textured block, fenced per frame (GLES3)")
	fmt.Fprintln(w, "  text                Draw a line of text from a texture (GLES2)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wlframe <command> --help' for command-specific options.")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, be backend) int {
	if len(args) < 1 {
		printMainUsage(stdout)
		return 0
	}

	switch args[0] {
	case "solid", "block", "text":
		return runScene(ctx, args[0], args[1:], stderr, be)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.LoadFromPath(path)
}

func newScene(name string, cfg *config.Config, be backend, log *slog.Logger) scene.Scene {
	switch name {
	case "block":
		return scene.NewBlock(be.fences(), render.SyncConfig{
			Timeout:  cfg.Fence.Timeout,
			MaxPolls: cfg.Fence.MaxPolls,
		}, log)
	case "text":
		return scene.NewText(cfg.Text.Content, cfg.Text.Size, log)
	default:
		return scene.NewSolid(log)
	}
}

func runScene(ctx context.Context, name string, args []string, stderr io.Writer, be backend) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/wlframe/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wlframe %s [--config PATH]\n", name)
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s takes no arguments\n", name)
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg := res.Config
	log := logging.New(logging.ParseLevel(cfg.LogLevel), stderr)

	if be.dial == nil {
		log.Error("no native display backend on this platform")
		return 1
	}

	s := newScene(name, cfg, be, log)
	version := int32(cfg.GLESVersion)
	if need := s.ClientVersion(); version < need {
		log.Info("raising GLES client version for scene", "scene", name, "configured", version, "version", need)
		version = need
	}

	rc, err := render.Init(be.dial(cfg.Display, log), be.gpu(log), render.Config{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Title:         cfg.Title,
		AppID:         cfg.AppID,
		ClientVersion: version,
		Logger:        log,
	})
	if err != nil {
		log.Error("failed to initialize render context", "error", err)
		return 1
	}
	defer rc.Destroy()

	if err := s.Setup(be.gl(log)); err != nil {
		log.Error("failed to set up scene", "scene", name, "error", err)
		return 1
	}
	defer s.Close()

	err = rc.Loop(ctx, func() error { return s.Draw(ctx) })
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0
	}
	log.Error("frame loop stopped", "scene", name, "error", err)
	return 1
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  wlframe config validate [--config PATH]")
		fmt.Fprintln(stderr, "  wlframe config print [--config PATH] [--defaults]")
		fmt.Fprintln(stderr, "  wlframe config explain [--config PATH] <yaml.path>")
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/wlframe/config.yaml)")

	switch args[0] {
	case "validate":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, "config: ok")
		return 0

	case "print":
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0

	case "explain":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		st := newOutputStyles(stdout)
		fmt.Fprintf(stdout, "%s %s\n", st.label.Render("path:"), st.value.Render(queryPath))
		fmt.Fprintf(stdout, "%s %s\n", st.label.Render("source:"), st.dim.Render(config.FormatSource(src)))
		fmt.Fprintf(stdout, "%s\n%s", st.label.Render("value:"), string(out))
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
