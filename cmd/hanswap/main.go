package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"hanswap/internal/app"
	"hanswap/internal/cli"
	"hanswap/internal/common"
	"hanswap/internal/config"
	"hanswap/internal/logger"
	"hanswap/internal/types"
	"hanswap/pkg/ime"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	opts, err := cli.Parse(os.Args[1:])
	if errors.Is(err, cli.ErrHelp) {
		fmt.Println(cli.Usage())
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Usage())
		return fmt.Errorf("parsing flags: %w", err)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = common.DefaultConfigPath()
	}
	cfg, err := loadConfig(configPath, opts)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a bare invocation on a terminal has no stdin to read lines from
	mode := opts.Mode
	if mode == types.ModeConvert && len(opts.Args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		mode = types.ModeInteractive
	}

	log.Debug("starting", "mode", mode, "config", configPath, "deny", cfg.DenyList)

	conv := cfg.Converter()
	switch mode {
	case types.ModeServe:
		return serve(ctx, cfg, configPath, opts, log)
	case types.ModeRemote:
		return remote(ctx, cfg.SocketPath, conv, opts.Args, log)
	case types.ModeInteractive:
		return interactive(ctx, conv)
	default:
		return convert(conv, opts.Args)
	}
}

func loadConfig(path string, opts cli.Options) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlags lets command line flags override the config file.
func applyFlags(cfg *config.Config, opts cli.Options) {
	if opts.SocketPath != "" {
		cfg.SocketPath = opts.SocketPath
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = common.DefaultSocketPath()
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(opts.LogLevel)
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(opts.LogFormat)
	}
	if len(opts.Deny) > 0 {
		cfg.DenyList = opts.Deny
	}
	if opts.NoFilter {
		cfg.Filter = false
	}
	if opts.FoldWidth {
		cfg.FoldWidth = true
	}
	if opts.CheckOriginal {
		cfg.CheckOriginal = true
	}
}

func convert(conv *ime.Converter, args []string) error {
	if len(args) > 0 {
		fmt.Println(conv.ConvertText(strings.Join(args, " ")))
		return nil
	}
	return app.ConvertLines(os.Stdin, os.Stdout, conv.ConvertText)
}

func serve(ctx context.Context, cfg config.Config, configPath string, opts cli.Options, log *slog.Logger) error {
	srv, err := app.NewServer(cfg.SocketPath, cfg.Converter(), log)
	if err != nil {
		return err
	}
	defer srv.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ctx) })

	if opts.Watch && configPath != "" {
		watcher, err := config.WatchFile(configPath, func(next config.Config) {
			applyFlags(&next, opts)
			if err := next.Validate(); err != nil {
				log.Warn("ignoring config change", "error", err)
				return
			}
			srv.Swap(next.Converter())
		})
		if err != nil {
			srv.Close()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return watcher.Run(ctx) })
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-watcher.Errors():
					log.Warn("config reload failed", "error", err)
				}
			}
		})
		log.Info("watching config", "path", configPath)
	}

	return g.Wait()
}

func remote(ctx context.Context, socketPath string, conv *ime.Converter, args []string, log *slog.Logger) error {
	local := false
	translate := func(line string) string {
		if !local {
			out, err := app.Translate(ctx, socketPath, line)
			if err == nil {
				return out
			}
			log.Warn("falling back to local conversion", "socket", socketPath, "error", err)
			local = true
		}
		return conv.ConvertText(line)
	}

	if len(args) > 0 {
		fmt.Println(translate(strings.Join(args, " ")))
		return nil
	}
	return app.ConvertLines(os.Stdin, os.Stdout, translate)
}

func interactive(ctx context.Context, conv *ime.Converter) error {
	keys, err := app.OpenTerminal()
	if err != nil {
		return err
	}
	defer keys.Close()

	fmt.Print("type in QWERTY, Enter converts, Esc quits\r\n")
	return app.NewSession(keys, conv, os.Stdout).Run(ctx)
}
