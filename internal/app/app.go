package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/five82/catvote/internal/catapi"
	"github.com/five82/catvote/internal/config"
	"github.com/five82/catvote/internal/fakeapi"
	"github.com/five82/catvote/internal/prefs"
	"github.com/five82/catvote/internal/ui"
)

const userAgent = "catvote/1.0"

// Options configure a catvote process.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/catvote/prefs.toml
	Debug      bool
	Pretty     bool
	Demo       bool // serve the in-process demo backend instead of api_base
}

// Env is everything a command needs: config, logger and a ready client.
type Env struct {
	Config config.Config
	Logger zerolog.Logger
	Client *catapi.Client

	demo    *fakeapi.Server
	closers []io.Closer
}

// Setup loads config, starts logging and builds the API client. console
// controls whether logs also go to stderr, which must stay off for the TUI.
func Setup(opts Options, console bool) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := SetupLogging(LogOptions{
		Path:    cfg.LogPath(),
		Debug:   opts.Debug,
		Pretty:  opts.Pretty,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	env := &Env{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	if opts.Demo {
		srv := fakeapi.NewServer("", fakeapi.DemoStore())
		if err := srv.Start(); err != nil {
			_ = env.Close()
			return nil, fmt.Errorf("start demo backend: %w", err)
		}
		env.demo = srv
		env.Config.APIBase = srv.Addr()
		logger.Info().Str("addr", srv.Addr()).Msg("demo backend started")
	}

	client, err := catapi.NewClient(env.Config.APIBase,
		catapi.WithAPIKey(env.Config.APIKey),
		catapi.WithTimeout(env.Config.RequestTimeout),
		catapi.WithUserAgent(userAgent),
	)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	env.Client = client

	logger.Debug().
		Str("api_base", client.BaseURL()).
		Str("config", cfg.Path).
		Bool("demo", opts.Demo).
		Msg("catvote configured")
	return env, nil
}

// Close stops the demo backend and flushes the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.demo != nil {
		if err := e.demo.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop demo backend: %w", err))
		}
		e.demo = nil
	}
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the catvote TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts, false)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn().Err(err).Msg("prefs ignored, using defaults")
	}

	// Reachability is only logged; the tabs show their own errors.
	stopPreflight := startPreflight(ctx, env.Client, env.Logger)
	defer stopPreflight()

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    env.Client,
		Logger:    env.Logger,
		Config:    env.Config,
		ThemeName: userPrefs.Theme,
		StartTab:  userPrefs.StartTab,
		PrefsPath: opts.PrefsPath,
		Open:      Open,
	})
}
