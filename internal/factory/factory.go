package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/turkeybot/internal/api"
	"github.com/mcoot/turkeybot/internal/dependencies/clock"
	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/engine"
	"github.com/mcoot/turkeybot/internal/report"
	reportredis "github.com/mcoot/turkeybot/internal/report/redis"
	"github.com/mcoot/turkeybot/internal/services/placement"
	"github.com/mcoot/turkeybot/internal/services/targeting"
	"github.com/mcoot/turkeybot/internal/transport"
)

// DefaultDialTimeout bounds the TCP connect when none is configured
const DefaultDialTimeout = 10 * time.Second

// App contains all wired application components
type App struct {
	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Generator *placement.Generator
	Strategy  targeting.Strategy
	Engine    *engine.Engine

	// Reporting
	Tracker   *report.StatusTracker
	Publisher *reportredis.Publisher

	// StatusServer is nil unless a status address was configured
	StatusServer *api.Server

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Engine holds identity, server address and turn policy
	Engine engine.Config
	// Strategy names the targeting strategy; empty means random
	Strategy string
	// Placement bounds board generation retries; zero value means defaults
	Placement placement.Config
	// DialTimeout bounds the TCP connect; zero means DefaultDialTimeout
	DialTimeout time.Duration

	// Output receives console events; nil discards them
	Output io.Writer
	// ErrOutput receives server error lines; nil falls back to Output
	ErrOutput io.Writer
	// OutputFormat is "text" or "json"
	OutputFormat string
	// Verbose adds per-shot console lines
	Verbose bool

	// Redis enables the event publisher when set
	Redis *reportredis.Config
	// StatusAddr enables the status API when non-empty
	StatusAddr string

	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}

	var publisher *reportredis.Publisher
	if cfg.Redis != nil {
		p, err := reportredis.New(*cfg.Redis, loggerOrNop(cfg.Logger))
		if err != nil {
			return nil, fmt.Errorf("connect event publisher: %w", err)
		}
		publisher = p
	}

	app, err := newWithDependencies(cfg, transport.Dialer{Timeout: timeout}, clock.New(), random.New(), publisher)
	if err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}
		return nil, err
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	cfg Config,
	dialer engine.Dialer,
	clk clock.Clock,
	rnd random.Random,
	publisher *reportredis.Publisher,
	extra ...report.Reporter,
) (*App, error) {
	logger := loggerOrNop(cfg.Logger)

	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}

	strategyName := cfg.Strategy
	if strategyName == "" {
		strategyName = targeting.StrategyRandom
	}
	strategy, err := targeting.ForName(strategyName, rnd)
	if err != nil {
		return nil, err
	}

	placementCfg := cfg.Placement
	if placementCfg == (placement.Config{}) {
		placementCfg = placement.DefaultConfig()
	}
	generator := placement.New(rnd, placementCfg, logger)

	tracker := report.NewStatusTracker(clk)
	reporters := report.Multi{tracker}
	if cfg.Output != nil {
		errOut := cfg.ErrOutput
		if errOut == nil {
			errOut = cfg.Output
		}
		format := cfg.OutputFormat
		if format == "" {
			format = report.FormatText
		}
		reporters = append(reporters, report.NewConsole(cfg.Output, errOut, format, cfg.Verbose))
	}
	if publisher != nil {
		reporters = append(reporters, publisher)
	}
	reporters = append(reporters, extra...)

	eng := engine.New(cfg.Engine, dialer, generator, strategy, reporters, clk, logger)

	var statusServer *api.Server
	if cfg.StatusAddr != "" {
		router := api.NewRouter(api.RouterConfig{Logger: logger, Status: tracker})
		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = cfg.StatusAddr
		statusServer = api.NewServer(router, serverCfg, logger)
	}

	return &App{
		Clock:        clk,
		Random:       rnd,
		Generator:    generator,
		Strategy:     strategy,
		Engine:       eng,
		Tracker:      tracker,
		Publisher:    publisher,
		StatusServer: statusServer,
		logger:       logger,
	}, nil
}

// Run plays one session. The status server, when configured, is up for
// the whole session and shut down gracefully afterwards.
func (a *App) Run(ctx context.Context) error {
	if a.StatusServer == nil {
		return a.Engine.Run(ctx)
	}

	if err := a.StatusServer.Listen(); err != nil {
		return err
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- a.StatusServer.Serve() }()

	runErr := a.Engine.Run(ctx)

	shutdownErr := a.StatusServer.Shutdown(context.WithoutCancel(ctx))
	if err := <-serveErr; err != nil {
		a.logger.Error("status server failed", slog.Any("error", err))
		shutdownErr = errors.Join(shutdownErr, err)
	}

	if runErr != nil {
		return runErr
	}
	return shutdownErr
}

// Close releases external connections
func (a *App) Close() error {
	if a.Publisher != nil {
		return a.Publisher.Close()
	}
	return nil
}

func loggerOrNop(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return logger
}
