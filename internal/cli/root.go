package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/turkeybot/internal/factory"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := newViper()
	defaults := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "turkeybot [username [server_address [server_port]]]",
		Short: "Reference bot for the battleship line protocol",
		Long: `turkeybot connects to a battleship game server, joins with a randomly
placed fleet and plays until the game ends, firing at random open cells of
a random opponent whenever it is given a turn.

Positional arguments override flags, which override TURKEYBOT_* environment
variables.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(v, args)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "", "Config file (yaml, json or toml)")
	flags.String(keyUsername, defaults.Username, "Player name to join with")
	flags.String(keyServer, defaults.Server, "Game server address")
	flags.Int(keyPort, defaults.Port, "Game server port")
	flags.StringP(keyOutput, "o", defaults.Output, "Output format: text, json")
	flags.BoolP(keyVerbose, "v", defaults.Verbose, "Verbose output and debug logging")
	flags.String(keyStrategy, defaults.Strategy, "Targeting strategy")
	flags.Bool(keySkipOnNoTarget, defaults.SkipOnNoTarget, "Skip the turn instead of failing when no target is available")
	flags.String(keyRedisURL, defaults.RedisURL, "Publish events to this Redis server")
	flags.String(keyRedisChannel, defaults.RedisChannel, "Redis pub/sub channel for events")
	flags.String(keyStatusAddr, defaults.StatusAddr, "Serve the status API on this address, e.g. 127.0.0.1:8080")
	flags.Duration(keyDialTimeout, defaults.DialTimeout, "Timeout for connecting to the game server")
	_ = v.BindPFlags(flags)

	rootCmd.AddCommand(newBoardCmd(v))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		format, _ := rootCmd.PersistentFlags().GetString(keyOutput)
		NewOutput(format, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}

func runSession(ctx context.Context, cfg *Config, out, errOut io.Writer) error {
	logger := newLogger(errOut, cfg.Verbose)

	app, err := factory.New(factory.Config{
		Engine:       cfg.engineConfig(),
		Strategy:     cfg.Strategy,
		DialTimeout:  cfg.DialTimeout,
		Output:       out,
		ErrOutput:    errOut,
		OutputFormat: cfg.Output,
		Verbose:      cfg.Verbose,
		Redis:        cfg.redisConfig(),
		StatusAddr:   cfg.StatusAddr,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	err = app.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}

// newLogger logs to stderr; debug level only when verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
