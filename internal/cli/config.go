package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/turkeybot/internal/engine"
	"github.com/mcoot/turkeybot/internal/factory"
	"github.com/mcoot/turkeybot/internal/model"
	"github.com/mcoot/turkeybot/internal/report"
	reportredis "github.com/mcoot/turkeybot/internal/report/redis"
	"github.com/mcoot/turkeybot/internal/services/targeting"
)

// EnvPrefix prefixes every environment override, e.g. TURKEYBOT_PORT
const EnvPrefix = "TURKEYBOT"

// Config keys, shared by flags, environment and config files
const (
	keyConfig         = "config"
	keyUsername       = "username"
	keyServer         = "server"
	keyPort           = "port"
	keyOutput         = "output"
	keyVerbose        = "verbose"
	keyStrategy       = "strategy"
	keySkipOnNoTarget = "skip-on-no-target"
	keyRedisURL       = "redis-url"
	keyRedisChannel   = "redis-channel"
	keyStatusAddr     = "status-addr"
	keyDialTimeout    = "dial-timeout"
)

// Config holds CLI configuration
type Config struct {
	Username       string
	Server         string
	Port           int
	Output         string
	Verbose        bool
	Strategy       string
	SkipOnNoTarget bool
	RedisURL       string
	RedisChannel   string
	StatusAddr     string
	DialTimeout    time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Username:       engine.DefaultUsername,
		Server:         engine.DefaultHost,
		Port:           engine.DefaultPort,
		Output:         report.FormatText,
		Verbose:        false,
		Strategy:       targeting.StrategyRandom,
		SkipOnNoTarget: true,
		RedisChannel:   reportredis.DefaultChannel,
		DialTimeout:    factory.DefaultDialTimeout,
	}
}

// newViper creates a viper instance reading TURKEYBOT_* variables
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig resolves configuration from v (flags, environment, optional
// config file) and then the positional arguments
// [username [server_address [server_port]]], which win over everything.
func LoadConfig(v *viper.Viper, args []string) (*Config, error) {
	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Username:       v.GetString(keyUsername),
		Server:         v.GetString(keyServer),
		Port:           v.GetInt(keyPort),
		Output:         v.GetString(keyOutput),
		Verbose:        v.GetBool(keyVerbose),
		Strategy:       v.GetString(keyStrategy),
		SkipOnNoTarget: v.GetBool(keySkipOnNoTarget),
		RedisURL:       v.GetString(keyRedisURL),
		RedisChannel:   v.GetString(keyRedisChannel),
		StatusAddr:     v.GetString(keyStatusAddr),
		DialTimeout:    v.GetDuration(keyDialTimeout),
	}

	if len(args) > 3 {
		return nil, fmt.Errorf("%w: at most 3 arguments, got %d", model.ErrInvalidConfig, len(args))
	}
	if len(args) > 0 {
		cfg.Username = args[0]
	}
	if len(args) > 1 {
		cfg.Server = args[1]
	}
	if len(args) > 2 {
		port, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: server port %q is not a number", model.ErrInvalidConfig, args[2])
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the bot cannot run with
func (c *Config) Validate() error {
	if err := c.engineConfig().Validate(); err != nil {
		return err
	}
	if !slices.Contains(targeting.ValidStrategies(), c.Strategy) {
		return fmt.Errorf("%w: unknown strategy %q (valid: %s)",
			model.ErrInvalidConfig, c.Strategy, strings.Join(targeting.ValidStrategies(), ", "))
	}
	if c.Output != report.FormatText && c.Output != report.FormatJSON {
		return fmt.Errorf("%w: output must be text or json, got %q", model.ErrInvalidConfig, c.Output)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("%w: dial timeout must not be negative", model.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) engineConfig() engine.Config {
	return engine.Config{
		Username:       c.Username,
		Host:           c.Server,
		Port:           c.Port,
		SkipOnNoTarget: c.SkipOnNoTarget,
	}
}

// redisConfig returns nil when publishing is disabled
func (c *Config) redisConfig() *reportredis.Config {
	if c.RedisURL == "" {
		return nil
	}
	rc := reportredis.DefaultConfig()
	rc.URL = c.RedisURL
	if c.RedisChannel != "" {
		rc.Channel = c.RedisChannel
	}
	return &rc
}
