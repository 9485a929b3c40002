package engine

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/mcoot/turkeybot/internal/model"
)

// Defaults used when the caller supplies nothing
const (
	DefaultUsername = "turkey"
	DefaultHost     = "localhost"
	DefaultPort     = 7948
)

// Config holds the identity and server the engine plays against
type Config struct {
	Username string
	Host     string
	Port     int

	// SkipOnNoTarget sends a skip instead of failing when no opponent or
	// target can be chosen for our turn
	SkipOnNoTarget bool
}

// DefaultConfig returns the stock bot configuration
func DefaultConfig() Config {
	return Config{
		Username:       DefaultUsername,
		Host:           DefaultHost,
		Port:           DefaultPort,
		SkipOnNoTarget: true,
	}
}

// Validate checks that the config can produce well-formed protocol lines
func (c Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: username is required", model.ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Username, "|\r\n") {
		return fmt.Errorf("%w: username %q contains a reserved character", model.ErrInvalidConfig, c.Username)
	}
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("%w: server address is required", model.ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", model.ErrInvalidConfig, c.Port)
	}
	return nil
}

// Address returns host:port for dialing
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
