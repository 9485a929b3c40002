package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrTransport    = errors.New("transport error")
	ErrHandshake    = errors.New("handshake failed")
	ErrNotConnected = errors.New("not connected")
	ErrInvalidState = errors.New("invalid session state")

	// Protocol errors
	ErrMalformedMessage = errors.New("malformed message")

	// Targeting errors
	ErrNoOpponents = errors.New("no opponents available")
	ErrNoTargets   = errors.New("no targets available")

	// Board errors
	ErrPlacementExhausted = errors.New("ship placement exhausted")
	ErrInvalidBoard       = errors.New("invalid board")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
