package factory

import (
	"time"

	"github.com/mcoot/turkeybot/internal/dependencies/mocks"
	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/engine"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockTransport *mocks.MockTransport
	MockDialer    *mocks.MockDialer
	Recorder      *mocks.RecordingReporter
}

// NewTestApp creates an App wired to a scripted transport. Randomness stays
// real because board generation needs varied draws to terminate.
func NewTestApp(cfg Config) (*TestApp, error) {
	if cfg.Engine == (engine.Config{}) {
		cfg.Engine = engine.DefaultConfig()
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockTransport := mocks.NewMockTransport()
	mockDialer := mocks.NewMockDialer(mockTransport)
	recorder := mocks.NewRecordingReporter()

	app, err := newWithDependencies(cfg, mockDialer, mockClock, random.New(), nil, recorder)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockTransport: mockTransport,
		MockDialer:    mockDialer,
		Recorder:      recorder,
	}, nil
}
