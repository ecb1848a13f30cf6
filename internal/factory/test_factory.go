package factory

import (
	"time"

	"github.com/partygames/clockin/internal/dependencies/mocks"
	"github.com/partygames/clockin/internal/services/checkin"
	"github.com/partygames/clockin/internal/storage/memory"
	"github.com/partygames/clockin/internal/testutil"
)

// TestApp bundles an App with the mocks behind it
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates a fully wired App backed by in-memory storage and
// deterministic clock/random mocks
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(checkin.DefaultConfig())
}

// NewTestAppWithConfig creates a TestApp with a specific engine configuration
func NewTestAppWithConfig(checkinCfg checkin.Config) *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	rnd.StringSequence = true

	app := newWithDependencies(store, clk, rnd, checkinCfg, "http://localhost:8080", testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  clk,
		MockRandom: rnd,
		Memory:     store,
	}
}
