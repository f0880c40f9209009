// Package session holds the explicitly constructed context every engine component
// is handed: the perception and input ports, the catalog, timing and the clock.
// There is no process-wide instance; callers build one per game window.
package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/asainv/internal/catalog"
	"github.com/cory-johannsen/asainv/internal/config"
	"github.com/cory-johannsen/asainv/internal/perception"
)

// Clock abstracts wall time so the verify-and-retry loops can be driven by a fake
// clock in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real Clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Ports are the external services a Session drives.
type Ports struct {
	Screen perception.Screen
	Vision perception.Vision
	Input  perception.Input
	// Clock defaults to SystemClock when nil.
	Clock Clock
}

// Session is the context shared by one engine instance.
type Session struct {
	ID      uuid.UUID
	Logger  *zap.Logger
	Eye     *perception.Eye
	Input   perception.Input
	Clock   Clock
	Catalog *catalog.Catalog
	Timing  config.TimingConfig
	Keys    config.KeysConfig
	UI      config.UIConfig
	// Workers is the default page scan worker count.
	Workers int
}

// New builds a Session from its ports, catalog and configuration.
//
// Precondition: ports.Screen, ports.Vision, ports.Input, cat and logger are non-nil;
// cfg has passed validation.
// Postcondition: the returned Session has a fresh ID attached to its logger.
func New(ports Ports, cat *catalog.Catalog, cfg config.Config, logger *zap.Logger) *Session {
	id := uuid.New()
	logger = logger.With(zap.String("session_id", id.String()))
	clock := ports.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Session{
		ID:      id,
		Logger:  logger,
		Eye:     perception.NewEye(ports.Screen, ports.Vision, logger.Named("perception")),
		Input:   ports.Input,
		Clock:   clock,
		Catalog: cat,
		Timing:  cfg.Timing,
		Keys:    cfg.Keys,
		UI:      cfg.UI,
		Workers: cfg.Scanner.Workers,
	}
}

// Await polls cond every Timing.PollInterval until it holds or timeout has elapsed.
//
// Postcondition: returns true iff cond returned true; cond is always evaluated at
// least once.
func (s *Session) Await(cond func() bool, timeout time.Duration) bool {
	start := s.Clock.Now()
	for !cond() {
		if s.Clock.Now().Sub(start) >= timeout {
			return false
		}
		s.Clock.Sleep(s.Timing.PollInterval)
	}
	return true
}

// Settle blocks for d, giving the UI time to animate.
func (s *Session) Settle(d time.Duration) {
	if d > 0 {
		s.Clock.Sleep(d)
	}
}

// Stopwatch measures elapsed session time from a fixed start.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// Stopwatch starts a stopwatch on the session clock.
func (s *Session) Stopwatch() Stopwatch {
	return Stopwatch{clock: s.Clock, start: s.Clock.Now()}
}

// Elapsed returns the time since the stopwatch started.
func (w Stopwatch) Elapsed() time.Duration { return w.clock.Now().Sub(w.start) }

// TimedOut reports whether at least d has elapsed.
func (w Stopwatch) TimedOut(d time.Duration) bool { return w.Elapsed() >= d }
