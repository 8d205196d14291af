// Package headless drives a tetris session without a terminal: one
// goroutine owns the session and receives player commands and timer ticks
// over channels, applying them one at a time.
package headless

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// ErrStopped is returned by Send once the loop has exited.
var ErrStopped = errors.New("headless: loop stopped")

// Default timer periods.
const (
	DefaultDropInterval  = time.Second
	DefaultClockInterval = time.Second
)

// Config configures a Loop.
type Config struct {
	// Drop fires the gravity tick. Defaults to a ticker at DefaultDropInterval.
	Drop Trigger
	// Clock fires the one-second elapsed tick. Defaults to a ticker at
	// DefaultClockInterval.
	Clock Trigger
	// Buffer is the command queue capacity.
	Buffer int
	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger
	// OnOutcome, if set, is called from the loop goroutine after every
	// applied or ignored command.
	OnOutcome func(tetris.Outcome)
}

// Loop serializes everything that touches one session. The drop and clock
// triggers run only while the session is Running, so pausing stops the
// clock and the piece together.
type Loop struct {
	session *tetris.Session
	drop    Trigger
	clock   Trigger
	cmds    chan tetris.Command
	done    chan struct{}
	logger  *log.Logger
	hook    func(tetris.Outcome)
	ticking bool
}

// New creates a loop for session. Call Run to start it.
func New(session *tetris.Session, cfg Config) *Loop {
	if cfg.Drop == nil {
		cfg.Drop = NewTickerTrigger(DefaultDropInterval)
	}
	if cfg.Clock == nil {
		cfg.Clock = NewTickerTrigger(DefaultClockInterval)
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Loop{
		session: session,
		drop:    cfg.Drop,
		clock:   cfg.Clock,
		cmds:    make(chan tetris.Command, cfg.Buffer),
		done:    make(chan struct{}),
		logger:  cfg.Logger,
		hook:    cfg.OnOutcome,
	}
}

// Send queues a command. It blocks while the queue is full and fails once
// ctx is done or the loop has exited. Queued commands are never dropped.
func (l *Loop) Send(ctx context.Context, cmd tetris.Command) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.cmds <- cmd:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes commands and ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.stopTimers()

	l.syncTimers(l.session.State())

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case cmd := <-l.cmds:
			l.apply(cmd)
		case <-l.drop.C():
			l.apply(tetris.CmdDropTick)
		case <-l.clock.C():
			l.apply(tetris.CmdClockTick)
		}
	}
}

func (l *Loop) apply(cmd tetris.Command) {
	out := l.session.Dispatch(cmd)
	if out.From != out.To {
		l.logger.Debug("state changed", "cmd", cmd, "from", out.From, "to", out.To)
	}
	if out.Cleared > 0 {
		l.logger.Debug("rows cleared", "count", out.Cleared)
	}
	l.syncTimers(out.To)
	if l.hook != nil {
		l.hook(out)
	}
}

func (l *Loop) syncTimers(state tetris.State) {
	running := state == tetris.StateRunning
	switch {
	case running && !l.ticking:
		l.drop.Start()
		l.clock.Start()
		l.ticking = true
	case !running && l.ticking:
		l.stopTimers()
	}
}

func (l *Loop) stopTimers() {
	if !l.ticking {
		return
	}
	l.drop.Stop()
	l.clock.Stop()
	l.ticking = false
}
