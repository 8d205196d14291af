package headless

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// manualTrigger fires only when the test says so.
type manualTrigger struct {
	ch      chan time.Time
	started atomic.Bool
}

func newManualTrigger() *manualTrigger {
	return &manualTrigger{ch: make(chan time.Time)}
}

func (m *manualTrigger) C() <-chan time.Time {
	if !m.started.Load() {
		return nil
	}
	return m.ch
}

func (m *manualTrigger) Start() { m.started.Store(true) }
func (m *manualTrigger) Stop()  { m.started.Store(false) }

// fire delivers one tick, reporting false if the loop did not take it.
func (m *manualTrigger) fire() bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

type oRand struct{}

func (oRand) Intn(int) int { return 0 }

type harness struct {
	session *tetris.Session
	loop    *Loop
	drop    *manualTrigger
	clock   *manualTrigger
	cancel  context.CancelFunc

	mu       sync.Mutex
	outcomes []tetris.Outcome
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		session: tetris.NewSession(tetris.Options{Rand: oRand{}}),
		drop:    newManualTrigger(),
		clock:   newManualTrigger(),
	}
	h.loop = New(h.session, Config{
		Drop:  h.drop,
		Clock: h.clock,
		OnOutcome: func(out tetris.Outcome) {
			h.mu.Lock()
			h.outcomes = append(h.outcomes, out)
			h.mu.Unlock()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.loop.Run(ctx) //nolint:errcheck // exits with ctx.Err()
	t.Cleanup(func() {
		cancel()
		<-h.loop.Done()
	})
	return h
}

func (h *harness) send(t *testing.T, cmd tetris.Command) {
	t.Helper()
	require.NoError(t, h.loop.Send(context.Background(), cmd))
}

func (h *harness) applied() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.outcomes)
}

func (h *harness) waitApplied(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.applied() >= n }, time.Second, time.Millisecond)
}

func TestTimersFollowRunningState(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.drop.started.Load())

	h.send(t, tetris.CmdStart)
	h.waitApplied(t, 1)
	assert.True(t, h.drop.started.Load())
	assert.True(t, h.clock.started.Load())

	h.send(t, tetris.CmdPause)
	h.waitApplied(t, 2)
	assert.False(t, h.drop.started.Load())
	assert.False(t, h.clock.started.Load())

	h.send(t, tetris.CmdResume)
	h.waitApplied(t, 3)
	assert.True(t, h.drop.started.Load())
}

func TestDropTickMovesPiece(t *testing.T) {
	h := newHarness(t)
	h.send(t, tetris.CmdStart)
	h.waitApplied(t, 1)

	require.True(t, h.drop.fire())
	h.waitApplied(t, 2)

	p := h.session.Active()
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Pos.Row)
}

func TestClockTickCountsOnlyWhileRunning(t *testing.T) {
	h := newHarness(t)
	h.send(t, tetris.CmdStart)
	h.waitApplied(t, 1)

	require.True(t, h.clock.fire())
	require.True(t, h.clock.fire())
	h.waitApplied(t, 3)
	assert.Equal(t, 2, h.session.Elapsed())

	h.send(t, tetris.CmdPause)
	h.waitApplied(t, 4)
	assert.False(t, h.clock.fire(), "paused loop must not take clock ticks")
	assert.Equal(t, 2, h.session.Elapsed())
}

func TestCommandsAppliedInOrder(t *testing.T) {
	h := newHarness(t)
	script := []tetris.Command{
		tetris.CmdStart, tetris.CmdMoveLeft, tetris.CmdMoveLeft, tetris.CmdRotate,
		tetris.CmdMoveRight, tetris.CmdMoveDown, tetris.CmdPause, tetris.CmdMoveLeft,
	}
	for _, cmd := range script {
		h.send(t, cmd)
	}
	h.waitApplied(t, len(script))

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, out := range h.outcomes {
		assert.Equal(t, script[i], out.Command)
	}
	assert.False(t, h.outcomes[len(script)-1].Applied, "move while paused")
}

func TestSendAfterStop(t *testing.T) {
	h := newHarness(t)
	h.cancel()
	<-h.loop.Done()

	err := h.loop.Send(context.Background(), tetris.CmdStart)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestSendRespectsContext(t *testing.T) {
	s := tetris.NewSession(tetris.Options{})
	l := New(s, Config{Buffer: 1})
	require.NoError(t, l.Send(context.Background(), tetris.CmdStart))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Loop not running and queue full.
	err := l.Send(ctx, tetris.CmdPause)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTickerTrigger(t *testing.T) {
	tr := NewTickerTrigger(time.Millisecond)
	assert.Nil(t, tr.C())
	tr.Start()
	select {
	case <-tr.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
	tr.Stop()
	assert.Nil(t, tr.C())
	assert.Equal(t, time.Millisecond, tr.Interval())
}
