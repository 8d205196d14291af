package headless

import "time"

// Trigger is a periodic signal source the loop can start and stop. The
// loop only calls it from its own goroutine.
type Trigger interface {
	// C returns the channel ticks arrive on. A nil channel means the
	// trigger is stopped; receiving from it blocks forever.
	C() <-chan time.Time
	Start()
	Stop()
}

// TickerTrigger is a Trigger backed by a time.Ticker.
type TickerTrigger struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewTickerTrigger returns a stopped trigger firing every interval once
// started.
func NewTickerTrigger(interval time.Duration) *TickerTrigger {
	return &TickerTrigger{interval: interval}
}

// C returns the ticker channel, or nil while stopped.
func (t *TickerTrigger) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Start begins ticking. Starting a running trigger restarts its period.
func (t *TickerTrigger) Start() {
	if t.ticker != nil {
		t.ticker.Reset(t.interval)
		return
	}
	t.ticker = time.NewTicker(t.interval)
}

// Stop halts the trigger. Pending ticks are discarded.
func (t *TickerTrigger) Stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

// Interval returns the configured period.
func (t *TickerTrigger) Interval() time.Duration {
	return t.interval
}
