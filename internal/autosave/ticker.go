package autosave

import "time"

// Ticker abstracts time.Ticker so tests can drive the scheduler manually.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds the ticker the scheduler runs on.
type TickerFactory func(interval time.Duration) Ticker

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time { return t.ticker.C }
func (t *realTicker) Stop()               { t.ticker.Stop() }

func newRealTicker(interval time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(interval)}
}
