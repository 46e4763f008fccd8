package stream

import "time"

// Clock abstracts the monotonic clock for the Pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Pacer spaces frames a fixed interval apart. The interval runs from the
// last Mark, which the scheduler sets when a frame finished transmitting,
// so slow transfers never accumulate drift.
//
// Wait sleeps for all but the last spin margin and then spins on the clock,
// trading a little CPU for timer precision.
type Pacer struct {
	clock    Clock
	interval time.Duration
	spin     time.Duration
	last     time.Time
}

// NewPacer returns a Pacer anchored at the current time.
func NewPacer(interval, spin time.Duration, clock Clock) *Pacer {
	if clock == nil {
		clock = systemClock{}
	}
	p := &Pacer{
		clock:    clock,
		interval: interval,
		spin:     spin,
	}
	p.Mark()
	return p
}

// Mark anchors the next interval at the current time.
func (p *Pacer) Mark() {
	p.last = p.clock.Now()
}

// Wait blocks until the interval since the last Mark has elapsed.
func (p *Pacer) Wait() {
	deadline := p.last.Add(p.interval)

	if remaining := deadline.Sub(p.clock.Now()); remaining > p.spin {
		p.clock.Sleep(remaining - p.spin)
	}
	for p.clock.Now().Before(deadline) {
	}
}
