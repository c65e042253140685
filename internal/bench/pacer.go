package bench

import "time"

// Pacer spaces operations at a fixed interval to hold a target
// bandwidth. deadlines form a fixed arithmetic sequence from the start
// instant: an operation that overruns its slot is never compensated for
// by shortening later slots, so under saturation the measured
// throughput falls below target instead of bursting to catch up.
type Pacer struct {
	interval time.Duration
	next     time.Time
}

// NewPacer returns a pacer for the given bandwidth in bytes per second
// and block size in bytes.
func NewPacer(bandwidth, blockSize int64) *Pacer {
	return &Pacer{
		interval: time.Duration(float64(blockSize) * 1e9 / float64(bandwidth)),
	}
}

// Interval returns the fixed per-operation time budget.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Start establishes the first deadline, one interval from now.
func (p *Pacer) Start(now time.Time) {
	p.next = now.Add(p.interval)
}

// Wait blocks until the current deadline if it has not already passed,
// then advances the deadline by one interval. the advance happens
// regardless of whether any sleep occurred.
func (p *Pacer) Wait() {
	if d := time.Until(p.next); d > 0 {
		time.Sleep(d)
	}
	p.next = p.next.Add(p.interval)
}
