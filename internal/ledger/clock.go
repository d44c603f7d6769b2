package ledger

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current block height. Heights never decrease.
type Clock interface {
	BlockHeight() uint64
}

// DefaultBlockInterval is the average Stacks block time.
const DefaultBlockInterval = 10 * time.Minute

// ChainClock derives block height from wall time since a genesis instant.
type ChainClock struct {
	Genesis  time.Time
	Interval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (c ChainClock) BlockHeight() uint64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultBlockInterval
	}
	elapsed := now().Sub(c.Genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / interval)
}

// ManualClock is a settable clock for tests and tooling.
type ManualClock struct {
	height atomic.Uint64
}

func NewManualClock(height uint64) *ManualClock {
	c := &ManualClock{}
	c.height.Store(height)
	return c
}

func (c *ManualClock) BlockHeight() uint64 { return c.height.Load() }

// Set moves the clock to height. Moving backwards is ignored.
func (c *ManualClock) Set(height uint64) {
	for {
		cur := c.height.Load()
		if height <= cur || c.height.CompareAndSwap(cur, height) {
			return
		}
	}
}

// Advance moves the clock forward by n blocks.
func (c *ManualClock) Advance(n uint64) {
	c.height.Add(n)
}
