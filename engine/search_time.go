package engine

import (
	"sync/atomic"
	"time"
)

// SearchContext holds per-search time management and node statistics reset
// at every top-level search start (spec §3's Time Control State and Search
// Statistics share one lifetime in this implementation).
type SearchContext struct {
	startTime time.Time
	timeLimit time.Duration
	unbounded bool

	nodes  int64
	qnodes int64

	stopped atomic.Bool
}

// NewSearchContext starts a context with the given time budget. A zero or
// negative limit means depth-limited search only: the clock is never
// consulted.
func NewSearchContext(timeLimit time.Duration) *SearchContext {
	return &SearchContext{
		startTime: time.Now(),
		timeLimit: timeLimit,
		unbounded: timeLimit <= 0,
	}
}

// checkTimeout consults the wall clock (called only every 2048 nodes per the
// throttling rule in spec §5) and sets the sticky aborted flag if the
// deadline has passed.
func (ctx *SearchContext) checkTimeout() bool {
	if ctx.stopped.Load() {
		return true
	}
	if ctx.unbounded {
		return false
	}
	if time.Since(ctx.startTime) >= ctx.timeLimit {
		ctx.stopped.Store(true)
		return true
	}
	return false
}

// Stop forces the sticky abort flag, e.g. in response to a UCI `stop`.
func (ctx *SearchContext) Stop() {
	ctx.stopped.Store(true)
}

// Elapsed returns the time since the search began.
func (ctx *SearchContext) Elapsed() time.Duration {
	return time.Since(ctx.startTime)
}

// AllocateTime implements the UCI time budget formula of spec §6:
// movetime, if given, is used verbatim; otherwise budget = clamp(t/30 + i,
// 100, 10000) ms for our remaining time t and increment i.
func AllocateTime(wtime, btime, winc, binc, movetime int, isWhite bool) time.Duration {
	if movetime > 0 {
		return time.Duration(movetime) * time.Millisecond
	}
	myTime, myInc := wtime, winc
	if !isWhite {
		myTime, myInc = btime, binc
	}
	if myTime <= 0 && myInc <= 0 {
		return 0 // depth-limited only; caller must supply a depth
	}
	budget := myTime/30 + myInc
	if budget < 100 {
		budget = 100
	}
	if budget > 10000 {
		budget = 10000
	}
	return time.Duration(budget) * time.Millisecond
}
