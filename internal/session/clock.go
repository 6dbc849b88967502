package session

import (
	"time"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

const (
	// Shortest budget handed to the search when a clock is running.
	minMove = 10 * time.Millisecond
	// Kept back from the clock for transmission lag.
	overhead = 50 * time.Millisecond
)

// clock is the time control bookkeeping of the session.
type clock struct {
	movesPerControl int
	movesToGo       int
	movesLeft       int
	timePerMove     time.Duration
	xtime           time.Duration
	increment       time.Duration
	oppTime         time.Duration
}

// budget derives the time allotment for the next move. fixed reports that
// the budget is a per-move setting rather than a share of the clock, which
// rules out extensions. movesLeft is the fallback move count for sudden
// death when none was set explicitly.
func (c clock) budget(movesLeft int) (b time.Duration, fixed bool) {
	n, t, p := c.movesToGo, c.xtime, c.timePerMove
	switch {
	case n > 0 && t > 0:
		// The increment is added on top of the share but the budget never
		// exceeds what is on the clock.
		b = min(t/time.Duration(n)+c.increment, t)
		if p > 0 && p < b {
			return p, true
		}
		return b, false
	case p > 0:
		return p, true
	case t > 0:
		if c.movesLeft > 0 {
			movesLeft = c.movesLeft
		}
		movesLeft = max(movesLeft, 1)
		return c.clamp(t/time.Duration(movesLeft) + c.increment), false
	}
	return 0, false
}

// clamp keeps a sudden death estimate inside [minMove, 0.7*xtime] and away
// from the last overhead of the clock.
func (c clock) clamp(b time.Duration) time.Duration {
	high := timeutil.Min(c.xtime*7/10, c.xtime-overhead)
	high = timeutil.Max(high, minMove)
	return timeutil.Clamp(b, minMove, high)
}

// syncControl recomputes movesToGo for a CECP level with a move count,
// where the control restarts every movesPerControl moves.
func (c *clock) syncControl(fullmove int) {
	if c.movesPerControl <= 0 {
		return
	}
	c.movesToGo = c.movesPerControl - (fullmove-1)%c.movesPerControl
}

// Budget is the time the next search may use, zero for no time limit.
func (ctl *Controller) Budget() time.Duration {
	b, _ := ctl.clock.budget(engine.EstimateMovesRemaining(&ctl.game.board))
	return b
}

// GiveMoreTime grants an extension to the running search. Every grant is
// smaller than the one before and all grants together never exceed what is
// left on the clock after the budget itself.
func (ctl *Controller) GiveMoreTime() time.Duration {
	if ctl.fixedTime || ctl.budget <= 0 || ctl.clock.xtime <= 0 {
		return 0
	}
	room := ctl.clock.xtime - ctl.budget - ctl.extended
	if room <= 0 {
		return 0
	}
	grant := ctl.budget / time.Duration(2+ctl.moreTime)
	grant = min(grant, room)
	if grant <= 0 {
		return 0
	}
	ctl.extended += grant
	ctl.moreTime++
	ctl.log.Debug().Dur("grant", grant).Int("count", ctl.moreTime).Msg("time extended")
	return grant
}

// MoreTimeCount is how many extensions were granted during the session.
func (ctl *Controller) MoreTimeCount() int {
	return ctl.moreTime
}

func (ctl *Controller) SetTimePerMove(d time.Duration) { ctl.clock.timePerMove = d }
func (ctl *Controller) SetXtime(d time.Duration)       { ctl.clock.xtime = d }
func (ctl *Controller) SetIncrement(d time.Duration)   { ctl.clock.increment = d }
func (ctl *Controller) SetOppTime(d time.Duration)     { ctl.clock.oppTime = d }

// SetMovesLeft overrides the estimate of moves remaining in a sudden death
// game; zero goes back to the estimate.
func (ctl *Controller) SetMovesLeft(n int) { ctl.clock.movesLeft = max(n, 0) }

// SetMovesToGo sets the moves remaining until the next time control.
func (ctl *Controller) SetMovesToGo(n int) {
	ctl.clock.movesToGo = max(n, 0)
	ctl.clock.movesPerControl = 0
}

// SetLevel installs a CECP level: mps moves per control (0 for the whole
// game), base clock and increment per move. A level cancels any fixed time
// per move.
func (ctl *Controller) SetLevel(mps int, base, inc time.Duration) {
	ctl.clock.movesPerControl = max(mps, 0)
	ctl.clock.movesToGo = 0
	ctl.clock.timePerMove = 0
	ctl.clock.xtime = base
	ctl.clock.increment = inc
	ctl.clock.syncControl(int(ctl.game.board.Fullmoveno))
}
