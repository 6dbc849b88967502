package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// Score drop, in centipawns, between iterations that counts as unstable.
const instabilityMargin = 30

// TimeHandler turns the move budget into deadlines. The budget is soft: a
// new iteration is only started while less than half of it is used, and
// the search is interrupted once all of it is gone unless GiveMoreTime
// grants more.
type TimeHandler struct {
	start    time.Time
	deadline time.Time
	limited  bool

	lastBest  dragontoothmg.Move
	lastScore int32
	iters     int
	unstable  bool
}

func (th *TimeHandler) StartTime(budget time.Duration) {
	th.start = time.Now()
	th.limited = budget > 0
	th.deadline = th.start.Add(budget)
	th.lastBest = 0
	th.lastScore = 0
	th.iters = 0
	th.unstable = false
}

func (th *TimeHandler) Elapsed() time.Duration {
	return time.Since(th.start)
}

// Extend pushes the hard deadline back by extra.
func (th *TimeHandler) Extend(extra time.Duration) {
	th.deadline = th.deadline.Add(extra)
}

// SoftTimeExceeded is checked between iterations.
func (th *TimeHandler) SoftTimeExceeded() bool {
	if !th.limited {
		return false
	}
	total := th.deadline.Sub(th.start)
	return th.Elapsed() >= total/2
}

/*
  - True if we're out of time
  - False if we still got time, or there is no clock at all
*/
func (th *TimeHandler) TimeStatus() bool {
	return th.limited && !time.Now().Before(th.deadline)
}

// UpdateStability records a finished iteration. The position counts as
// unstable when the best move changed or the score fell noticeably.
func (th *TimeHandler) UpdateStability(score int32, best dragontoothmg.Move) {
	if th.iters > 0 {
		th.unstable = best != th.lastBest || score < th.lastScore-instabilityMargin
	}
	th.lastBest = best
	th.lastScore = score
	th.iters++
}

func (th *TimeHandler) ShouldExtendTime() bool {
	return th.limited && th.unstable
}

// EstimateMovesRemaining guesses how many moves are left in the game from
// the material on the board.
func EstimateMovesRemaining(b *dragontoothmg.Board) int {
	return estimateMovesRemaining(GetPiecePhase(b))
}

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/midgame)
	return (phase*25)/24 + 20 // result ∈ [20, 45]
}
