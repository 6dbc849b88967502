package session

import (
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/board"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

// Reply is the outcome of a search.
type Reply struct {
	// State is the game state after Move was played, or of the searched
	// position when nothing was played.
	State  board.State
	Move   string
	Ponder string
	// Side is the side that moved.
	Side  Color
	Score int32
	Depth int
	Nodes uint64
	Time  time.Duration
	// Line is the wire text announcing the move, filled in by
	// Controller.Reply.
	Line string

	best dragontoothmg.Move
}

// applyLimits installs the clock of a UCI go. The values only describe the
// coming search, so everything not given is cleared.
func (ctl *Controller) applyLimits(l command.Limits) (depth int) {
	us := ctl.SideToMove()
	xtime, inc := l.WTime, l.WInc
	if us == Black {
		xtime, inc = l.BTime, l.BInc
	}
	opp := l.BTime
	if us == Black {
		opp = l.WTime
	}
	ctl.clock = clock{movesLeft: ctl.clock.movesLeft}
	if !l.Infinite {
		ctl.SetMovesToGo(l.MovesToGo)
		ctl.SetXtime(timeutil.Millis(xtime))
		ctl.SetIncrement(timeutil.Millis(inc))
		ctl.SetOppTime(timeutil.Millis(opp))
		ctl.SetTimePerMove(timeutil.Millis(l.MoveTime))
	}
	ctl.nodeLimit = l.Nodes
	if l.Depth > 0 {
		return l.Depth
	}
	return ctl.maxDepth
}

// Think searches the current position without playing the result. g holds
// UCI limits; nil means the session's own time control applies.
func (ctl *Controller) Think(g *command.Go) (*Reply, error) {
	if ctl.thinking {
		return nil, ErrBusy
	}
	if st := ctl.Status(); st.Over() {
		return &Reply{State: st, Side: ctl.SideToMove()}, fmt.Errorf("%w: %s", ErrGameOver, st)
	}

	depth := ctl.maxDepth
	ctl.nodeLimit = 0
	if g != nil {
		depth = ctl.applyLimits(g.Limits)
	}
	budget, fixed := ctl.clock.budget(engine.EstimateMovesRemaining(&ctl.game.board))
	return ctl.search(engine.Limits{Depth: depth, Nodes: ctl.nodeLimit, Budget: budget}, fixed), nil
}

// Move searches the current position and plays the best move found.
func (ctl *Controller) Move(g *command.Go) (*Reply, error) {
	r, err := ctl.Think(g)
	if err != nil {
		return r, err
	}
	return ctl.Play(r)
}

// Play makes the move of a reply from Think on the board and queues the
// reply for Reply.
func (ctl *Controller) Play(r *Reply) (*Reply, error) {
	if r == nil || !board.Legal(&ctl.game.board, r.best) {
		return nil, ErrIllegalMove
	}
	ctl.figureColor = r.Side
	ctl.game.play(r.best)
	ctl.clock.syncControl(int(ctl.game.board.Fullmoveno))
	r.State = ctl.Status()
	ctl.reply = r
	return r, nil
}

// Analyze searches the current position until Stop is called or the
// poller interrupts. Nothing is played.
func (ctl *Controller) Analyze() (*Reply, error) {
	if ctl.thinking {
		return nil, ErrBusy
	}
	if st := ctl.Status(); st.Over() {
		return &Reply{State: st, Side: ctl.SideToMove()}, fmt.Errorf("%w: %s", ErrGameOver, st)
	}
	return ctl.search(engine.Limits{}, false), nil
}

func (ctl *Controller) search(limits engine.Limits, fixed bool) *Reply {
	ctl.thinking = true
	ctl.stop.Store(false)
	ctl.budget = limits.Budget
	ctl.fixedTime = fixed
	ctl.extended = 0
	defer func() { ctl.thinking = false }()

	ctl.log.Debug().
		Int("depth", limits.Depth).
		Uint64("nodes", limits.Nodes).
		Dur("budget", limits.Budget).
		Str("fen", ctl.FEN()).
		Msg("search started")

	res := ctl.searcher.Search(&ctl.game.board, ctl.game.hashes, limits, ctl)
	r := &Reply{
		State: board.Playing,
		Move:  engine.MoveString(res.BestMove),
		Side:  ctl.SideToMove(),
		Score: res.Score,
		Depth: res.Depth,
		Nodes: res.Nodes,
		Time:  res.Elapsed,
		best:  res.BestMove,
	}
	if res.Ponder != 0 {
		r.Ponder = engine.MoveString(res.Ponder)
	}
	return r
}

// Stop asks the running search to finish. It is safe to call from any
// goroutine.
func (ctl *Controller) Stop() {
	ctl.stop.Store(true)
}

// Reply hands out the reply of the last Move once. winboard selects the
// CECP announcement over the UCI one.
func (ctl *Controller) Reply(winboard bool) (*Reply, bool) {
	r := ctl.reply
	if r == nil {
		return nil, false
	}
	ctl.reply = nil
	r.Line = FormatMove(r, winboard)
	return r, true
}

// FormatMove renders the announcement of r for a dialect.
func FormatMove(r *Reply, winboard bool) string {
	if winboard {
		return "move " + r.Move
	}
	if r.Ponder != "" {
		return "bestmove " + r.Move + " ponder " + r.Ponder
	}
	return "bestmove " + r.Move
}

func (ctl *Controller) QueryInput() bool {
	if ctl.stop.Load() {
		return false
	}
	if ctl.poller != nil && !ctl.poller.Poll() {
		return false
	}
	return !ctl.stop.Load()
}

func (ctl *Controller) SendOutput(r engine.SearchResult) {
	if ctl.post && ctl.poller != nil {
		ctl.poller.Output(r)
	}
}

func (ctl *Controller) SendFinished(r engine.SearchResult) {
	ctl.log.Debug().
		Str("best", engine.MoveString(r.BestMove)).
		Int("depth", r.Depth).
		Str("score", engine.ScoreString(r.Score)).
		Int("extensions", ctl.MoreTimeCount()).
		Msg("search finished")
}

func (ctl *Controller) SendStats(d engine.SearchData) {
	if ctl.post && ctl.poller != nil {
		ctl.poller.Stats(d)
	}
}

// Board exposes a copy of the current position.
func (ctl *Controller) Board() dragontoothmg.Board {
	return ctl.game.board
}
