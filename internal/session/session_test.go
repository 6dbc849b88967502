package session

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/board"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/logging"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	ctl, err := New(Config{Options: Options{Hash: 1, Threads: 1}}, logging.Nop())
	require.NoError(t, err)
	return ctl
}

type recordingPoller struct {
	polls     int
	stopAfter int
	onPoll    func(n int) bool
	outputs   []engine.SearchResult
}

func (p *recordingPoller) Poll() bool {
	p.polls++
	if p.onPoll != nil {
		return p.onPoll(p.polls)
	}
	return p.stopAfter == 0 || p.polls < p.stopAfter
}

func (p *recordingPoller) Output(r engine.SearchResult) { p.outputs = append(p.outputs, r) }
func (p *recordingPoller) Stats(engine.SearchData)      {}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Config{Options: Options{Hash: 0, Threads: 1}}, logging.Nop())
	assert.ErrorIs(t, err, ErrOptionRange)
}

func TestFromFENRoundTrip(t *testing.T) {
	ctl := newTestController(t)
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	require.NoError(t, ctl.FromFEN(fen))
	assert.Equal(t, fen, ctl.FEN())
	assert.Equal(t, White, ctl.BoardColor())

	require.NoError(t, ctl.FromFEN("8/8/8/4k3/8/8/4P3/4K3 b - -"))
	assert.Equal(t, "8/8/8/4k3/8/8/4P3/4K3 b - - 0 1", ctl.FEN())
	assert.Equal(t, Black, ctl.BoardColor())
}

func TestFromFENFailureKeepsState(t *testing.T) {
	ctl := newTestController(t)
	_, err := ctl.MakeMove("e2e4")
	require.NoError(t, err)
	before := ctl.FEN()

	err = ctl.FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR KQkq - 0 1")
	assert.ErrorIs(t, err, ErrInvalidFEN)
	assert.Equal(t, before, ctl.FEN())
	assert.Equal(t, []string{"e2e4"}, ctl.Moves())
}

func TestMakeMoveUndoRestores(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 7 30"))

	b := ctl.Board()
	for _, mv := range b.GenerateLegalMoves() {
		text := engine.MoveString(mv)
		before := ctl.FEN()

		played, err := ctl.MakeMove(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, played)
		assert.NotEqual(t, before, ctl.FEN())

		require.NoError(t, ctl.Undo())
		assert.Equal(t, before, ctl.FEN(), text)
		assert.Empty(t, ctl.Moves())
	}
	assert.ErrorIs(t, ctl.Undo(), ErrNoHistory)
}

func TestMakeMoveSAN(t *testing.T) {
	ctl := newTestController(t)
	played, err := ctl.MakeMove("Nf3")
	require.NoError(t, err)
	assert.Equal(t, "g1f3", played)
}

func TestMakeMoveIllegalKeepsState(t *testing.T) {
	ctl := newTestController(t)
	before := ctl.FEN()
	for _, text := range []string{"e2e5", "e7e5", "Qh5", "xyz"} {
		_, err := ctl.MakeMove(text)
		assert.ErrorIs(t, err, ErrIllegalMove, text)
		assert.Equal(t, before, ctl.FEN())
	}
}

func TestSetPositionRollsBack(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.SetPosition(board.Startpos, []string{"e2e4", "e7e5"}))
	before := ctl.FEN()

	err := ctl.SetPosition(board.Startpos, []string{"d2d4", "d7d5", "d4d5"})
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, before, ctl.FEN())
	assert.Equal(t, []string{"e2e4", "e7e5"}, ctl.Moves())
}

func TestSetOptions(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.SetOptions(map[string]int{"hash": 2, "Threads": 4}))
	assert.Equal(t, Options{Hash: 2, Threads: 4}, ctl.Options())

	assert.ErrorIs(t, ctl.SetOptions(map[string]int{"Hash": 0}), ErrOptionRange)
	assert.ErrorIs(t, ctl.SetOptions(map[string]int{"Threads": 9}), ErrOptionRange)
	assert.ErrorIs(t, ctl.SetOptions(map[string]int{"Hash": 4, "Contempt": 1}), ErrUnknownOption)
	assert.Equal(t, Options{Hash: 2, Threads: 4}, ctl.Options())

	assert.ErrorIs(t, ctl.SetMemory(2048), ErrOptionRange)
	require.NoError(t, ctl.SetMemory(8))
	assert.Equal(t, 8, ctl.Options().Hash)
}

func TestSetOptionsTouchesOnlyNamedOptions(t *testing.T) {
	var buf bytes.Buffer
	ctl, err := New(Config{Options: Options{Hash: 1, Threads: 1}}, zerolog.New(&buf).Level(zerolog.DebugLevel))
	require.NoError(t, err)

	require.NoError(t, ctl.SetOptions(map[string]int{"threads": 2}))
	assert.Equal(t, Options{Hash: 1, Threads: 2}, ctl.Options())
	assert.NotContains(t, buf.String(), "hash resized")

	require.NoError(t, ctl.SetOptions(map[string]int{"Hash": 2}))
	assert.Equal(t, Options{Hash: 2, Threads: 2}, ctl.Options())
	assert.Contains(t, buf.String(), "hash resized")
}

func TestPlayRejectsStaleReply(t *testing.T) {
	ctl := newTestController(t)
	r, err := ctl.Think(&command.Go{Limits: command.Limits{Depth: 1}})
	require.NoError(t, err)

	_, err = ctl.MakeMove("e2e4")
	require.NoError(t, err)
	// A white move cannot be played with Black to move.
	_, err = ctl.Play(r)
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = ctl.Play(nil)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, []string{"e2e4"}, ctl.Moves())
}

func TestMovePlaysAndQueuesReply(t *testing.T) {
	ctl := newTestController(t)
	ctl.SetDepth(2)

	r, err := ctl.Move(nil)
	require.NoError(t, err)
	assert.Equal(t, White, r.Side)
	assert.Equal(t, board.Playing, r.State)
	assert.Equal(t, []string{r.Move}, ctl.Moves())
	assert.Equal(t, Black, ctl.SideToMove())
	assert.Equal(t, White, ctl.FigureColor())
	assert.False(t, ctl.Thinking())

	queued, ok := ctl.Reply(true)
	require.True(t, ok)
	assert.Equal(t, "move "+r.Move, queued.Line)

	_, ok = ctl.Reply(false)
	assert.False(t, ok)
}

func TestThinkLeavesPosition(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.SetPosition(board.Startpos, []string{"e2e4", "e7e5"}))
	before := ctl.FEN()

	r, err := ctl.Think(&command.Go{Limits: command.Limits{Depth: 1}})
	require.NoError(t, err)
	assert.Equal(t, before, ctl.FEN())

	_, err = ctl.MakeMove(r.Move)
	assert.NoError(t, err)
	_, ok := ctl.Reply(false)
	assert.False(t, ok)
}

func TestThinkUsesOwnClock(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.SetPosition(board.Startpos, []string{"e2e4"}))

	ctl.applyLimits(command.Limits{WTime: 1000, BTime: 60000, BInc: 1000, MovesToGo: 20})
	assert.Equal(t, 4*time.Second, ctl.Budget())
	assert.Equal(t, 20, ctl.clock.movesToGo)
	assert.Equal(t, time.Second, ctl.clock.oppTime)

	ctl.applyLimits(command.Limits{WTime: 1000, BTime: 60000, Infinite: true})
	assert.Zero(t, ctl.Budget())
}

func TestMoveInFinishedGame(t *testing.T) {
	ctl := newTestController(t)
	require.NoError(t, ctl.FromFEN("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1"))

	r, err := ctl.Move(nil)
	assert.ErrorIs(t, err, ErrGameOver)
	require.NotNil(t, r)
	assert.Equal(t, board.WhiteMates, r.State)
	assert.Equal(t, "1-0 {White mates}", r.State.Result())
}

func TestMoveFindsMate(t *testing.T) {
	ctl := newTestController(t)
	ctl.SetDepth(3)
	require.NoError(t, ctl.FromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"))

	r, err := ctl.Move(nil)
	require.NoError(t, err)
	assert.Equal(t, "a1a8", r.Move)
	assert.Equal(t, board.WhiteMates, r.State)
	assert.True(t, engine.IsMateScore(r.Score))
}

func TestPollerInterruptsSearch(t *testing.T) {
	ctl := newTestController(t)
	p := &recordingPoller{stopAfter: 3}
	ctl.SetPoller(p)
	ctl.SetPost(true)

	r, err := ctl.Analyze()
	require.NoError(t, err)
	assert.Equal(t, 3, p.polls)
	assert.NotEqual(t, "0000", r.Move)
	assert.False(t, ctl.Thinking())
}

func TestStopEndsSearchWithinOnePoll(t *testing.T) {
	ctl := newTestController(t)
	var stoppedAt int
	p := &recordingPoller{onPoll: func(n int) bool {
		if n == 2 {
			ctl.Stop()
			stoppedAt = n
		}
		return true
	}}
	ctl.SetPoller(p)

	r, err := ctl.Analyze()
	require.NoError(t, err)
	assert.Equal(t, 2, stoppedAt)
	assert.Equal(t, stoppedAt, p.polls)
	assert.LessOrEqual(t, r.Nodes, uint64(3*engine.PollInterval))

	// A new search starts with the flag cleared.
	ctl.SetPoller(nil)
	ctl.SetDepth(1)
	_, err = ctl.Think(nil)
	require.NoError(t, err)
}

func TestPostGatesOutput(t *testing.T) {
	ctl := newTestController(t)
	ctl.SetDepth(2)
	p := &recordingPoller{}
	ctl.SetPoller(p)

	_, err := ctl.Think(nil)
	require.NoError(t, err)
	assert.Empty(t, p.outputs)

	ctl.SetPost(true)
	_, err = ctl.Think(nil)
	require.NoError(t, err)
	assert.Len(t, p.outputs, 2)
}

func TestPGNSaveLoad(t *testing.T) {
	ctl := newTestController(t)
	for _, mv := range []string{"d2d4", "g8f6", "c2c4", "e7e6"} {
		_, err := ctl.MakeMove(mv)
		require.NoError(t, err)
	}
	san, err := ctl.MovesSAN()
	require.NoError(t, err)
	assert.Equal(t, []string{"d4", "Nf6", "c4", "e6"}, san)

	var buf bytes.Buffer
	require.NoError(t, ctl.SavePGN(&buf))
	assert.Contains(t, buf.String(), `[Black "GooseEngine"]`)

	other := newTestController(t)
	require.NoError(t, other.LoadPGN(&buf))
	assert.Equal(t, ctl.FEN(), other.FEN())
	assert.Equal(t, ctl.Moves(), other.Moves())
}

func TestNewGameResets(t *testing.T) {
	ctl := newTestController(t)
	ctl.SetDepth(4)
	require.NoError(t, ctl.FromFEN("8/8/8/4k3/8/8/4P3/4K3 b - - 0 1"))
	ctl.SetFigureColor(White)

	ctl.NewGame()
	assert.Equal(t, board.Startpos, ctl.FEN())
	assert.Equal(t, Black, ctl.FigureColor())
	assert.Equal(t, White, ctl.BoardColor())
	assert.Zero(t, ctl.Depth())
}
