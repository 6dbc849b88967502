package engine

import (
	"testing"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	stopAfter int // polls answered true before stopping, -1 never
	polls     int
	pollsLate int
	stopped   bool
	outputs   []SearchResult
	finished  []SearchResult
	stats     int
	extension time.Duration
	asked     int
}

func (r *recorder) QueryInput() bool {
	r.polls++
	if r.stopped {
		r.pollsLate++
		return false
	}
	if r.stopAfter >= 0 && r.polls > r.stopAfter {
		r.stopped = true
		return false
	}
	return true
}

func (r *recorder) GiveMoreTime() time.Duration {
	r.asked++
	return r.extension
}

func (r *recorder) SendOutput(res SearchResult)   { r.outputs = append(r.outputs, res) }
func (r *recorder) SendFinished(res SearchResult) { r.finished = append(r.finished, res) }
func (r *recorder) SendStats(SearchData)          { r.stats++ }

func newTestSearcher() *Searcher {
	return NewSearcher(1, zerolog.Nop())
}

func TestSearchFindsMateInOne(t *testing.T) {
	board := dragontoothmg.ParseFen("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	rec := &recorder{stopAfter: -1}

	res := newTestSearcher().Search(&board, nil, Limits{Depth: 4}, rec)

	assert.Equal(t, "a1a8", MoveString(res.BestMove))
	assert.True(t, IsMateScore(res.Score))
	assert.Equal(t, 1, MateIn(res.Score))
	assert.Len(t, rec.finished, 1)
	assert.NotEmpty(t, rec.outputs)
	assert.False(t, res.Stopped)
}

func TestSearchDoesNotTouchCallerBoard(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	before := board.ToFen()

	res := newTestSearcher().Search(&board, nil, Limits{Depth: 3}, nil)

	assert.Equal(t, before, board.ToFen())
	assert.Equal(t, 3, res.Depth)
	assert.False(t, res.NoMove())

	legal := false
	for _, mv := range board.GenerateLegalMoves() {
		if mv == res.BestMove {
			legal = true
		}
	}
	assert.True(t, legal, "best move %s must be legal", MoveString(res.BestMove))
}

func TestSearchStopsWithinOnePoll(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	rec := &recorder{stopAfter: 3}

	res := newTestSearcher().Search(&board, nil, Limits{}, rec)

	require.Len(t, rec.finished, 1)
	assert.True(t, res.Stopped)
	assert.Equal(t, 0, rec.pollsLate, "search kept polling after being told to stop")
	assert.Equal(t, 4, rec.polls)
	assert.LessOrEqual(t, res.Nodes, uint64(4*PollInterval))
	assert.False(t, res.NoMove(), "an interrupted search still has a move")
}

func TestSearchNoLegalMoves(t *testing.T) {
	stalemate := dragontoothmg.ParseFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	rec := &recorder{stopAfter: -1}

	res := newTestSearcher().Search(&stalemate, nil, Limits{Depth: 5}, rec)

	assert.True(t, res.NoMove())
	assert.Equal(t, DrawScore, res.Score)
	assert.Len(t, rec.finished, 1)
	assert.Empty(t, rec.outputs)
}

func TestSearchNodeLimit(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	rec := &recorder{stopAfter: -1}

	res := newTestSearcher().Search(&board, nil, Limits{Nodes: 5000}, rec)

	assert.True(t, res.Stopped)
	assert.Less(t, res.Nodes, uint64(5000+PollInterval))
	assert.Len(t, rec.finished, 1)
}

func TestSearchHonoursBudget(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	rec := &recorder{stopAfter: -1}

	start := time.Now()
	res := newTestSearcher().Search(&board, nil, Limits{Budget: 50 * time.Millisecond}, rec)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.False(t, res.NoMove())
	assert.Len(t, rec.finished, 1)
}

func TestSearchSeesRepetitionAsDraw(t *testing.T) {
	// White is a rook down; the repeated position is reachable with Kh1.
	board := dragontoothmg.ParseFen("k7/8/8/8/8/8/r7/6K1 w - - 4 3")
	repeated := dragontoothmg.ParseFen("k7/8/8/8/8/8/r7/7K b - - 3 2")

	res := newTestSearcher().Search(&board, []uint64{repeated.Hash(), repeated.Hash()}, Limits{Depth: 2}, nil)

	assert.Equal(t, "g1h1", MoveString(res.BestMove))
	assert.Equal(t, DrawScore, res.Score)
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "cp 35", ScoreString(35))
	assert.Equal(t, "cp -120", ScoreString(-120))
	assert.Equal(t, "mate 1", ScoreString(MaxScore-1))
	assert.Equal(t, "mate 2", ScoreString(MaxScore-3))
	assert.Equal(t, "mate -1", ScoreString(-MaxScore+2))
}
