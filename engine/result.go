package engine

import (
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// MaxPV bounds the principal variation kept in a SearchResult.
const MaxPV = 64

// SearchResult is what one iteration, or the whole search, produced.
// Score is in centipawns from the side to move's point of view; mate scores
// are near MaxScore, see ScoreString.
type SearchResult struct {
	BestMove dragontoothmg.Move
	Ponder   dragontoothmg.Move
	Score    int32
	Depth    int
	SelDepth int
	Elapsed  time.Duration
	Nodes    uint64
	PV       [MaxPV]dragontoothmg.Move
	PVLen    int

	// Stopped is set when the search was cut short by QueryInput, the node
	// limit or the clock rather than by reaching its depth.
	Stopped bool
}

// PVString joins the principal variation in coordinate notation.
func (r *SearchResult) PVString() string {
	parts := make([]string, 0, r.PVLen)
	for i := 0; i < r.PVLen; i++ {
		parts = append(parts, r.PV[i].String())
	}
	return strings.Join(parts, " ")
}

// NoMove reports whether the result carries no best move at all, which only
// happens in positions without a legal move.
func (r *SearchResult) NoMove() bool {
	return r.BestMove == 0
}

func (r *SearchResult) setPV(line PVLine) {
	r.PVLen = 0
	for _, mv := range line.Moves {
		if r.PVLen == MaxPV {
			break
		}
		r.PV[r.PVLen] = mv
		r.PVLen++
	}
	r.Ponder = 0
	if r.PVLen > 0 {
		r.BestMove = r.PV[0]
	}
	if r.PVLen > 1 {
		r.Ponder = r.PV[1]
	}
}

// SearchData is the periodic progress snapshot.
type SearchData struct {
	Depth    int
	SelDepth int
	Nodes    uint64
	Elapsed  time.Duration
}

// MoveString renders a move in coordinate notation; the zero move is "0000".
func MoveString(m dragontoothmg.Move) string {
	if m == 0 {
		return "0000"
	}
	return m.String()
}
