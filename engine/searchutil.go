package engine

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

// MaxDepth bounds both the iterative deepening loop and the ply index of
// the per-ply tables.
const MaxDepth = 100

var historyMaxVal = 10000 // Ensure we stay below the captures, countermoves etc

// PVLine collects the principal variation below a node.
type PVLine struct {
	Moves []dragontoothmg.Move
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update makes move followed by the child's line the new variation.
func (pv *PVLine) Update(move dragontoothmg.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

/*
HISTORY MOVES
If a quiet move caused a cutoff we bump its from/to score so later nodes try
it earlier.
*/
func (s *Searcher) incrementHistoryScore(sideToMove bool, move dragontoothmg.Move, depth int8) {
	side := sideIndex(sideToMove)
	s.history[side][move.From()][move.To()] += int(depth) * int(depth)
	if s.history[side][move.From()][move.To()] >= historyMaxVal {
		s.ageHistoryTable(side)
	}
}

// Age the values in the history table by halving them.
func (s *Searcher) ageHistoryTable(side int) {
	for sq1 := 0; sq1 < 64; sq1++ {
		for sq2 := 0; sq2 < 64; sq2++ {
			s.history[side][sq1][sq2] /= 2
		}
	}
}

func (s *Searcher) clearHistoryTable() {
	s.history = [2][64][64]int{}
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int32) bool {
	return score >= Checkmate || score <= -Checkmate
}

// MateIn converts a mate score to moves, negative when we are mated.
func MateIn(score int32) int {
	if score > 0 {
		return (int(MaxScore-score) + 1) / 2
	}
	return -(int(MaxScore+score) + 1) / 2
}

// ScoreString renders a score the way UCI expects: "cp N" or "mate N".
// Taken from Blunder chess engine and just slightly modified.
func ScoreString(score int32) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}
