package board

import (
	"sort"

	"github.com/dylhunn/dragontoothmg"
)

// Perft counts the leaf nodes of the legal move tree of b to depth.
func Perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, mv := range moves {
		unapply := b.Apply(mv)
		nodes += Perft(b, depth-1)
		unapply()
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide runs perft below every root move, sorted by move text.
func Divide(b *dragontoothmg.Board, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	var out []DivideEntry
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		out = append(out, DivideEntry{Move: mv.String(), Nodes: Perft(b, depth-1)})
		unapply()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	return out
}
