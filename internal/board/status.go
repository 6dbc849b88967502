package board

import (
	"github.com/dylhunn/dragontoothmg"

	"github.com/Oliverans/GooseEngine/engine"
)

// State is the outcome of a position, Playing while the game goes on.
type State int

const (
	Playing State = iota
	WhiteMates
	BlackMates
	Stalemate
	FiftyMoves
	Repetition
	Insufficient
)

var stateNames = [...]string{
	Playing:      "playing",
	WhiteMates:   "white mates",
	BlackMates:   "black mates",
	Stalemate:    "stalemate",
	FiftyMoves:   "fifty move rule",
	Repetition:   "repetition",
	Insufficient: "insufficient material",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

func (s State) Over() bool {
	return s != Playing
}

// Result is the CECP result line for a finished game, "" while playing.
func (s State) Result() string {
	switch s {
	case WhiteMates:
		return "1-0 {White mates}"
	case BlackMates:
		return "0-1 {Black mates}"
	case Stalemate:
		return "1/2-1/2 {Stalemate}"
	case FiftyMoves:
		return "1/2-1/2 {50 move rule}"
	case Repetition:
		return "1/2-1/2 {Draw by repetition}"
	case Insufficient:
		return "1/2-1/2 {Insufficient material}"
	}
	return ""
}

// Status classifies b. history holds the hashes of earlier positions of the
// game, oldest first, and is only used for threefold repetition.
func Status(b *dragontoothmg.Board, history []uint64) State {
	if len(b.GenerateLegalMoves()) == 0 {
		if !b.OurKingInCheck() {
			return Stalemate
		}
		if b.Wtomove {
			return BlackMates
		}
		return WhiteMates
	}
	if b.Halfmoveclock >= 100 {
		return FiftyMoves
	}
	if engine.InsufficientMaterial(b) {
		return Insufficient
	}

	hash := b.Hash()
	seen := 1
	for _, h := range history {
		if h == hash {
			seen++
		}
	}
	if seen >= 3 {
		return Repetition
	}
	return Playing
}
