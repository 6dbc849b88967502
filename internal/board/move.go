package board

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// FindMove resolves text against the legal moves of b. Coordinate notation
// is tried first, then standard algebraic notation.
func FindMove(b *dragontoothmg.Board, text string) (dragontoothmg.Move, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty", ErrIllegalMove)
	}

	legal := b.GenerateLegalMoves()
	coord := strings.ToLower(text)
	for _, mv := range legal {
		if mv.String() == coord {
			return mv, nil
		}
	}

	coord, err := sanToCoordinate(b, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	for _, mv := range legal {
		if mv.String() == coord {
			return mv, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}

func position(b *dragontoothmg.Board) (*chess.Position, error) {
	opt, err := chess.FEN(b.ToFen())
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt).Position(), nil
}

func sanToCoordinate(b *dragontoothmg.Board, san string) (string, error) {
	san = strings.ReplaceAll(san, "0", "O")
	pos, err := position(b)
	if err != nil {
		return "", err
	}
	m, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		return "", err
	}
	return chess.UCINotation{}.Encode(pos, m), nil
}

// SAN renders a legal move of b in standard algebraic notation.
func SAN(b *dragontoothmg.Board, mv dragontoothmg.Move) (string, error) {
	pos, err := position(b)
	if err != nil {
		return "", err
	}
	m, err := chess.UCINotation{}.Decode(pos, mv.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrIllegalMove, mv.String())
	}
	return chess.AlgebraicNotation{}.Encode(pos, m), nil
}

// Legal reports whether mv is legal in b.
func Legal(b *dragontoothmg.Board, mv dragontoothmg.Move) bool {
	for _, m := range b.GenerateLegalMoves() {
		if m == mv {
			return true
		}
	}
	return false
}
