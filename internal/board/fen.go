// Package board wraps the move generator with the checks and notations the
// session needs: FEN validation, move lookup in coordinate or algebraic
// form, game state detection and PGN.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
)

// Startpos is the initial position.
const Startpos = dragontoothmg.Startpos

// NormalizeFEN checks the syntax of fen and returns it with exactly six
// fields, filling in "0 1" for missing move counters.
func NormalizeFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return "", fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}

	if err := checkPlacement(fields[0]); err != nil {
		return "", err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return "", fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	if err := checkCastling(fields[2]); err != nil {
		return "", err
	}
	if err := checkEnPassant(fields[3], fields[1]); err != nil {
		return "", err
	}
	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 || half > 255 {
		return "", fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 0 || full > 65535 {
		return "", fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
	}
	if full == 0 {
		fields[5] = "1"
	}
	return strings.Join(fields, " "), nil
}

func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	kings := map[rune]int{}
	for i, rank := range ranks {
		files := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				if (c == 'p' || c == 'P') && (i == 0 || i == 7) {
					return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
				}
				if c == 'k' || c == 'K' {
					kings[c]++
				}
				files++
			default:
				return fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, c)
			}
		}
		if files != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-i, files)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return fmt.Errorf("%w: need one king per side", ErrInvalidFEN)
	}
	return nil
}

func checkCastling(castling string) error {
	if castling == "-" {
		return nil
	}
	seen := map[rune]bool{}
	for _, c := range castling {
		if !strings.ContainsRune("KQkq", c) || seen[c] {
			return fmt.Errorf("%w: castling rights %q", ErrInvalidFEN, castling)
		}
		seen[c] = true
	}
	return nil
}

func checkEnPassant(ep, side string) error {
	if ep == "-" {
		return nil
	}
	want := byte('6')
	if side == "b" {
		want = '3'
	}
	if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || ep[1] != want {
		return fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, ep)
	}
	return nil
}

// ParseFEN validates fen and loads it. The side not to move may not be in
// check.
func ParseFEN(fen string) (b dragontoothmg.Board, err error) {
	norm, err := NormalizeFEN(fen)
	if err != nil {
		return b, err
	}

	defer func() {
		if r := recover(); r != nil {
			b = dragontoothmg.Board{}
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	b = dragontoothmg.ParseFen(norm)

	other := b
	other.Wtomove = !other.Wtomove
	if other.OurKingInCheck() {
		return dragontoothmg.Board{}, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	return b, nil
}

// FEN renders b.
func FEN(b *dragontoothmg.Board) string {
	return b.ToFen()
}
