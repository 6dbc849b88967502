package board

import (
	"fmt"
	"io"
	"sort"

	"github.com/notnil/chess"
)

// Game is a start position plus the coordinate moves played from it.
type Game struct {
	StartFEN string
	Moves    []string
}

func (g Game) replay() (*chess.Game, error) {
	var opts []func(*chess.Game)
	if g.StartFEN != "" && g.StartFEN != Startpos {
		opt, err := chess.FEN(g.StartFEN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		opts = append(opts, opt)
	}
	game := chess.NewGame(opts...)
	for _, text := range g.Moves {
		m, err := chess.UCINotation{}.Decode(game.Position(), text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrIllegalMove, text)
		}
		if err := game.Move(m); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrIllegalMove, text)
		}
	}
	return game, nil
}

// SANMoves renders the move list in standard algebraic notation.
func (g Game) SANMoves() ([]string, error) {
	game, err := g.replay()
	if err != nil {
		return nil, err
	}
	positions := game.Positions()
	out := make([]string, 0, len(g.Moves))
	for i, m := range game.Moves() {
		out = append(out, chess.AlgebraicNotation{}.Encode(positions[i], m))
	}
	return out, nil
}

// WritePGN writes the game with the given tag pairs, sorted by name.
func (g Game) WritePGN(w io.Writer, tags map[string]string) error {
	game, err := g.replay()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		game.AddTagPair(k, tags[k])
	}
	_, err = io.WriteString(w, game.String())
	return err
}

// ReadPGN loads the main line of the first game in r.
func ReadPGN(r io.Reader) (Game, error) {
	opt, err := chess.PGN(r)
	if err != nil {
		return Game{}, err
	}
	game := chess.NewGame(opt)
	positions := game.Positions()
	out := Game{StartFEN: positions[0].String()}
	for i, m := range game.Moves() {
		out.Moves = append(out.Moves, chess.UCINotation{}.Encode(positions[i], m))
	}
	return out, nil
}
