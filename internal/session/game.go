package session

import (
	"fmt"
	"io"

	"github.com/dylhunn/dragontoothmg"

	"github.com/Oliverans/GooseEngine/internal/board"
)

// game is the position plus everything needed to take moves back and to
// detect repetitions.
type game struct {
	board    dragontoothmg.Board
	startFEN string
	moves    []string
	// snapshots[i] is the board before moves[i].
	snapshots []dragontoothmg.Board
	// hashes of the positions before the current one, oldest first.
	hashes []uint64
}

func (g *game) reset(b dragontoothmg.Board, fen string) {
	g.board = b
	g.startFEN = fen
	g.moves = nil
	g.snapshots = nil
	g.hashes = nil
}

func (g *game) play(mv dragontoothmg.Move) {
	g.snapshots = append(g.snapshots, g.board)
	g.hashes = append(g.hashes, g.board.Hash())
	g.moves = append(g.moves, mv.String())
	g.board.Apply(mv)
}

func (g *game) undo() bool {
	n := len(g.snapshots)
	if n == 0 {
		return false
	}
	g.board = g.snapshots[n-1]
	g.snapshots = g.snapshots[:n-1]
	g.hashes = g.hashes[:n-1]
	g.moves = g.moves[:n-1]
	return true
}

// NewGame starts a game from the initial position with the engine playing
// Black, and forgets what earlier searches learnt.
func (ctl *Controller) NewGame() {
	ctl.game.reset(dragontoothmg.ParseFen(dragontoothmg.Startpos), dragontoothmg.Startpos)
	ctl.SetColors(White, Black)
	ctl.maxDepth = ctl.defaultDepth
	ctl.clock.syncControl(1)
	ctl.searcher.Clear()
	ctl.reply = nil
	ctl.log.Debug().Msg("new game")
}

// FromFEN installs a position. The session is left untouched when fen is
// not a valid position.
func (ctl *Controller) FromFEN(fen string) error {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	ctl.game.reset(b, board.FEN(&b))
	ctl.boardColor = sideToMove(&b)
	ctl.reply = nil
	return nil
}

// SetPosition installs fen and plays moves on it. If any move is illegal
// the session goes back to where it was before the call.
func (ctl *Controller) SetPosition(fen string, moves []string) error {
	saved := ctl.game
	savedColor := ctl.boardColor
	if err := ctl.FromFEN(fen); err != nil {
		return err
	}
	for _, text := range moves {
		if _, err := ctl.MakeMove(text); err != nil {
			ctl.game = saved
			ctl.boardColor = savedColor
			return err
		}
	}
	return nil
}

// MakeMove plays a move given in coordinate or algebraic notation and
// returns it in coordinate notation.
func (ctl *Controller) MakeMove(text string) (string, error) {
	mv, err := board.FindMove(&ctl.game.board, text)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	ctl.game.play(mv)
	ctl.clock.syncControl(int(ctl.game.board.Fullmoveno))
	return mv.String(), nil
}

// Undo takes back the last move.
func (ctl *Controller) Undo() error {
	if !ctl.game.undo() {
		return ErrNoHistory
	}
	ctl.clock.syncControl(int(ctl.game.board.Fullmoveno))
	return nil
}

// Status is the state of the game in the current position.
func (ctl *Controller) Status() board.State {
	return board.Status(&ctl.game.board, ctl.game.hashes)
}

// FEN renders the current position.
func (ctl *Controller) FEN() string {
	return board.FEN(&ctl.game.board)
}

// Moves are the moves played since the start position, in coordinate
// notation.
func (ctl *Controller) Moves() []string {
	return append([]string(nil), ctl.game.moves...)
}

func (ctl *Controller) pgnGame() board.Game {
	return board.Game{StartFEN: ctl.game.startFEN, Moves: ctl.game.moves}
}

// MovesSAN renders the moves played in standard algebraic notation.
func (ctl *Controller) MovesSAN() ([]string, error) {
	return ctl.pgnGame().SANMoves()
}

// SavePGN writes the game as PGN.
func (ctl *Controller) SavePGN(w io.Writer) error {
	tags := map[string]string{
		"Event": "GooseEngine game",
		"White": "human",
		"Black": "human",
	}
	tags[ctl.figureColor.tag()] = "GooseEngine"
	if st := ctl.Status(); st.Over() {
		tags["Termination"] = st.String()
	}
	return ctl.pgnGame().WritePGN(w, tags)
}

// LoadPGN replaces the game by the main line of a PGN game.
func (ctl *Controller) LoadPGN(r io.Reader) error {
	g, err := board.ReadPGN(r)
	if err != nil {
		return err
	}
	if err := ctl.SetPosition(g.StartFEN, g.Moves); err != nil {
		return fmt.Errorf("load pgn: %w", err)
	}
	return nil
}

func (c Color) tag() string {
	if c == Black {
		return "Black"
	}
	return "White"
}
