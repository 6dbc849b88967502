package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

type move struct {
	move  dragontoothmg.Move
	score uint16
}

type moveList struct {
	moves []move
}

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva [7][7]uint16 = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

// Score offset, used so moves scored via our history map doesn't reach above our mvv-lva moves
var scoreOffset uint16 = 20000

func GetPieceTypeAtPosition(position uint8, bitboards *dragontoothmg.Bitboards) (pieceType dragontoothmg.Piece, occupied bool) {
	if bitboards.Pawns&(1<<position) > 0 {
		return dragontoothmg.Pawn, true
	} else if bitboards.Knights&(1<<position) > 0 {
		return dragontoothmg.Knight, true
	} else if bitboards.Bishops&(1<<position) > 0 {
		return dragontoothmg.Bishop, true
	} else if bitboards.Rooks&(1<<position) > 0 {
		return dragontoothmg.Rook, true
	} else if bitboards.Queens&(1<<position) > 0 {
		return dragontoothmg.Queen, true
	} else if bitboards.Kings&(1<<position) > 0 {
		return dragontoothmg.King, true
	}
	return 0, false
}

func sides(board *dragontoothmg.Board) (own, opp *dragontoothmg.Bitboards) {
	if board.Wtomove {
		return &board.White, &board.Black
	}
	return &board.Black, &board.White
}

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMoves orders the hash move first, then promotions and captures by
// MVV-LVA, then killers, then quiet moves by history.
func (s *Searcher) scoreMoves(board *dragontoothmg.Board, moves []dragontoothmg.Move, ply int, pvMove dragontoothmg.Move) (movesList moveList) {
	own, opp := sides(board)
	side := sideIndex(board.Wtomove)

	movesList.moves = make([]move, len(moves))
	for i := 0; i < len(moves); i++ {
		mv := moves[i]
		var moveEval uint16
		promotePiece := mv.Promote()

		switch {
		case mv == pvMove && pvMove != 0:
			moveEval = scoreOffset + 1000
		case promotePiece != 0:
			moveEval = scoreOffset + 100 + uint16(promotePiece)
		case dragontoothmg.IsCapture(mv, board):
			pieceTypeFrom, _ := GetPieceTypeAtPosition(mv.From(), own)
			enemyPiece, ok := GetPieceTypeAtPosition(mv.To(), opp)
			if !ok {
				enemyPiece = dragontoothmg.Pawn // en passant
			}
			moveEval = scoreOffset + mvvLva[enemyPiece][pieceTypeFrom]
		case s.killers.IsKiller(mv, ply):
			moveEval = scoreOffset
		default:
			moveEval = uint16(s.history[side][mv.From()][mv.To()])
		}
		movesList.moves[i] = move{move: mv, score: moveEval}
	}

	return movesList
}

// captures keeps the captures and promotions of a legal move list.
func captures(board *dragontoothmg.Board, moves []dragontoothmg.Move) []dragontoothmg.Move {
	out := moves[:0]
	for _, mv := range moves {
		if mv.Promote() != 0 || dragontoothmg.IsCapture(mv, board) {
			out = append(out, mv)
		}
	}
	return out
}
