package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

const fiftyMoveLimit = 100

// State captures the information we need to reason about repetitions and draws.
type State struct {
	Hash   uint64
	Rule50 int
}

type stateStack []State

// reset rebuilds the stack from the game history, oldest first, followed by
// the current board. Only the top entry's Rule50 bounds the repetition
// scan, so history entries carry none.
func (st *stateStack) reset(history []uint64, board *dragontoothmg.Board) {
	*st = (*st)[:0]
	for _, h := range history {
		*st = append(*st, State{Hash: h})
	}
	if n := len(*st); n > 0 && (*st)[n-1].Hash == board.Hash() {
		*st = (*st)[:n-1]
	}
	st.push(board)
}

func (st *stateStack) push(board *dragontoothmg.Board) {
	*st = append(*st, State{
		Hash:   board.Hash(),
		Rule50: int(board.Halfmoveclock),
	})
}

func (st *stateStack) pop() {
	if len(*st) == 0 {
		return
	}
	*st = (*st)[:len(*st)-1]
}

// isDraw reports a fifty-move draw, a threefold repetition, or a single
// repetition of a position first seen inside the search tree.
func (st stateStack) isDraw(rootIndex int) bool {
	if len(st) == 0 {
		return false
	}
	curr := st[len(st)-1]
	if curr.Rule50 >= fiftyMoveLimit {
		return true
	}

	matchCount, firstIdx := st.repetitionInfo(curr.Hash, curr.Rule50)
	if matchCount >= 2 {
		return true
	}
	return matchCount >= 1 && firstIdx >= rootIndex
}

func (st stateStack) repetitionInfo(hash uint64, rule50 int) (count int, firstIdx int) {
	firstIdx = -1
	if len(st) <= 1 {
		return 0, firstIdx
	}
	start := len(st) - 1 - rule50
	if start < 0 {
		start = 0
	}
	for i := start; i <= len(st)-2; i++ {
		if st[i].Hash == hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
