package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// KillerStruct keeps two quiet moves per ply that caused a beta cutoff.
type KillerStruct struct {
	KillerMoves [MaxDepth + 1][2]dragontoothmg.Move
}

func (k *KillerStruct) InsertKiller(move dragontoothmg.Move, ply int) {
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

func (k *KillerStruct) IsKiller(move dragontoothmg.Move, ply int) bool {
	return move != 0 && (k.KillerMoves[ply][0] == move || k.KillerMoves[ply][1] == move)
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for depth := 0; depth < MaxDepth+1; depth++ {
		k.KillerMoves[depth][0] = 0
		k.KillerMoves[depth][1] = 0
	}
}
