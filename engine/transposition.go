package engine

import (
	"unsafe"

	"github.com/dylhunn/dragontoothmg"
)

const (
	// Flags
	AlphaFlag = iota
	BetaFlag
	ExactFlag

	// In MB
	DefaultTTSize = 256
	clusterSize   = 4
)

type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
	sizeMB       int
}

type TTEntry struct {
	Hash  uint64
	Score int32
	Move  dragontoothmg.Move
	Depth int8
	Flag  int8
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	tt := &TransTable{}
	tt.Resize(sizeMB)
	return tt
}

// Resize reallocates the table, dropping every entry. Sizes below 1 MB are
// treated as 1 MB.
func (TT *TransTable) Resize(sizeMB int) {
	if sizeMB < 1 {
		sizeMB = 1
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	TT.sizeMB = sizeMB
	TT.clusterCount = clusterCount
	TT.entries = make([]TTEntry, clusterCount*clusterSize)
}

func (TT *TransTable) SizeMB() int {
	return TT.sizeMB
}

func (TT *TransTable) Clear() {
	for i := range TT.entries {
		TT.entries[i] = TTEntry{}
	}
}

// useEntry decides whether a stored score can cut the search at this node.
func (TT *TransTable) useEntry(ttEntry *TTEntry, hash uint64, depth int8, alpha int32, beta int32, ply int) (usable bool, score int32) {
	if ttEntry == nil || ttEntry.Hash != hash || ttEntry.Depth < depth {
		return false, 0
	}
	norm := ttEntry.Score
	if norm > Checkmate {
		norm -= int32(ply)
	} else if norm < -Checkmate {
		norm += int32(ply)
	}
	switch ttEntry.Flag {
	case ExactFlag:
		return true, norm
	case AlphaFlag:
		if norm <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if norm >= beta {
			return true, beta
		}
	}
	return false, 0
}

func (TT *TransTable) getEntry(hash uint64) (entry *TTEntry, found bool) {
	if TT.clusterCount == 0 {
		return nil, false
	}

	start := int((hash % TT.clusterCount) * clusterSize)
	for i := 0; i < clusterSize; i++ {
		next := &TT.entries[start+i]
		if next.Hash == hash {
			return next, true
		}
	}
	return nil, false
}

// storeEntry prefers the slot already holding this position, then an empty
// slot, then the shallowest entry of the cluster.
func (TT *TransTable) storeEntry(hash uint64, depth int8, ply int, move dragontoothmg.Move, score int32, flag int8) {
	if TT.clusterCount == 0 {
		return
	}

	base := int((hash % TT.clusterCount) * clusterSize)

	// Mate scores are stored relative to this node
	if score > Checkmate {
		score += int32(ply)
	}
	if score < -Checkmate {
		score -= int32(ply)
	}

	targetIdx := -1
	for i := 0; i < clusterSize; i++ {
		if TT.entries[base+i].Hash == hash {
			targetIdx = base + i
			break
		}
	}
	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			if TT.entries[base+i].Hash == 0 {
				targetIdx = base + i
				break
			}
		}
	}
	if targetIdx == -1 {
		targetIdx = base
		minDepth := TT.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			if TT.entries[base+i].Depth < minDepth {
				minDepth = TT.entries[base+i].Depth
				targetIdx = base + i
			}
		}
	}

	entry := &TT.entries[targetIdx]
	if move == 0 && entry.Hash == hash {
		move = entry.Move
	}
	entry.Hash = hash
	entry.Depth = depth
	entry.Move = move
	entry.Flag = flag
	entry.Score = score
}
