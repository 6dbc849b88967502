package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0
)

// =============================================================================
// MARGINS
// =============================================================================
var FutilityMargins = [8]int32{0, 120, 220, 320, 420, 520, 620, 720}
var RFPMargins = [8]int32{0, 100, 200, 300, 400, 500, 600, 700}

var LMRDepthLimit int8 = 3
var LMRMoveLimit = 4
var DeltaMargin int32 = 200
var aspirationWindowSize int32 = 35

// Limits bound one search. Zero values mean "no limit" except Depth, where
// zero means MaxDepth.
type Limits struct {
	Depth  int
	Nodes  uint64
	Budget time.Duration
}

// Searcher owns everything a search needs between calls: the hash table,
// killer and history tables. It is not safe for concurrent use.
type Searcher struct {
	tt      *TransTable
	killers KillerStruct
	history [2][64][64]int
	states  stateStack
	timer   TimeHandler
	log     zerolog.Logger

	cb       Callbacks
	limits   Limits
	nodes    uint64
	selDepth int
	depth    int
	stopped  bool

	rootBest  dragontoothmg.Move
	rootScore int32
}

func NewSearcher(hashMB int, log zerolog.Logger) *Searcher {
	return &Searcher{
		tt:  NewTransTable(hashMB),
		log: log,
	}
}

// Resize changes the hash table size, clearing it.
func (s *Searcher) Resize(hashMB int) {
	if hashMB == s.tt.SizeMB() {
		return
	}
	s.tt.Resize(hashMB)
}

func (s *Searcher) HashMB() int {
	return s.tt.SizeMB()
}

// Clear forgets everything learnt in earlier searches, for a new game.
func (s *Searcher) Clear() {
	s.tt.Clear()
	s.killers.ClearKillers()
	s.clearHistoryTable()
}

// Search runs iterative deepening on a copy of b. history holds the hashes
// of the positions that led to b, oldest first, for repetition detection.
// cb is used for this call only and SendFinished is called exactly once.
func (s *Searcher) Search(b *dragontoothmg.Board, history []uint64, limits Limits, cb Callbacks) SearchResult {
	if cb == nil {
		cb = NopCallbacks{}
	}
	board := *b
	s.cb = cb
	s.limits = limits
	s.nodes = 0
	s.selDepth = 0
	s.depth = 0
	s.stopped = false
	s.rootBest = 0
	s.rootScore = 0
	s.killers.ClearKillers()
	s.states.reset(history, &board)
	s.timer.StartTime(limits.Budget)
	defer func() { s.cb = nil }()

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	result := s.rootsearch(&board, maxDepth)
	result.Elapsed = s.timer.Elapsed()
	result.Nodes = s.nodes
	result.Stopped = s.stopped

	s.log.Debug().
		Int("depth", result.Depth).
		Uint64("nodes", result.Nodes).
		Dur("elapsed", result.Elapsed).
		Bool("stopped", result.Stopped).
		Str("best", MoveString(result.BestMove)).
		Msg("search finished")

	cb.SendFinished(result)
	return result
}

func (s *Searcher) rootsearch(b *dragontoothmg.Board, maxDepth int) SearchResult {
	var result SearchResult

	legal := b.GenerateLegalMoves()
	if len(legal) == 0 {
		if b.OurKingInCheck() {
			result.Score = -MaxScore
		}
		return result
	}
	// Something to play even if the first iteration never completes
	result.BestMove = legal[0]
	result.PV[0] = legal[0]
	result.PVLen = 1

	var alpha int32 = -MaxScore
	var beta int32 = MaxScore
	var pvLine PVLine
	currentWindow := aspirationWindowSize

	for i := 1; i <= maxDepth; i++ {
		if i > 1 && s.timer.SoftTimeExceeded() && !s.timer.ShouldExtendTime() {
			break
		}

		s.depth = i
		s.rootBest = 0
		pvLine.Clear()
		score := s.alphabeta(b, alpha, beta, int8(i), 0, &pvLine, false)

		if s.stopped {
			// Without a finished iteration the partial root result is all we have
			if result.Depth == 0 && s.rootBest != 0 {
				result.BestMove = s.rootBest
				result.PV[0] = s.rootBest
				result.Score = s.rootScore
			}
			break
		}

		// Aspiration window re-search
		if score <= alpha || score >= beta {
			currentWindow *= 2
			if currentWindow > MaxScore {
				currentWindow = MaxScore
			}
			alpha = max(score-currentWindow, -MaxScore)
			beta = min(score+currentWindow, MaxScore)
			i--
			continue
		}

		currentWindow = aspirationWindowSize
		alpha = max(score-aspirationWindowSize, -MaxScore)
		beta = min(score+aspirationWindowSize, MaxScore)

		if len(pvLine.Moves) > 0 {
			result.setPV(pvLine)
		}
		result.Score = score
		result.Depth = i
		result.SelDepth = s.selDepth
		result.Nodes = s.nodes
		result.Elapsed = s.timer.Elapsed()
		s.timer.UpdateStability(score, result.BestMove)

		s.cb.SendOutput(result)

		if IsMateScore(score) && len(pvLine.Moves) > 0 {
			break
		}
	}
	return result
}

// poll runs every PollInterval nodes: it asks the controller whether to go
// on and enforces the node limit and the clock.
func (s *Searcher) poll() {
	if s.nodes%StatsInterval == 0 {
		s.cb.SendStats(SearchData{
			Depth:    s.depth,
			SelDepth: s.selDepth,
			Nodes:    s.nodes,
			Elapsed:  s.timer.Elapsed(),
		})
	}
	if !s.cb.QueryInput() {
		s.stopped = true
		return
	}
	if s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		s.stopped = true
		return
	}
	if s.timer.TimeStatus() {
		if s.timer.ShouldExtendTime() {
			if extra := s.cb.GiveMoreTime(); extra > 0 {
				s.timer.Extend(extra)
				return
			}
		}
		s.stopped = true
	}
}

func (s *Searcher) countNode(ply int) {
	s.nodes++
	if ply > s.selDepth {
		s.selDepth = ply
	}
	if s.nodes%PollInterval == 0 {
		s.poll()
	}
}

func (s *Searcher) applyMoveWithState(b *dragontoothmg.Board, move dragontoothmg.Move) func() {
	unapply := b.Apply(move)
	s.states.push(b)
	return func() {
		unapply()
		s.states.pop()
	}
}

func (s *Searcher) alphabeta(b *dragontoothmg.Board, alpha int32, beta int32, depth int8, ply int, pvLine *PVLine, isExtended bool) int32 {
	s.countNode(ply)

	if s.stopped {
		return 0
	}
	if ply >= MaxDepth {
		return Evaluation(b)
	}

	var childPVLine PVLine
	isPVNode := (beta - alpha) > 1
	isRoot := ply == 0
	rootIndex := len(s.states) - 1 - ply

	// Draw detection
	if !isRoot && s.states.isDraw(rootIndex) {
		return DrawScore
	}

	inCheck := b.OurKingInCheck()

	// Check extension
	if inCheck && !isExtended {
		depth++
		isExtended = true
	}

	if depth <= 0 {
		return s.quiescence(b, alpha, beta, ply)
	}

	posHash := b.Hash()

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	ttEntry, ttHit := s.tt.getEntry(posHash)
	var ttMove dragontoothmg.Move
	if ttHit {
		ttMove = ttEntry.Move
		if usable, ttScore := s.tt.useEntry(ttEntry, posHash, depth, alpha, beta, ply); usable && !isRoot && !isPVNode {
			return ttScore
		}
	}

	allMoves := b.GenerateLegalMoves()

	// Checkmate/stalemate check
	if len(allMoves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}

	staticScore := Evaluation(b)

	/*
		If our position is so good that even after giving a margin to the opponent,
		we still beat beta, we can safely prune.
	*/
	if !inCheck && !isPVNode && !isRoot && depth <= 7 && abs32(beta) < Checkmate {
		if staticScore-RFPMargins[depth] >= beta {
			return staticScore - RFPMargins[depth]
		}
	}

	var bestScore int32 = -MaxScore
	var bestMove dragontoothmg.Move
	var ttFlag int8 = AlphaFlag
	moveList := s.scoreMoves(b, allMoves, ply, ttMove)
	legalMoves := 0

	for index := 0; index < len(moveList.moves); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move

		isCapture := dragontoothmg.IsCapture(move, b)
		tactical := isCapture || move.Promote() != 0
		legalMoves++

		/*
			At shallow depths, if static eval + margin can't beat alpha, prune quiet moves.
		*/
		if !isPVNode && !isRoot && !inCheck && !tactical && depth <= 7 && legalMoves > 1 && abs32(alpha) < Checkmate {
			if staticScore+FutilityMargins[depth] <= alpha {
				continue
			}
		}

		unapplyFunc := s.applyMoveWithState(b, move)
		givesCheck := b.OurKingInCheck()

		var score int32
		if legalMoves == 1 {
			score = -s.alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPVLine, isExtended)
		} else {
			/*
				LATE MOVE REDUCTIONS
			*/
			var reduct int8
			if depth >= LMRDepthLimit && legalMoves >= LMRMoveLimit && !tactical && !givesCheck && !inCheck && !s.killers.IsKiller(move, ply) {
				reduct = LMR[min(int(depth), MaxDepth)][min(legalMoves, 99)]
				if isPVNode && reduct > 0 {
					reduct--
				}
			}
			score = s.searchMoveWithPVS(b, depth-1, reduct, alpha, beta, ply, isExtended, &childPVLine)
		}

		unapplyFunc()

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		// Beta cutoff
		if score >= beta {
			ttFlag = BetaFlag
			if !isCapture {
				s.killers.InsertKiller(move, ply)
				s.incrementHistoryScore(b.Wtomove, move, depth)
			}
			break
		}

		// Alpha improvement
		if score > alpha {
			alpha = score
			ttFlag = ExactFlag
			pvLine.Update(move, childPVLine)
			if isRoot {
				s.rootBest = move
				s.rootScore = score
			}
		}
		childPVLine.Clear()
	}

	s.tt.storeEntry(posHash, depth, ply, bestMove, bestScore, ttFlag)
	return bestScore
}

// searchMoveWithPVS performs a Principal Variation Search for a move
// This implements the standard PVS 3-stage pattern:
// 1. Search with reduced depth using null window
// 2. If reduction was applied and score > alpha, re-search at full depth with null window
// 3. If score is between alpha and beta, do a full window search
func (s *Searcher) searchMoveWithPVS(b *dragontoothmg.Board, baseDepth int8, reduction int8,
	alpha int32, beta int32, ply int, isExtended bool, childPVLine *PVLine) int32 {

	score := -s.alphabeta(b, -(alpha + 1), -alpha, baseDepth-reduction, ply+1, childPVLine, isExtended)

	if score > alpha && reduction > 0 {
		score = -s.alphabeta(b, -(alpha + 1), -alpha, baseDepth, ply+1, childPVLine, isExtended)
	}

	if score > alpha && score < beta {
		score = -s.alphabeta(b, -beta, -alpha, baseDepth, ply+1, childPVLine, isExtended)
	}

	return score
}

func (s *Searcher) quiescence(b *dragontoothmg.Board, alpha int32, beta int32, ply int) int32 {
	s.countNode(ply)

	if s.stopped {
		return 0
	}
	if ply >= MaxDepth {
		return Evaluation(b)
	}

	inCheck := b.OurKingInCheck()
	standpat := Evaluation(b)

	// Stand-pat pruning (not when in check)
	var bestScore int32
	if inCheck {
		bestScore = -MaxScore + int32(ply) // Must escape check
	} else {
		if standpat >= beta {
			return standpat
		}
		if standpat > alpha {
			alpha = standpat
		}
		bestScore = standpat
	}

	// Generate moves: all moves when in check, only captures otherwise
	moves := b.GenerateLegalMoves()
	if !inCheck {
		moves = captures(b, moves)
	}
	moveList := s.scoreMoves(b, moves, ply, 0)
	_, opp := sides(b)

	for index := 0; index < len(moveList.moves); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move

		/*
			DELTA PRUNING
			If the capture + a margin still can't beat alpha, skip it.
		*/
		if !inCheck && move.Promote() == 0 {
			victim, ok := GetPieceTypeAtPosition(move.To(), opp)
			if !ok {
				victim = dragontoothmg.Pawn
			}
			if standpat+int32(pieceValueMG[victim])+DeltaMargin < alpha {
				continue
			}
		}

		unapplyFunc := s.applyMoveWithState(b, move)
		score := -s.quiescence(b, -beta, -alpha, ply+1)
		unapplyFunc()

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return bestScore
}
