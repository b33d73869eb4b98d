package engine

import (
	"fmt"
	"time"

	"rookwood/board"
	"rookwood/generator"
)

// Session owns every piece of mutable state a search touches: the
// transposition table, killer/history tables, and running counters (spec §3
// Killer/History/Search-Statistics). The UCI dispatcher keeps one Session
// for its whole lifetime; `ucinewgame` resets it with Clear.
type Session struct {
	TT          *TranspositionTable
	debugLogger *Logger
	goParams    string // set by the UCI layer before Search, logged verbatim

	killers [maxSearchDepth][2]board.Move
	history [64][64]int

	ttHits, ttMisses, ttCutoffs, abCutoffs int64
}

// NewSession creates a session with its own transposition table sized to
// hashSizeMB megabytes.
func NewSession(hashSizeMB int) *Session {
	return &Session{TT: NewTranspositionTable(hashSizeMB)}
}

// Clear resets the TT and killer/history tables, as UCI `ucinewgame` requires.
func (s *Session) Clear() {
	s.TT.Clear()
	s.clearKillers()
	s.clearHistory()
}

// ResizeTT replaces the transposition table with one of the requested size,
// mirroring a `setoption name Hash value <MB>` UCI command.
func (s *Session) ResizeTT(sizeMB int) {
	s.TT = NewTranspositionTable(sizeMB)
}

// SetDebugLogger attaches an optional move-by-move diagnostic logger.
func (s *Session) SetDebugLogger(l *Logger) {
	s.debugLogger = l
}

// SetGoParams records a summary of the UCI `go` command's time-control
// parameters (spec §6) so it can be attached to the log entry that the
// resulting search produces.
func (s *Session) SetGoParams(params string) {
	s.goParams = params
}

// LogGameStart forwards to the attached debug logger, if any, recording the
// start of a new game (UCI `ucinewgame`). A no-op when no logger is set.
func (s *Session) LogGameStart(params string) {
	if s.debugLogger == nil {
		return
	}
	s.debugLogger.LogGameStart(params)
}

func (s *Session) clearKillers() {
	for i := range s.killers {
		s.killers[i][0] = board.NoMove
		s.killers[i][1] = board.NoMove
	}
}

func (s *Session) clearHistory() {
	for i := range s.history {
		for j := range s.history[i] {
			s.history[i][j] = 0
		}
	}
}

func (s *Session) resetStats() {
	s.ttHits, s.ttMisses, s.ttCutoffs, s.abCutoffs = 0, 0, 0, 0
}

// updateHistory implements I4's confinement (callers only invoke this for
// quiet moves) and the depth² weighting of spec §4.5.
func (s *Session) updateHistory(m board.Move, depth int) {
	s.history[m.From][m.To] += depth * depth
}

// storeKiller records m as a killer at ply, shifting the existing first
// killer down unless m is already in that slot.
func (s *Session) storeKiller(ply int, m board.Move) {
	if ply >= maxSearchDepth {
		return
	}
	if s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// SearchResult is the outcome of one iterative-deepening search.
type SearchResult struct {
	Move  board.Move
	Score int
	Depth int
	Nodes int64
	Time  time.Duration
}

// Search runs the iterative deepening driver of spec §4.6: aspiration
// windows per iteration, a fallback full-width re-search on failure, and a
// cooperative time/depth budget. timeLimit <= 0 means depth-limited only.
func (s *Session) Search(pos *board.Position, maxDepth int, timeLimit time.Duration) SearchResult {
	s.clearKillers()
	s.clearHistory()
	s.resetStats()

	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}

	ctx := NewSearchContext(timeLimit)
	rootHash := pos.Hash

	var result SearchResult
	var prevScore int

	for depth := 1; depth <= maxDepth; depth++ {
		if ctx.stopped.Load() {
			break
		}

		alpha, beta := -100000, 100000
		if depth >= 2 && prevScore != 0 {
			alpha, beta = prevScore-50, prevScore+50
		}

		score := s.minimax(pos, depth, alpha, beta, 0, ctx)
		if !ctx.stopped.Load() && (score <= alpha || score >= beta) {
			score = s.minimax(pos, depth, -100000, 100000, 0, ctx)
		}

		if ctx.stopped.Load() {
			break
		}

		prevScore = score
		if entry, ok := s.TT.Probe(rootHash); ok && !entry.BestMove.IsNone() {
			result = SearchResult{
				Move:  entry.BestMove,
				Score: score,
				Depth: depth,
				Nodes: ctx.nodes,
				Time:  ctx.Elapsed(),
			}
		}

		s.emitInfo(depth, score, result.Move, ctx)

		if s.debugLogger != nil {
			s.debugLogger.Log(LogInfo{
				Timestamp: time.Now(),
				FEN:       pos.ToFEN(),
				Move:      result.Move.ToUCI(),
				Piece:     result.Move.Piece.Name(),
				Score:     fmt.Sprintf("%+d", score),
				Depth:     depth,
				Nodes:     ctx.nodes,
				Duration:  ctx.Elapsed(),
				GoParams:  s.goParams,
			})
		}

		if score > mateScore-1000 || score < -mateScore+1000 {
			break
		}
	}

	if result.Move.IsNone() {
		if legal := generator.GenerateLegalMoves(pos); len(legal) > 0 {
			result.Move = legal[0]
		}
	}

	return result
}

// emitInfo writes one UCI `info` progress line per completed iteration
// (spec §6): the required depth/score/nodes/time/nps/pv fields, followed by
// the diagnostic counters the protocol also asks for.
func (s *Session) emitInfo(depth, score int, pv board.Move, ctx *SearchContext) {
	timeMs := ctx.Elapsed().Milliseconds()
	if timeMs == 0 {
		timeMs = 1
	}
	nps := ctx.nodes * 1000 / timeMs

	hitRate := 0
	if s.ttHits+s.ttMisses > 0 {
		hitRate = int(s.ttHits * 100 / (s.ttHits + s.ttMisses))
	}
	qPercent := 0
	if ctx.nodes > 0 {
		qPercent = int(ctx.qnodes * 100 / ctx.nodes)
	}

	fmt.Printf("info depth %d score cp %d nodes %d time %d nps %d pv %s tthits %d ttmisses %d hitrate %d%% ttcutoffs %d abcutoffs %d qnodes %d qpercent %d%%\n",
		depth, score, ctx.nodes, timeMs, nps, pv.ToUCI(), s.ttHits, s.ttMisses, hitRate, s.ttCutoffs, s.abCutoffs, ctx.qnodes, qPercent)
}
