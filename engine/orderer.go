package engine

import "rookwood/board"

// Move-ordering category scores (spec §4.2). The TT move is handled by the
// caller (prepended before these scores are even consulted); everything
// below orders the remainder.
const (
	promotionScore = 2000000
	captureBase    = 1000000
	firstKiller    = 900000
	secondKiller   = 800000
)

// scoreMove returns an orderer score for m at the given ply. killers and
// history come from the owning Session; a nil killers/history pair (as used
// by quiescence, which has no killer/history concept) falls through to the
// capture/promotion/zero cases only.
func scoreMove(m board.Move, ply int, killers *[maxSearchDepth][2]board.Move, history *[64][64]int) int {
	if m.Promotion != board.Empty {
		return promotionScore
	}
	if m.IsCapture() {
		victim := 100
		if m.Type != board.EnPassant {
			victim = mgMaterial[m.Captured.Index()]
		}
		attacker := mgMaterial[m.Piece.Index()]
		return captureBase + 10*victim - attacker
	}
	if killers != nil && ply < maxSearchDepth {
		k := killers[ply]
		if m == k[0] {
			return firstKiller
		}
		if m == k[1] {
			return secondKiller
		}
	}
	if history != nil {
		return history[m.From][m.To]
	}
	return 0
}

// orderMoves sorts moves in place for best-first traversal: ttMove (if
// present among them) first, everything else by descending scoreMove,
// ties broken by original generation order (the stable insertionSortByScore)
// per the determinism design note.
func orderMoves(moves []board.Move, ttMove board.Move, ply int, killers *[maxSearchDepth][2]board.Move, history *[64][64]int) {
	start := 0
	if !ttMove.IsNone() {
		for i, m := range moves {
			if m == ttMove {
				copy(moves[1:i+1], moves[:i])
				moves[0] = ttMove
				start = 1
				break
			}
		}
	}
	rest := moves[start:]
	insertionSortByScore(rest, ply, killers, history)
}

// insertionSortByScore sorts by descending scoreMove. Insertion sort is
// stable and, for the short move lists chess positions produce (rarely
// above ~40), cheaper than invoking a general-purpose sort.
func insertionSortByScore(moves []board.Move, ply int, killers *[maxSearchDepth][2]board.Move, history *[64][64]int) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = scoreMove(m, ply, killers, history)
	}
	for i := 1; i < len(moves); i++ {
		m, sc := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = sc
	}
}
