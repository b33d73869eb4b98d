package engine

import (
	"rookwood/board"
	"rookwood/generator"
)

const (
	infinity          = 1000000
	nullMoveReduction = 2
	deltaMargin       = 100
	maxSearchDepth    = 128
)

// normalizeMateScore converts a "current ply" mate score to the TT's
// ply-independent absolute form (I3).
func normalizeMateScore(score, ply int) int {
	switch {
	case score > 90000:
		return score + ply
	case score < -90000:
		return score - ply
	default:
		return score
	}
}

// denormalizeMateScore reverses normalizeMateScore when a TT entry is read
// back at the current ply.
func denormalizeMateScore(score, ply int) int {
	switch {
	case score > 90000:
		return score - ply
	case score < -90000:
		return score + ply
	default:
		return score
	}
}

// minimax is the classical fail-hard alpha-beta search of spec §4.5:
// side-to-move-aware (White maximizes, Black minimizes), not negamax.
func (s *Session) minimax(pos *board.Position, depth, alpha, beta, ply int, ctx *SearchContext) int {
	ctx.nodes++
	if ctx.nodes&2047 == 0 && ctx.checkTimeout() {
		return 0
	}

	if pos.IsRepetitionDraw() || pos.IsFiftyMoveDraw() {
		return 0
	}

	inCheck := generator.IsInCheck(pos, pos.SideToMove)
	white := pos.SideToMove == board.White

	moves := generator.GenerateLegalMoves(pos)
	if len(moves) == 0 {
		return Evaluate(pos, 0, inCheck, ply)
	}
	if pos.IsInsufficientMaterial() {
		return 0
	}

	if depth == 0 {
		return s.quiescence(pos, alpha, beta, ply, ctx)
	}

	alphaOrig, betaOrig := alpha, beta
	hash := pos.Hash

	var ttMove board.Move
	if entry, ok := s.TT.Probe(hash); ok {
		s.ttHits++
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			adj := denormalizeMateScore(int(entry.Score), ply)
			switch entry.Flag {
			case TTFlagExact:
				return adj
			case TTFlagLower:
				if adj > alpha {
					alpha = adj
				}
			case TTFlagUpper:
				if adj < beta {
					beta = adj
				}
			}
			if alpha >= beta {
				s.ttCutoffs++
				if white {
					return alpha
				}
				return beta
			}
		}
	} else {
		s.ttMisses++
	}

	if depth >= 3 && !inCheck && ply > 0 && pos.HasNonPawnMaterial(pos.SideToMove) {
		undo := pos.MakeNullMove()
		nullScore := s.minimax(pos, depth-1-nullMoveReduction, alpha, beta, ply+1, ctx)
		pos.UnmakeNullMove(undo)
		if ctx.stopped.Load() {
			return 0
		}
		if white {
			if nullScore >= beta {
				return beta
			}
		} else {
			if nullScore <= alpha {
				return alpha
			}
		}
	}

	orderMoves(moves, ttMove, ply, &s.killers, &s.history)

	var bestMove board.Move
	var bestScore int
	if white {
		bestScore = -infinity
	} else {
		bestScore = infinity
	}

	for _, m := range moves {
		if ctx.stopped.Load() {
			if bestMove.IsNone() {
				bestMove = moves[0]
			}
			break
		}

		isQuiet := m.IsQuiet()

		undo := pos.MakeMove(m)
		pos.PushHistory()
		score := s.minimax(pos, depth-1, alpha, beta, ply+1, ctx)
		pos.PopHistory()
		pos.UnmakeMove(m, undo)

		if ctx.stopped.Load() {
			break
		}

		if white {
			if bestMove.IsNone() || score > bestScore {
				bestScore = score
				bestMove = m
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if bestMove.IsNone() || score < bestScore {
				bestScore = score
				bestMove = m
			}
			if score < beta {
				beta = score
			}
		}

		if alpha >= beta {
			s.abCutoffs++
			if isQuiet {
				s.updateHistory(m, depth)
				s.storeKiller(ply, m)
			}
			break
		}
	}

	if ctx.stopped.Load() {
		return 0
	}

	var flag TTFlag
	switch {
	case bestScore <= alphaOrig:
		flag = TTFlagUpper
	case bestScore >= betaOrig:
		flag = TTFlagLower
	default:
		flag = TTFlagExact
	}
	s.TT.Store(hash, int32(normalizeMateScore(bestScore, ply)), int8(depth), flag, bestMove)

	return bestScore
}

// quiescence is the depth-unlimited tactical extension of spec §4.4.
func (s *Session) quiescence(pos *board.Position, alpha, beta, ply int, ctx *SearchContext) int {
	ctx.nodes++
	ctx.qnodes++
	if ctx.nodes&2047 == 0 && ctx.checkTimeout() {
		return 0
	}

	inCheck := generator.IsInCheck(pos, pos.SideToMove)
	white := pos.SideToMove == board.White

	if pos.IsFiftyMoveDraw() || pos.IsInsufficientMaterial() || pos.IsRepetitionDraw() {
		return 0
	}

	standPat := evaluateMaterial(pos)

	// In check: all legal evasions must be searched, never just captures —
	// a capture-only filter here would miss forced mates (spec §4.4).
	var searchMoves []board.Move
	if inCheck {
		searchMoves = generator.GenerateLegalMoves(pos)
		if len(searchMoves) == 0 {
			return Evaluate(pos, 0, inCheck, ply)
		}
	} else {
		if len(generator.GenerateLegalMoves(pos)) == 0 {
			return Evaluate(pos, 0, false, ply)
		}
		if white {
			if standPat >= beta {
				return beta
			}
			if standPat > alpha {
				alpha = standPat
			}
		} else {
			if standPat <= alpha {
				return alpha
			}
			if standPat < beta {
				beta = standPat
			}
		}
		searchMoves = generator.GenerateLegalCaptures(pos)
		if len(searchMoves) == 0 {
			return standPat
		}
	}

	phase := pos.Phase()
	orderMoves(searchMoves, board.NoMove, ply, nil, nil)

	for _, m := range searchMoves {
		if !inCheck && phase > 4 && m.Promotion == board.Empty && m.IsCapture() {
			victim := 100
			if m.Type != board.EnPassant {
				victim = mgMaterial[m.Captured.Index()]
			}
			if white {
				if standPat+victim+deltaMargin < alpha {
					continue
				}
			} else {
				if standPat-victim-deltaMargin > beta {
					continue
				}
			}
		}

		undo := pos.MakeMove(m)
		pos.PushHistory()
		score := s.quiescence(pos, alpha, beta, ply+1, ctx)
		pos.PopHistory()
		pos.UnmakeMove(m, undo)

		if ctx.stopped.Load() {
			return 0
		}

		if white {
			if score > alpha {
				alpha = score
			}
		} else {
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			break
		}
	}

	if white {
		return alpha
	}
	return beta
}
