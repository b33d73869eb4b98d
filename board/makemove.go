package board

// UndoInfo carries everything MakeMove destroys that UnmakeMove needs back:
// the position fields that aren't otherwise recoverable from the Move
// itself. Every MakeMove must be paired with exactly one UnmakeMove(m, undo)
// on every exit path, including early returns under time pressure (I1).
type UndoInfo struct {
	Castle        uint8
	EnPassant     Bitboard
	HalfmoveClock int
	Hash          uint64
}

// rookCastleSquares maps a castling king destination square to the rook's
// (from, to) squares.
var rookCastleSquares = map[int][2]int{
	6:  {7, 5},   // white kingside
	2:  {0, 3},   // white queenside
	62: {63, 61}, // black kingside
	58: {56, 59}, // black queenside
}

// MakeMove applies m to pos in place, maintaining the Zobrist hash
// incrementally, and returns the information needed to undo it.
func (pos *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Castle:        pos.Castle,
		EnPassant:     pos.EnPassant,
		HalfmoveClock: pos.HalfmoveClock,
		Hash:          pos.Hash,
	}

	us := pos.SideToMove
	them := us.Other()

	pos.remove(us, m.Piece, m.From)
	pos.Hash ^= hashPiece(us, m.Piece, m.From)

	if m.Captured != Empty {
		if m.Type == EnPassant {
			capSq := m.To - 8
			if us == Black {
				capSq = m.To + 8
			}
			pos.remove(them, Pawn, capSq)
			pos.Hash ^= hashPiece(them, Pawn, capSq)
		} else {
			pos.remove(them, m.Captured, m.To)
			pos.Hash ^= hashPiece(them, m.Captured, m.To)
		}
	}

	placed := m.Piece
	if m.Promotion != Empty {
		placed = m.Promotion
	}
	pos.put(us, placed, m.To)
	pos.Hash ^= hashPiece(us, placed, m.To)

	if m.Type == Castling {
		rook := rookCastleSquares[m.To]
		pos.remove(us, Rook, rook[0])
		pos.Hash ^= hashPiece(us, Rook, rook[0])
		pos.put(us, Rook, rook[1])
		pos.Hash ^= hashPiece(us, Rook, rook[1])
	}

	pos.Hash ^= zobristCastle[pos.Castle]
	pos.Castle &^= castleRightsLost(m.From) | castleRightsLost(m.To)
	pos.Hash ^= zobristCastle[pos.Castle]

	if pos.EnPassant != 0 {
		pos.Hash ^= zobristEnPassant[pos.EnPassant.LSB()&7]
	}
	pos.EnPassant = 0
	if m.Piece == Pawn {
		diff := m.To - m.From
		if diff == 16 {
			pos.EnPassant = IndexToBitboard(m.From + 8)
		} else if diff == -16 {
			pos.EnPassant = IndexToBitboard(m.From - 8)
		}
	}
	if pos.EnPassant != 0 {
		pos.Hash ^= zobristEnPassant[pos.EnPassant.LSB()&7]
	}

	if m.Piece == Pawn || m.Captured != Empty {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}
	if us == Black {
		pos.FullMove++
	}

	pos.SideToMove = them
	pos.Hash ^= zobristSide

	return undo
}

// UnmakeMove reverses m using the UndoInfo from the matching MakeMove.
func (pos *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := pos.SideToMove
	us := them.Other()
	pos.SideToMove = us
	if us == Black {
		pos.FullMove--
	}

	if m.Type == Castling {
		rook := rookCastleSquares[m.To]
		pos.remove(us, Rook, rook[1])
		pos.put(us, Rook, rook[0])
	}

	placed := m.Piece
	if m.Promotion != Empty {
		placed = m.Promotion
	}
	pos.remove(us, placed, m.To)
	pos.put(us, m.Piece, m.From)

	if m.Captured != Empty {
		if m.Type == EnPassant {
			capSq := m.To - 8
			if us == Black {
				capSq = m.To + 8
			}
			pos.put(them, Pawn, capSq)
		} else {
			pos.put(them, m.Captured, m.To)
		}
	}

	pos.Castle = undo.Castle
	pos.EnPassant = undo.EnPassant
	pos.HalfmoveClock = undo.HalfmoveClock
	pos.Hash = undo.Hash
}

// NullUndoInfo carries the state MakeNullMove destroys.
type NullUndoInfo struct {
	EnPassant Bitboard
	Hash      uint64
}

// MakeNullMove passes the turn without moving a piece — used only by
// null-move pruning (spec §4.5). It flips side to move and clears the
// en-passant square, which is all a null move changes.
func (pos *Position) MakeNullMove() NullUndoInfo {
	undo := NullUndoInfo{EnPassant: pos.EnPassant, Hash: pos.Hash}
	if pos.EnPassant != 0 {
		pos.Hash ^= zobristEnPassant[pos.EnPassant.LSB()&7]
	}
	pos.EnPassant = 0
	pos.SideToMove = pos.SideToMove.Other()
	pos.Hash ^= zobristSide
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (pos *Position) UnmakeNullMove(undo NullUndoInfo) {
	pos.SideToMove = pos.SideToMove.Other()
	pos.EnPassant = undo.EnPassant
	pos.Hash = undo.Hash
}

// castleRightsLost returns the castling-rights bits forfeited by a move
// touching sq (as a king's origin, a rook's origin, or a rook's capture
// square on a1/h1/a8/h8).
func castleRightsLost(sq int) uint8 {
	switch sq {
	case 4:
		return CastleWhiteKingside | CastleWhiteQueenside
	case 60:
		return CastleBlackKingside | CastleBlackQueenside
	case 0:
		return CastleWhiteQueenside
	case 7:
		return CastleWhiteKingside
	case 56:
		return CastleBlackQueenside
	case 63:
		return CastleBlackKingside
	default:
		return 0
	}
}
