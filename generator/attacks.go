// Package generator implements pseudo-legal and legal move generation,
// plus square-attack detection, for a board.Position. It is the board
// collaborator the search kernel treats as a black box (spec §1);
// unlike the kernel, nothing here needs to be fast enough to matter, only
// correct, so sliding-piece attacks are computed by classical ray-casting
// rather than magic bitboards.
package generator

import "rookwood/board"

var (
	knightAttacks [64]board.Bitboard
	kingAttacks   [64]board.Bitboard
	pawnAttacks   [2][64]board.Bitboard
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

func init() {
	for sq := 0; sq < 64; sq++ {
		file, rank := sq&7, sq>>3
		for _, d := range knightDeltas {
			f, r := file+d[0], rank+d[1]
			if onBoard(f, r) {
				knightAttacks[sq].SetBit(r*8 + f)
			}
		}
		for _, d := range kingDeltas {
			f, r := file+d[0], rank+d[1]
			if onBoard(f, r) {
				kingAttacks[sq].SetBit(r*8 + f)
			}
		}
		if onBoard(file-1, rank+1) {
			pawnAttacks[board.White][sq].SetBit((rank+1)*8 + file - 1)
		}
		if onBoard(file+1, rank+1) {
			pawnAttacks[board.White][sq].SetBit((rank+1)*8 + file + 1)
		}
		if onBoard(file-1, rank-1) {
			pawnAttacks[board.Black][sq].SetBit((rank-1)*8 + file - 1)
		}
		if onBoard(file+1, rank-1) {
			pawnAttacks[board.Black][sq].SetBit((rank-1)*8 + file + 1)
		}
	}
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func slidingAttacks(sq int, occupied board.Bitboard, dirs [4][2]int) board.Bitboard {
	var attacks board.Bitboard
	file, rank := sq&7, sq>>3
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			target := r*8 + f
			attacks.SetBit(target)
			if occupied.IsBitSet(target) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

func rookAttacks(sq int, occupied board.Bitboard) board.Bitboard {
	return slidingAttacks(sq, occupied, rookDirs)
}

func bishopAttacks(sq int, occupied board.Bitboard) board.Bitboard {
	return slidingAttacks(sq, occupied, bishopDirs)
}

func queenAttacks(sq int, occupied board.Bitboard) board.Bitboard {
	return rookAttacks(sq, occupied) | bishopAttacks(sq, occupied)
}

// IsSquareAttacked reports whether sq is attacked by any piece of by.
func IsSquareAttacked(pos *board.Position, sq int, by board.Color) bool {
	p := &pos.Pieces[by]
	if knightAttacks[sq]&p[board.Knight.Index()] != 0 {
		return true
	}
	if kingAttacks[sq]&p[board.King.Index()] != 0 {
		return true
	}
	// A pawn of `by` attacks sq iff sq is one of the squares `by`'s pawns
	// attack from; equivalently, sq is attacked by `by` along the same
	// deltas a defending pawn on sq would use to capture toward `by`.
	if pawnAttacks[by.Other()][sq]&p[board.Pawn.Index()] != 0 {
		return true
	}
	if rookAttacks(sq, pos.All)&(p[board.Rook.Index()]|p[board.Queen.Index()]) != 0 {
		return true
	}
	if bishopAttacks(sq, pos.All)&(p[board.Bishop.Index()]|p[board.Queen.Index()]) != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether side's king is currently attacked.
func IsInCheck(pos *board.Position, side board.Color) bool {
	kingBB := pos.Pieces[side][board.King.Index()]
	if kingBB == 0 {
		return false
	}
	return IsSquareAttacked(pos, kingBB.LSB(), side.Other())
}
