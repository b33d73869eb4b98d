package board

import "math/rand"

// Zobrist hashing keys. XOR is its own inverse, so make/unmake can update
// the hash incrementally: the same key that added a feature removes it.
var (
	zobristPiece     [2][6][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// Fixed seed: the hash only needs to be stable within one process, and a
	// fixed seed makes test fixtures reproducible across runs.
	rng := rand.New(rand.NewSource(0x5a6f6272697374))
	for color := 0; color < 2; color++ {
		for piece := 0; piece < 6; piece++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[color][piece][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// ComputeHash computes the Zobrist hash for pos from scratch. Used when
// loading a position from FEN; make/unmake maintain the hash incrementally
// from there.
func (pos *Position) ComputeHash() uint64 {
	var h uint64
	for color := White; color <= Black; color++ {
		for idx := 0; idx < 6; idx++ {
			bb := pos.Pieces[color][idx]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= zobristPiece[color][idx][sq]
			}
		}
	}
	h ^= zobristCastle[pos.Castle]
	if pos.EnPassant != 0 {
		h ^= zobristEnPassant[pos.EnPassant.LSB()&7]
	}
	if pos.SideToMove == Black {
		h ^= zobristSide
	}
	return h
}

func hashPiece(color Color, piece Piece, sq int) uint64 {
	return zobristPiece[color][piece.Index()][sq]
}
