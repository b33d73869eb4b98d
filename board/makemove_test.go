package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeMove_SimplePush(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/4P3/8 w - - 0 1")
	require.NoError(t, err)

	m := Move{From: 12, To: 20, Piece: Pawn} // e2e3
	undo := pos.MakeMove(m)

	piece, color, ok := pos.PieceAt(20)
	require.True(t, ok)
	assert.Equal(t, Pawn, piece)
	assert.Equal(t, White, color)
	_, _, ok = pos.PieceAt(12)
	assert.False(t, ok)
	assert.Equal(t, Black, pos.SideToMove)

	pos.UnmakeMove(m, undo)
	piece, _, ok = pos.PieceAt(12)
	require.True(t, ok)
	assert.Equal(t, Pawn, piece)
	_, _, ok = pos.PieceAt(20)
	assert.False(t, ok)
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, undo.Hash, pos.Hash)
}

func TestMakeMove_DoublePawnPushSetsEnPassant(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)

	m := Move{From: 12, To: 28, Piece: Pawn} // e2e4
	pos.MakeMove(m)
	assert.Equal(t, IndexToBitboard(20), pos.EnPassant) // e3
}

func TestMakeMove_EnPassantCapture(t *testing.T) {
	// After 1.e4 d5 2.e5 f5, white can capture en passant on f6.
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)

	m := Move{From: 36, To: 45, Piece: Pawn, Captured: Pawn, Type: EnPassant} // e5xf6
	undo := pos.MakeMove(m)

	_, _, captured := pos.PieceAt(37) // f5, the captured pawn's square
	assert.False(t, captured)
	piece, color, ok := pos.PieceAt(45)
	require.True(t, ok)
	assert.Equal(t, Pawn, piece)
	assert.Equal(t, White, color)

	pos.UnmakeMove(m, undo)
	piece, _, ok = pos.PieceAt(37)
	require.True(t, ok)
	assert.Equal(t, Pawn, piece)
}

func TestMakeMove_Castling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m := Move{From: 4, To: 6, Piece: King, Type: Castling} // e1g1
	undo := pos.MakeMove(m)

	piece, _, ok := pos.PieceAt(6) // g1: king
	require.True(t, ok)
	assert.Equal(t, King, piece)
	piece, _, ok = pos.PieceAt(5) // f1: rook
	require.True(t, ok)
	assert.Equal(t, Rook, piece)
	_, _, ok = pos.PieceAt(7) // h1 rook has moved away
	assert.False(t, ok)
	assert.Equal(t, uint8(CastleBlackKingside|CastleBlackQueenside), pos.Castle)

	pos.UnmakeMove(m, undo)
	piece, _, ok = pos.PieceAt(4)
	require.True(t, ok)
	assert.Equal(t, King, piece)
	piece, _, ok = pos.PieceAt(7)
	require.True(t, ok)
	assert.Equal(t, Rook, piece)
	assert.Equal(t, undo.Castle, pos.Castle)
}

func TestMakeMove_RookMoveForfeitsCastlingRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m := Move{From: 0, To: 8, Piece: Rook} // a1a2
	pos.MakeMove(m)
	assert.Equal(t, uint8(CastleWhiteKingside|CastleBlackKingside|CastleBlackQueenside), pos.Castle)
}

func TestMakeMove_CaptureResetsHalfmoveClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/4r3/3P4/8/8/4K3 w - - 12 20")
	require.NoError(t, err)

	m := Move{From: 27, To: 36, Piece: Pawn, Captured: Rook} // d4xe5
	pos.MakeMove(m)
	assert.Equal(t, 0, pos.HalfmoveClock)
}

func TestMakeMove_QuietMoveIncrementsHalfmoveClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 5 20")
	require.NoError(t, err)

	m := Move{From: 0, To: 8, Piece: Rook} // a1a2
	pos.MakeMove(m)
	assert.Equal(t, 6, pos.HalfmoveClock)
}

func TestMakeNullMove_FlipsSideClearsEnPassant(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)

	undo := pos.MakeNullMove()
	assert.Equal(t, Black, pos.SideToMove)
	assert.Equal(t, Bitboard(0), pos.EnPassant)

	pos.UnmakeNullMove(undo)
	assert.Equal(t, White, pos.SideToMove)
	assert.Equal(t, undo.EnPassant, pos.EnPassant)
	assert.Equal(t, undo.Hash, pos.Hash)
}
