package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rookwood/board"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestGenerateLegalMoves_StartPosition(t *testing.T) {
	pos := mustFEN(t, board.InitialPositionFEN)
	moves := GenerateLegalMoves(pos)
	assert.Len(t, moves, 20)
}

func TestGenerateLegalMoves_KiwipeteHasCastling(t *testing.T) {
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := GenerateLegalMoves(pos)
	var sawKingside, sawQueenside bool
	for _, m := range moves {
		if m.Type == board.Castling && m.To == 6 {
			sawKingside = true
		}
		if m.Type == board.Castling && m.To == 2 {
			sawQueenside = true
		}
	}
	assert.True(t, sawKingside)
	assert.True(t, sawQueenside)
}

func TestGenerateLegalMoves_CastlingIntoCheckIsIllegal(t *testing.T) {
	// Black rook on g8 attacks g1: white may not castle kingside even though
	// e1 and f1 are themselves unattacked, because the king would land on an
	// attacked square.
	pos := mustFEN(t, "6r1/8/8/8/8/8/8/4K2R w K - 0 1")
	moves := GenerateLegalMoves(pos)
	for _, m := range moves {
		assert.False(t, m.Type == board.Castling && m.To == 6, "castling into check must not be generated")
	}
}

func TestGenerateLegalMoves_PinnedPieceCannotMove(t *testing.T) {
	// White king on e1, white rook on e2 pinned by black rook on e8.
	pos := mustFEN(t, "4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	moves := GenerateLegalMoves(pos)
	for _, m := range moves {
		if m.From == 12 { // e2
			assert.Equal(t, 4, m.To&7, "pinned rook must stay on the e-file")
		}
	}
}

func TestGenerateLegalMoves_NoMovesWhenCheckmated(t *testing.T) {
	// Fool's mate final position: black has delivered mate.
	pos := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	moves := GenerateLegalMoves(pos)
	assert.Empty(t, moves)
	assert.True(t, IsInCheck(pos, board.White))
}

func TestGenerateLegalMoves_StalemateHasNoMoves(t *testing.T) {
	pos := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	moves := GenerateLegalMoves(pos)
	assert.Empty(t, moves)
	assert.False(t, IsInCheck(pos, board.Black))
}

func TestGenerateLegalMoves_EnPassant(t *testing.T) {
	pos := mustFEN(t, "8/8/8/3pP3/8/8/8/k6K w - d6 0 1")
	moves := GenerateLegalMoves(pos)
	var found bool
	for _, m := range moves {
		if m.Type == board.EnPassant {
			found = true
			assert.Equal(t, 43, m.To) // d6
		}
	}
	assert.True(t, found, "expected an en-passant capture to be generated")
}

func TestGenerateLegalMoves_PromotionGeneratesAllFourPieces(t *testing.T) {
	pos := mustFEN(t, "8/P6k/8/8/8/8/8/7K w - - 0 1")
	moves := GenerateLegalMoves(pos)
	promos := map[board.Piece]bool{}
	for _, m := range moves {
		if m.Type == board.Promotion {
			promos[m.Promotion] = true
		}
	}
	assert.True(t, promos[board.Queen])
	assert.True(t, promos[board.Rook])
	assert.True(t, promos[board.Bishop])
	assert.True(t, promos[board.Knight])
}

func TestGenerateLegalCaptures_OnlyReturnsCaptures(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	captures := GenerateLegalCaptures(pos)
	require.Len(t, captures, 1)
	assert.True(t, captures[0].IsCapture())
}

func TestIsSquareAttacked_Rook(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.True(t, IsSquareAttacked(pos, board.IndexToBitboard(4).LSB(), board.White))
}

func TestIsInCheck(t *testing.T) {
	pos := mustFEN(t, "4k3/4r3/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, IsInCheck(pos, board.White))
	assert.False(t, IsInCheck(pos, board.Black))
}
