package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_PieceAt(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)

	piece, color, ok := pos.PieceAt(0) // a1
	require.True(t, ok)
	assert.Equal(t, Rook, piece)
	assert.Equal(t, White, color)

	piece, color, ok = pos.PieceAt(60) // e8
	require.True(t, ok)
	assert.Equal(t, King, piece)
	assert.Equal(t, Black, color)

	_, _, ok = pos.PieceAt(28) // e4, empty at start
	assert.False(t, ok)
}

func TestPosition_HasNonPawnMaterial(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	assert.True(t, pos.HasNonPawnMaterial(White))

	bare, err := ParseFEN("4k3/4P3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, bare.HasNonPawnMaterial(White))
}

func TestPosition_Phase(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	assert.Equal(t, 24, pos.Phase())

	kings, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 0, kings.Phase())
}

func TestPosition_IsFiftyMoveDraw(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 99 50")
	require.NoError(t, err)
	assert.False(t, pos.IsFiftyMoveDraw())

	pos.HalfmoveClock = 100
	assert.True(t, pos.IsFiftyMoveDraw())
}

func TestPosition_IsInsufficientMaterial(t *testing.T) {
	bare, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, bare.IsInsufficientMaterial())

	withRook, err := ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, withRook.IsInsufficientMaterial())

	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	assert.False(t, pos.IsInsufficientMaterial())
}

func TestPosition_RepetitionHistory(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	require.NoError(t, err)
	assert.False(t, pos.IsRepetitionDraw())

	pos.PushHistory()
	pos.PushHistory()
	assert.True(t, pos.IsRepetitionDraw(), "initial hash now recorded three times")

	pos.PopHistory()
	pos.PopHistory()
	assert.False(t, pos.IsRepetitionDraw())

	pos.ResetHistory()
	assert.Empty(t, pos.history)
}
