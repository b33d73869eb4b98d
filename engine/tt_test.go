package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rookwood/board"
)

func TestTT_StoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0x123456789ABCDEF0)
	move := board.Move{From: 12, To: 28, Piece: board.Pawn}

	tt.Store(hash, 100, 5, TTFlagExact, move)

	entry, ok := tt.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, int32(100), entry.Score)
	assert.Equal(t, int8(5), entry.Depth)
	assert.Equal(t, TTFlagExact, entry.Flag)
	assert.Equal(t, move, entry.BestMove)
}

func TestTT_ProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0xdeadbeef)
	assert.False(t, ok)
}

func TestTT_DepthPreferredReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	// Two different positions (different fingerprints) that collide on the
	// same slot index, achieved by sharing low bits and differing in the
	// upper 32 bits the fingerprint is drawn from.
	hashA := uint64(1)<<32 | 0x10
	hashB := uint64(2)<<32 | 0x10
	deep := board.Move{From: 1, To: 2, Piece: board.Knight}
	shallow := board.Move{From: 3, To: 4, Piece: board.Bishop}

	tt.Store(hashA, 10, 8, TTFlagExact, deep)
	tt.Store(hashB, 20, 3, TTFlagExact, shallow) // shallower depth, different position: must not overwrite

	entry, ok := tt.Probe(hashA)
	require.True(t, ok)
	assert.Equal(t, deep, entry.BestMove)
	assert.Equal(t, int8(8), entry.Depth)

	_, ok = tt.Probe(hashB)
	assert.False(t, ok, "colliding lower-depth store must have been rejected")
}

func TestTT_SameFingerprintAlwaysOverwrites(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(1)<<32 | 0x20
	first := board.Move{From: 1, To: 2, Piece: board.Knight}
	second := board.Move{From: 3, To: 4, Piece: board.Bishop}

	tt.Store(hash, 10, 8, TTFlagExact, first)
	tt.Store(hash, 20, 1, TTFlagUpper, second) // same fingerprint: always overwrites regardless of depth

	entry, ok := tt.Probe(hash)
	require.True(t, ok)
	assert.Equal(t, second, entry.BestMove)
	assert.Equal(t, int8(1), entry.Depth)
}

func TestTT_Clear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 1, 1, TTFlagExact, board.Move{})
	tt.Clear()
	_, ok := tt.Probe(1)
	assert.False(t, ok)
}

func TestNormalizeDenormalizeMateScoreRoundTrip(t *testing.T) {
	for _, s := range []int{mateScore, mateScore - 3, -mateScore, -mateScore + 7} {
		for ply := 0; ply < 20; ply++ {
			got := denormalizeMateScore(normalizeMateScore(s, ply), ply)
			assert.Equal(t, s, got, "score=%d ply=%d", s, ply)
		}
	}
}

func TestNormalizeMateScore_NonMateUnaffected(t *testing.T) {
	assert.Equal(t, 37, normalizeMateScore(37, 5))
	assert.Equal(t, -37, normalizeMateScore(-37, 5))
}
