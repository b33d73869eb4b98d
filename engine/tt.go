package engine

import "rookwood/board"

// TTFlag indicates what type of bound the stored score represents.
type TTFlag uint8

const (
	TTFlagNone  TTFlag = 0
	TTFlagExact TTFlag = 1
	TTFlagLower TTFlag = 2
	TTFlagUpper TTFlag = 3
)

// TTEntry is a single transposition table slot. Score is stored in its
// "absolute" (ply-removed) form per I3; Probe/Store do not themselves
// normalize — callers pass already-normalized scores in and are handed
// already-normalized scores back (see normalizeMateScore/denormalizeMateScore
// in search.go).
type TTEntry struct {
	Hash     uint32
	BestMove board.Move
	Score    int32
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable is a fixed-size, fingerprint-indexed cache of prior
// search results, replacement governed by depth (spec §4.3).
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

// DefaultHashMB is the default transposition table size in megabytes.
const DefaultHashMB = 64

const ttEntrySize = 24

// NewTranspositionTable allocates a table sized to approximately sizeMB
// megabytes, rounded down to a power-of-two slot count so indexing is a
// mask rather than a modulo.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = DefaultHashMB
	}
	numEntries := (uint64(sizeMB) * 1024 * 1024) / ttEntrySize
	size := uint64(1)
	for size*2 <= numEntries {
		size *= 2
	}
	return &TranspositionTable{
		entries: make([]TTEntry, size),
		mask:    size - 1,
	}
}

func (tt *TranspositionTable) index(hash uint64) uint64 {
	return hash & tt.mask
}

// Probe returns the slot at hash iff it is occupied and its fingerprint
// matches (I2); a fingerprint mismatch is treated as an ordinary miss, never
// validated by full position comparison (design note: Zobrist collisions).
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	entry := &tt.entries[tt.index(hash)]
	if entry.Flag == TTFlagNone || entry.Hash != uint32(hash>>32) {
		return TTEntry{}, false
	}
	return *entry, true
}

// Store writes hash's slot iff it is empty, already holds this position, or
// the new depth is ≥ the stored depth — depth-preferred replacement.
func (tt *TranspositionTable) Store(hash uint64, score int32, depth int8, flag TTFlag, bestMove board.Move) {
	idx := tt.index(hash)
	entry := &tt.entries[idx]
	fp := uint32(hash >> 32)
	if entry.Flag != TTFlagNone && entry.Hash != fp && entry.Depth > depth {
		return
	}
	*entry = TTEntry{Hash: fp, Score: score, Depth: depth, Flag: flag, BestMove: bestMove}
}

// Clear resets every slot, as required on ucinewgame.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Size returns the number of slots.
func (tt *TranspositionTable) Size() uint64 {
	return tt.mask + 1
}

// SizeMB returns the approximate size in megabytes.
func (tt *TranspositionTable) SizeMB() int {
	return int(tt.Size() * ttEntrySize / (1024 * 1024))
}

// Hashfull returns the permille of a fixed-size sample of slots that are
// occupied, for UCI `info hashfull` reporting.
func (tt *TranspositionTable) Hashfull() int {
	sample := uint64(1000)
	if sample > tt.Size() {
		sample = tt.Size()
	}
	used := 0
	for i := uint64(0); i < sample; i++ {
		if tt.entries[i].Flag != TTFlagNone {
			used++
		}
	}
	return int(used * 1000 / int(sample))
}
