package board

// Piece identifies a chess piece type. The zero value, Empty, also serves
// as the "no piece" / "no capture" / "no promotion" sentinel everywhere a
// Piece field is used that way. Indexing is fixed by spec: pawn=0, knight=1,
// bishop=2, rook=3, queen=4, king=5 once Empty is subtracted.
type Piece uint8

const (
	Empty Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Index returns the 0-based piece-type index (pawn=0 .. king=5) used to
// address material tables and piece-square tables. Only valid for
// non-Empty pieces.
func (p Piece) Index() int {
	return int(p) - 1
}

var pieceNames = [...]string{Empty: "", Pawn: "Pawn", Knight: "Knight", Bishop: "Bishop", Rook: "Rook", Queen: "Queen", King: "King"}

// Name returns the capitalized English piece name (e.g. "Knight"), used
// where a human-readable label is wanted rather than ToUCI's algebraic
// letter. Empty returns "".
func (p Piece) Name() string {
	return pieceNames[p]
}

// Color is the side to move or the owner of a piece.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

// Castling rights bits.
const (
	CastleWhiteKingside = 1 << iota
	CastleWhiteQueenside
	CastleBlackKingside
	CastleBlackQueenside
)

// InitialPositionFEN is the standard chess starting position.
const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is the full state of a chess game at one point in time.
//
// Pieces[color][pieceIndex] holds a bitboard of that color's pieces of that
// type; pieceIndex is Piece.Index(). Occupied[color] is the union of a
// color's pieces; All is the union of both.
type Position struct {
	Pieces   [2][6]Bitboard
	Occupied [2]Bitboard
	All      Bitboard

	SideToMove    Color
	Castle        uint8
	EnPassant     Bitboard // single bit set on the en-passant target square, else 0
	HalfmoveClock int
	FullMove      int

	Hash uint64

	// history records the hash after every ply played since the position was
	// loaded (ucinewgame / a fresh "position" command), used for threefold
	// repetition detection. The search pushes/pops this alongside make/unmake.
	history []uint64
}

// PieceAt returns the piece type and color occupying sq, or (Empty, White, false).
func (pos *Position) PieceAt(sq int) (Piece, Color, bool) {
	bb := IndexToBitboard(sq)
	if pos.All&bb == 0 {
		return Empty, White, false
	}
	color := White
	if pos.Occupied[Black]&bb != 0 {
		color = Black
	}
	for pieceIdx := 0; pieceIdx < 6; pieceIdx++ {
		if pos.Pieces[color][pieceIdx]&bb != 0 {
			return Piece(pieceIdx + 1), color, true
		}
	}
	return Empty, White, false
}

// put places a piece on sq, updating the bitboards (not the hash).
func (pos *Position) put(color Color, piece Piece, sq int) {
	bb := IndexToBitboard(sq)
	pos.Pieces[color][piece.Index()] |= bb
	pos.Occupied[color] |= bb
	pos.All |= bb
}

// remove clears a piece from sq, updating the bitboards (not the hash).
func (pos *Position) remove(color Color, piece Piece, sq int) {
	bb := IndexToBitboard(sq)
	pos.Pieces[color][piece.Index()] &^= bb
	pos.Occupied[color] &^= bb
	pos.All &^= bb
}

// HasNonPawnMaterial reports whether side has a piece other than pawns and
// king — the null-move-pruning zugzwang guard of spec §4.5.
func (pos *Position) HasNonPawnMaterial(side Color) bool {
	p := &pos.Pieces[side]
	return p[Knight.Index()]|p[Bishop.Index()]|p[Rook.Index()]|p[Queen.Index()] != 0
}

var phaseWeight = [6]int{int(Pawn) - 1: 0, int(Knight) - 1: 1, int(Bishop) - 1: 1, int(Rook) - 1: 2, int(Queen) - 1: 4, int(King) - 1: 0}

// Phase returns the tapered-evaluation game phase in [0, 24] (spec §4.1).
func (pos *Position) Phase() int {
	phase := 0
	for color := White; color <= Black; color++ {
		for idx, w := range phaseWeight {
			phase += pos.Pieces[color][idx].PopCount() * w
		}
	}
	if phase > 24 {
		phase = 24
	}
	return phase
}

// IsFiftyMoveDraw reports the 50-move rule (100 halfmoves without a capture
// or pawn push).
func (pos *Position) IsFiftyMoveDraw() bool {
	return pos.HalfmoveClock >= 100
}

// IsInsufficientMaterial reports the common lone-minor/bare-king draws. It
// does not attempt the full rulebook (e.g. wrong-colored-bishop corner
// mates with pawns present); those remain soluble by search and evaluation
// as ordinary positions.
func (pos *Position) IsInsufficientMaterial() bool {
	for color := White; color <= Black; color++ {
		p := &pos.Pieces[color]
		if p[Pawn.Index()]|p[Rook.Index()]|p[Queen.Index()] != 0 {
			return false
		}
	}
	minorCount := func(c Color) int {
		return pos.Pieces[c][Knight.Index()].PopCount() + pos.Pieces[c][Bishop.Index()].PopCount()
	}
	return minorCount(White) <= 1 && minorCount(Black) <= 1
}

// IsRepetitionDraw reports whether the current position has occurred at
// least three times in the recorded history (spec §4.5 guard 1: threefold).
func (pos *Position) IsRepetitionDraw() bool {
	count := 0
	for _, h := range pos.history {
		if h == pos.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// PushHistory records the current hash as having been reached, for
// subsequent repetition checks. MakeMove does not call it: the search and the
// UCI position loader call it after each MakeMove, and ParseFEN calls it once
// for the loaded position.
func (pos *Position) PushHistory() {
	pos.history = append(pos.history, pos.Hash)
}

// PopHistory removes the most recently recorded hash. UnmakeMove does not
// call it; the search calls it before each UnmakeMove.
func (pos *Position) PopHistory() {
	pos.history = pos.history[:len(pos.history)-1]
}

// ResetHistory clears repetition history (ucinewgame / a freshly loaded position).
func (pos *Position) ResetHistory() {
	pos.history = pos.history[:0]
}
