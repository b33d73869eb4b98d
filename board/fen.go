package board

import (
	"fmt"
	"strconv"
	"strings"
)

var fenPieceLetter = map[rune]Piece{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// ParseFEN parses the first four-to-six whitespace-separated FEN fields
// (spec §6: "the FEN spans six whitespace-separated fields and may be
// followed by the literal token `moves`"). Halfmove clock and fullmove
// number default to 0/1 if omitted.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: bad FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	pos := &Position{}
	if err := placePieces(pos, fields[0]); err != nil {
		return nil, fmt.Errorf("board: bad FEN %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("board: bad FEN %q: bad side to move %q", fen, fields[1])
	}

	pos.Castle = parseCastleRights(fields[2])

	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return nil, fmt.Errorf("board: bad FEN %q: %w", fen, err)
	}
	pos.EnPassant = ep

	pos.HalfmoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			pos.HalfmoveClock = n
		}
	}
	pos.FullMove = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			pos.FullMove = n
		}
	}

	pos.Hash = pos.ComputeHash()
	pos.ResetHistory()
	pos.PushHistory()
	return pos, nil
}

func placePieces(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i := 0; i < 4; i++ {
		ranks[i], ranks[7-i] = ranks[7-i], ranks[i]
	}
	for rankIdx, rankStr := range ranks {
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			default:
				piece, ok := fenPieceLetter[toLower(ch)]
				if !ok {
					return fmt.Errorf("unrecognized piece %q", ch)
				}
				if file > 7 {
					return fmt.Errorf("rank %d overflows", rankIdx+1)
				}
				color := Black
				if ch >= 'A' && ch <= 'Z' {
					color = White
				}
				pos.put(color, piece, rankIdx*8+file)
				file++
			}
		}
	}
	return nil
}

func toLower(ch rune) rune {
	if ch >= 'A' && ch <= 'Z' {
		return ch + ('a' - 'A')
	}
	return ch
}

func parseCastleRights(s string) uint8 {
	var rights uint8
	for _, ch := range s {
		switch ch {
		case 'K':
			rights |= CastleWhiteKingside
		case 'Q':
			rights |= CastleWhiteQueenside
		case 'k':
			rights |= CastleBlackKingside
		case 'q':
			rights |= CastleBlackQueenside
		}
	}
	return rights
}

func parseEnPassant(s string) (Bitboard, error) {
	if s == "-" {
		return 0, nil
	}
	sq, ok := AlgebraicToIndex(s)
	if !ok {
		return 0, fmt.Errorf("bad en-passant square %q", s)
	}
	return IndexToBitboard(sq), nil
}

var fenPieceChar = [...]byte{Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

// ToFEN renders the position as a FEN string.
func (pos *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			piece, color, ok := pos.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			ch := fenPieceChar[piece]
			if color == White {
				ch -= 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if pos.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := ""
	if pos.Castle&CastleWhiteKingside != 0 {
		castling += "K"
	}
	if pos.Castle&CastleWhiteQueenside != 0 {
		castling += "Q"
	}
	if pos.Castle&CastleBlackKingside != 0 {
		castling += "k"
	}
	if pos.Castle&CastleBlackQueenside != 0 {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteByte(' ')
	if pos.EnPassant != 0 {
		sb.WriteString(IndexToAlgebraic(pos.EnPassant.LSB()))
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", pos.HalfmoveClock, pos.FullMove)
	return sb.String()
}
