package generator

import "rookwood/board"

// GenerateLegalMoves returns every legal move available to the side to
// move. Moves are produced pseudo-legally and then filtered by making each
// one and checking that the moving side's own king is not left in check —
// simple and unconditionally correct, which matters more here than speed
// (spec treats this generator as an opaque, already-correct collaborator).
func GenerateLegalMoves(pos *board.Position) []board.Move {
	pseudo := generatePseudoLegal(pos, false)
	return filterLegal(pos, pseudo)
}

// GenerateLegalCaptures returns legal capturing moves only (including
// en-passant and capture-promotions). Used by quiescence search when not
// in check (spec §4.4).
func GenerateLegalCaptures(pos *board.Position) []board.Move {
	pseudo := generatePseudoLegal(pos, true)
	return filterLegal(pos, pseudo)
}

func filterLegal(pos *board.Position, pseudo []board.Move) []board.Move {
	legal := make([]board.Move, 0, len(pseudo))
	us := pos.SideToMove
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		if !IsInCheck(pos, us) {
			legal = append(legal, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return legal
}

func generatePseudoLegal(pos *board.Position, capturesOnly bool) []board.Move {
	moves := make([]board.Move, 0, 48)
	us := pos.SideToMove
	them := us.Other()
	ownPieces := pos.Occupied[us]
	enemyPieces := pos.Occupied[them]
	empty := ^pos.All

	genPawns(pos, us, them, capturesOnly, &moves)

	knightBB := pos.Pieces[us][board.Knight.Index()]
	for knightBB != 0 {
		from := knightBB.PopLSB()
		targets := knightAttacks[from] &^ ownPieces
		if capturesOnly {
			targets &= enemyPieces
		}
		addPieceMoves(pos, board.Knight, from, targets, &moves)
	}

	kingBB := pos.Pieces[us][board.King.Index()]
	for kingBB != 0 {
		from := kingBB.PopLSB()
		targets := kingAttacks[from] &^ ownPieces
		if capturesOnly {
			targets &= enemyPieces
		}
		addPieceMoves(pos, board.King, from, targets, &moves)
	}

	for _, pt := range []board.Piece{board.Bishop, board.Rook, board.Queen} {
		bb := pos.Pieces[us][pt.Index()]
		for bb != 0 {
			from := bb.PopLSB()
			var targets board.Bitboard
			switch pt {
			case board.Bishop:
				targets = bishopAttacks(from, pos.All)
			case board.Rook:
				targets = rookAttacks(from, pos.All)
			case board.Queen:
				targets = queenAttacks(from, pos.All)
			}
			targets &^= ownPieces
			if capturesOnly {
				targets &= enemyPieces
			}
			addPieceMoves(pos, pt, from, targets, &moves)
		}
	}

	if !capturesOnly {
		genCastling(pos, us, empty, &moves)
	}

	return moves
}

func addPieceMoves(pos *board.Position, pt board.Piece, from int, targets board.Bitboard, moves *[]board.Move) {
	for targets != 0 {
		to := targets.PopLSB()
		captured, _, _ := pos.PieceAt(to)
		*moves = append(*moves, board.Move{From: from, To: to, Piece: pt, Captured: captured, Type: board.Normal})
	}
}

var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func genPawns(pos *board.Position, us, them board.Color, capturesOnly bool, moves *[]board.Move) {
	bb := pos.Pieces[us][board.Pawn.Index()]
	forward := 8
	startRank, promoRank := 1, 7
	if us == board.Black {
		forward = -8
		startRank, promoRank = 6, 0
	}
	for pieces := bb; pieces != 0; {
		from := pieces.PopLSB()
		rank := from >> 3

		if !capturesOnly {
			oneStep := from + forward
			if oneStep >= 0 && oneStep < 64 && !pos.All.IsBitSet(oneStep) {
				addPawnMove(from, oneStep, promoRank, moves)
				if rank == startRank {
					twoStep := from + 2*forward
					if !pos.All.IsBitSet(twoStep) {
						*moves = append(*moves, board.Move{From: from, To: twoStep, Piece: board.Pawn, Type: board.Normal})
					}
				}
			}
		}

		attacks := pawnAttacks[us][from]
		captures := attacks & pos.Occupied[them]
		for captures != 0 {
			to := captures.PopLSB()
			captured, _, _ := pos.PieceAt(to)
			if to>>3 == promoRank {
				for _, promo := range promotionPieces {
					*moves = append(*moves, board.Move{From: from, To: to, Piece: board.Pawn, Captured: captured, Promotion: promo, Type: board.Promotion})
				}
			} else {
				*moves = append(*moves, board.Move{From: from, To: to, Piece: board.Pawn, Captured: captured, Type: board.Normal})
			}
		}

		if pos.EnPassant != 0 && attacks.IsBitSet(pos.EnPassant.LSB()) {
			*moves = append(*moves, board.Move{From: from, To: pos.EnPassant.LSB(), Piece: board.Pawn, Captured: board.Pawn, Type: board.EnPassant})
		}
	}
}

func addPawnMove(from, to, promoRank int, moves *[]board.Move) {
	if to>>3 == promoRank {
		for _, promo := range promotionPieces {
			*moves = append(*moves, board.Move{From: from, To: to, Piece: board.Pawn, Promotion: promo, Type: board.Promotion})
		}
		return
	}
	*moves = append(*moves, board.Move{From: from, To: to, Piece: board.Pawn, Type: board.Normal})
}

type castleSpec struct {
	right            uint8
	kingFrom, kingTo int
	betweenEmpty     board.Bitboard
	kingSquares      [3]int // from, transit, and destination: none may be attacked
}

var castleSpecs = map[board.Color][2]castleSpec{
	board.White: {
		{right: board.CastleWhiteKingside, kingFrom: 4, kingTo: 6, betweenEmpty: 0x60, kingSquares: [3]int{4, 5, 6}},
		{right: board.CastleWhiteQueenside, kingFrom: 4, kingTo: 2, betweenEmpty: 0x0E, kingSquares: [3]int{4, 3, 2}},
	},
	board.Black: {
		{right: board.CastleBlackKingside, kingFrom: 60, kingTo: 62, betweenEmpty: 0x6000000000000000, kingSquares: [3]int{60, 61, 62}},
		{right: board.CastleBlackQueenside, kingFrom: 60, kingTo: 58, betweenEmpty: 0x0E00000000000000, kingSquares: [3]int{60, 59, 58}},
	},
}

func genCastling(pos *board.Position, us board.Color, empty board.Bitboard, moves *[]board.Move) {
	for _, spec := range castleSpecs[us] {
		if pos.Castle&spec.right == 0 {
			continue
		}
		if spec.betweenEmpty&^empty != 0 {
			continue
		}
		attacked := false
		for _, sq := range spec.kingSquares {
			if IsSquareAttacked(pos, sq, us.Other()) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		*moves = append(*moves, board.Move{From: spec.kingFrom, To: spec.kingTo, Piece: board.King, Type: board.Castling})
	}
}
