package game

import (
	"strconv"
	"strings"
)

// StartFEN is the canonical chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ChessBoard holds one chess game. Squares are indexed a8=0 .. h1=63,
// " " empty, uppercase white, lowercase black. Moves are trusted once
// ownership and side-to-move pass: there is no check or checkmate
// detection, games end by resignation outside the engine.
type ChessBoard struct {
	Board     []string `json:"board"`
	WhiteTurn bool     `json:"white_turn"`
	// Castling rights: [white kingside, white queenside, black kingside, black queenside]
	Castling  []bool   `json:"castling"`
	EnPassant int8     `json:"en_passant"`
	Halfmove  uint16   `json:"halfmove"`
	Fullmove  uint16   `json:"fullmove"`
	Moves     []string `json:"moves"`
	FEN       string   `json:"fen"`
}

const chessBackRank = "rnbqkbnr"

// NewChessBoard returns the starting position.
func NewChessBoard() *ChessBoard {
	board := make([]string, 64)
	for i := range board {
		board[i] = " "
	}
	for file := 0; file < 8; file++ {
		board[file] = string(chessBackRank[file])
		board[8+file] = "p"
		board[48+file] = "P"
		board[56+file] = strings.ToUpper(string(chessBackRank[file]))
	}

	return &ChessBoard{
		Board:     board,
		WhiteTurn: true,
		Castling:  []bool{true, true, true, true},
		EnPassant: -1,
		Halfmove:  0,
		Fullmove:  1,
		Moves:     []string{},
		FEN:       StartFEN,
	}
}

func (b *ChessBoard) Type() GameType { return Chess }

func (b *ChessBoard) pieceAt(idx int) byte {
	if idx < 0 || idx >= len(b.Board) || b.Board[idx] == "" {
		return ' '
	}
	return b.Board[idx][0]
}

func (b *ChessBoard) setPiece(idx int, piece byte) {
	if idx >= 0 && idx < 64 {
		b.Board[idx] = string(piece)
	}
}

func isWhitePiece(p byte) bool { return p >= 'A' && p <= 'Z' }

// MakeMove parses a 4-5 character UCI move and applies it for the given
// side. Returns false when the move string is malformed, the side to move
// does not match, or the from-square does not hold the mover's piece.
func (b *ChessBoard) MakeMove(uci string, white bool) bool {
	if len(uci) < 4 {
		return false
	}
	if b.WhiteTurn != white {
		return false
	}

	fromFile := int(uci[0] - 'a')
	fromRank := int(uci[1] - '1')
	toFile := int(uci[2] - 'a')
	toRank := int(uci[3] - '1')

	if fromFile < 0 || fromFile > 7 || fromRank < 0 || fromRank > 7 ||
		toFile < 0 || toFile > 7 || toRank < 0 || toRank > 7 {
		return false
	}

	fromIdx := (7-fromRank)*8 + fromFile
	toIdx := (7-toRank)*8 + toFile

	piece := b.pieceAt(fromIdx)
	if piece == ' ' {
		return false
	}
	if isWhitePiece(piece) != white {
		return false
	}

	captured := b.pieceAt(toIdx)
	lower := piece | 0x20 // ASCII lowercase

	// King move: perform rook leg of castling, drop both rights.
	if lower == 'k' {
		switch toFile - fromFile {
		case 2: // kingside
			b.setPiece(fromIdx+1, b.pieceAt(fromIdx+3))
			b.setPiece(fromIdx+3, ' ')
		case -2: // queenside
			b.setPiece(fromIdx-1, b.pieceAt(fromIdx-4))
			b.setPiece(fromIdx-4, ' ')
		}
		if white {
			b.Castling[0], b.Castling[1] = false, false
		} else {
			b.Castling[2], b.Castling[3] = false, false
		}
	}

	// Rook leaving its home square drops that side's right.
	if lower == 'r' {
		if white {
			if fromIdx == 63 {
				b.Castling[0] = false
			}
			if fromIdx == 56 {
				b.Castling[1] = false
			}
		} else {
			if fromIdx == 7 {
				b.Castling[2] = false
			}
			if fromIdx == 0 {
				b.Castling[3] = false
			}
		}
	}

	// En passant capture removes the pawn behind the target square.
	if lower == 'p' && b.EnPassant >= 0 && int8(toIdx) == b.EnPassant {
		if white {
			b.setPiece(toIdx+8, ' ')
		} else {
			b.setPiece(toIdx-8, ' ')
		}
	}

	// Recompute the en passant target: set on a double pawn push, cleared
	// otherwise.
	b.EnPassant = -1
	if lower == 'p' {
		rankDiff := toRank - fromRank
		if rankDiff == 2 || rankDiff == -2 {
			b.EnPassant = int8((fromIdx + toIdx) / 2)
		}
	}

	b.setPiece(toIdx, piece)
	b.setPiece(fromIdx, ' ')

	// Promotion: queen unless the UCI move names a piece.
	if lower == 'p' && (toRank == 7 || toRank == 0) {
		promo := byte('q')
		if len(uci) >= 5 {
			promo = uci[4]
		}
		if white {
			promo &^= 0x20
		} else {
			promo |= 0x20
		}
		b.setPiece(toIdx, promo)
	}

	if lower == 'p' || captured != ' ' {
		b.Halfmove = 0
	} else {
		b.Halfmove++
	}

	if !white {
		b.Fullmove++
	}

	b.WhiteTurn = !b.WhiteTurn
	b.Moves = append(b.Moves, uci)
	b.updateFEN()

	return true
}

// updateFEN regenerates the canonical position string after every move.
func (b *ChessBoard) updateFEN() {
	var fen strings.Builder

	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := b.pieceAt(rank*8 + file)
			if piece == ' ' {
				empty++
				continue
			}
			if empty > 0 {
				fen.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			fen.WriteByte(piece)
		}
		if empty > 0 {
			fen.WriteString(strconv.Itoa(empty))
		}
		if rank < 7 {
			fen.WriteByte('/')
		}
	}

	fen.WriteByte(' ')
	if b.WhiteTurn {
		fen.WriteByte('w')
	} else {
		fen.WriteByte('b')
	}

	fen.WriteByte(' ')
	rights := ""
	for i, mark := range "KQkq" {
		if i < len(b.Castling) && b.Castling[i] {
			rights += string(mark)
		}
	}
	if rights == "" {
		rights = "-"
	}
	fen.WriteString(rights)

	fen.WriteByte(' ')
	if b.EnPassant >= 0 {
		fen.WriteByte('a' + byte(b.EnPassant%8))
		fen.WriteByte('1' + byte(7-b.EnPassant/8))
	} else {
		fen.WriteByte('-')
	}

	fen.WriteByte(' ')
	fen.WriteString(strconv.Itoa(int(b.Halfmove)))
	fen.WriteByte(' ')
	fen.WriteString(strconv.Itoa(int(b.Fullmove)))

	b.FEN = fen.String()
}
