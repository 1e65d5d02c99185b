package game

// ReversiBoard is the 8x8 flipping game. Cells hold 0 (empty) or a
// player mark; PlayerOne is black and moves first.
type ReversiBoard struct {
	Cells []Player `json:"cells"`
	Moves []uint8  `json:"moves"`
	// Two consecutive passes end the game.
	ConsecutivePasses uint8 `json:"consecutive_passes"`
}

func NewReversiBoard() *ReversiBoard {
	cells := make([]Player, 64)
	cells[27] = PlayerTwo // d4 white
	cells[28] = PlayerOne // e4 black
	cells[35] = PlayerOne // d5 black
	cells[36] = PlayerTwo // e5 white

	return &ReversiBoard{
		Cells: cells,
		Moves: []uint8{},
	}
}

func (b *ReversiBoard) Type() GameType { return Reversi }

var reversiDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// MakeMove places at pos and flips every bracketed run. Returns the number
// of pieces flipped; 0 means the move was invalid and nothing changed.
func (b *ReversiBoard) MakeMove(pos int, player Player) int {
	if pos < 0 || pos >= 64 || b.Cells[pos] != 0 {
		return 0
	}

	opponent := player.Other()
	row, col := pos/8, pos%8

	var toFlip []int
	for _, dir := range reversiDirections {
		r, c := row+dir[0], col+dir[1]
		var run []int
		for r >= 0 && r < 8 && c >= 0 && c < 8 {
			idx := r*8 + c
			if b.Cells[idx] == opponent {
				run = append(run, idx)
			} else if b.Cells[idx] == player {
				// Bracketed: the whole run flips. An empty run
				// contributes nothing.
				toFlip = append(toFlip, run...)
				break
			} else {
				break
			}
			r += dir[0]
			c += dir[1]
		}
	}

	if len(toFlip) == 0 {
		return 0
	}

	b.Cells[pos] = player
	for _, idx := range toFlip {
		b.Cells[idx] = player
	}
	b.Moves = append(b.Moves, uint8(pos))
	b.ConsecutivePasses = 0

	return len(toFlip)
}

// IsValidMove checks a placement without mutating the board.
func (b *ReversiBoard) IsValidMove(pos int, player Player) bool {
	if pos < 0 || pos >= 64 || b.Cells[pos] != 0 {
		return false
	}

	opponent := player.Other()
	row, col := pos/8, pos%8

	for _, dir := range reversiDirections {
		r, c := row+dir[0], col+dir[1]
		foundOpponent := false
		for r >= 0 && r < 8 && c >= 0 && c < 8 {
			idx := r*8 + c
			if b.Cells[idx] == opponent {
				foundOpponent = true
			} else if b.Cells[idx] == player {
				if foundOpponent {
					return true
				}
				break
			} else {
				break
			}
			r += dir[0]
			c += dir[1]
		}
	}
	return false
}

// HasValidMoves reports whether the player can place anywhere.
func (b *ReversiBoard) HasValidMoves(player Player) bool {
	for pos := 0; pos < 64; pos++ {
		if b.IsValidMove(pos, player) {
			return true
		}
	}
	return false
}

// ValidMoves lists every legal placement for the player.
func (b *ReversiBoard) ValidMoves(player Player) []int {
	var moves []int
	for pos := 0; pos < 64; pos++ {
		if b.IsValidMove(pos, player) {
			moves = append(moves, pos)
		}
	}
	return moves
}

// Pass records a turn with no placement.
func (b *ReversiBoard) Pass() {
	b.ConsecutivePasses++
}

// CountPieces returns the piece totals for both players.
func (b *ReversiBoard) CountPieces() (p1, p2 int) {
	for _, cell := range b.Cells {
		switch cell {
		case PlayerOne:
			p1++
		case PlayerTwo:
			p2++
		}
	}
	return p1, p2
}

// IsGameOver reports the terminal condition: two consecutive passes or a
// full board.
func (b *ReversiBoard) IsGameOver() bool {
	if b.ConsecutivePasses >= 2 {
		return true
	}
	for _, cell := range b.Cells {
		if cell == 0 {
			return false
		}
	}
	return true
}

// Winner returns the player with more pieces, or nil on a tie.
func (b *ReversiBoard) Winner() *Player {
	p1, p2 := b.CountPieces()
	switch {
	case p1 > p2:
		w := PlayerOne
		return &w
	case p2 > p1:
		w := PlayerTwo
		return &w
	}
	return nil
}
