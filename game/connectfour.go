package game

// ConnectFourBoard is the 7x6 drop game. Cells are stored row-major from
// the bottom row up: index = row*7 + col.
type ConnectFourBoard struct {
	Cells []Player `json:"cells"`
	// Move history as dropped column numbers.
	Moves []uint8 `json:"moves"`
}

func NewConnectFourBoard() *ConnectFourBoard {
	return &ConnectFourBoard{
		Cells: make([]Player, 42),
		Moves: []uint8{},
	}
}

func (b *ConnectFourBoard) Type() GameType { return ConnectFour }

func (b *ConnectFourBoard) cell(row, col int) Player {
	if row < 0 || row > 5 || col < 0 || col > 6 {
		return 0
	}
	return b.Cells[row*7+col]
}

// DropPiece drops into a column and returns the row it landed on, or -1
// when the column is full or out of range.
func (b *ConnectFourBoard) DropPiece(col int, player Player) int {
	if col < 0 || col > 6 {
		return -1
	}
	for row := 0; row < 6; row++ {
		idx := row*7 + col
		if b.Cells[idx] == 0 {
			b.Cells[idx] = player
			b.Moves = append(b.Moves, uint8(col))
			return row
		}
	}
	return -1
}

// CheckWinner scans every cell for four in a line in the four directions.
func (b *ConnectFourBoard) CheckWinner() *Player {
	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			player := b.cell(row, col)
			if player == 0 {
				continue
			}
			if col <= 3 && b.line(row, col, 0, 1, player) {
				return &player
			}
			if row <= 2 && b.line(row, col, 1, 0, player) {
				return &player
			}
			if row <= 2 && col <= 3 && b.line(row, col, 1, 1, player) {
				return &player
			}
			if row >= 3 && col <= 3 && b.line(row, col, -1, 1, player) {
				return &player
			}
		}
	}
	return nil
}

func (b *ConnectFourBoard) line(row, col, dr, dc int, player Player) bool {
	for i := 1; i < 4; i++ {
		if b.cell(row+i*dr, col+i*dc) != player {
			return false
		}
	}
	return true
}

// IsFull reports a draw board: every column topped out.
func (b *ConnectFourBoard) IsFull() bool {
	for col := 0; col < 7; col++ {
		if b.cell(5, col) == 0 {
			return false
		}
	}
	return true
}

// ValidColumns lists the columns that still accept a drop.
func (b *ConnectFourBoard) ValidColumns() []int {
	cols := make([]int, 0, 7)
	for col := 0; col < 7; col++ {
		if b.cell(5, col) == 0 {
			cols = append(cols, col)
		}
	}
	return cols
}
