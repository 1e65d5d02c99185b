package game

// Board is the union of the six engines. A room holds exactly one board
// and its tag always equals the room's game type; NewBoard is the only
// constructor, so the invariant holds by construction.
type Board interface {
	Type() GameType
}

// NewBoard returns the canonical start position for the game type, or nil
// for an unknown type.
func NewBoard(gameType GameType) Board {
	switch gameType {
	case Chess:
		return NewChessBoard()
	case ConnectFour:
		return NewConnectFourBoard()
	case Reversi:
		return NewReversiBoard()
	case Gomoku:
		return NewGomokuBoard()
	case Battleship:
		return NewBattleshipBoard()
	case Mancala:
		return NewMancalaBoard()
	}
	return nil
}
