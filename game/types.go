package game

// Player identifies one of the two seats in a room. The numeric values
// double as cell marks on the grid-based boards (0 is always empty).
type Player uint8

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Index returns the roster slot (0 or 1) for the player.
func (p Player) Index() int {
	return int(p) - 1
}

func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// GameType selects which board engine a room runs.
type GameType string

const (
	Chess       GameType = "Chess"
	ConnectFour GameType = "ConnectFour"
	Reversi     GameType = "Reversi"
	Gomoku      GameType = "Gomoku"
	Battleship  GameType = "Battleship"
	Mancala     GameType = "Mancala"
)

var gameTypes = map[GameType]bool{
	Chess:       true,
	ConnectFour: true,
	Reversi:     true,
	Gomoku:      true,
	Battleship:  true,
	Mancala:     true,
}

func (g GameType) Valid() bool {
	return gameTypes[g]
}

// Status is the room lifecycle state.
type Status string

const (
	StatusWaitingForPlayer Status = "WaitingForPlayer"
	StatusInProgress       Status = "InProgress"
	StatusFinished         Status = "Finished"
	StatusDraw             Status = "Draw"
	StatusForfeited        Status = "Forfeited"
	StatusAbandoned        Status = "Abandoned"
)

// Terminal reports whether the status ends a match.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinished, StatusDraw, StatusForfeited, StatusAbandoned:
		return true
	}
	return false
}

// MoveData is the uniform move payload for every game type.
//
//   - ConnectFour: Primary = column (0-6)
//   - Reversi: Primary = position (0-63), -1 to pass
//   - Gomoku: Primary = position (0-224)
//   - Battleship attack: Primary = position (0-99)
//   - Mancala: Primary = pit index (0-5, relative to mover)
//   - Chess: Secondary = UCI move string ("e2e4", "e7e8q")
//   - Battleship setup: Secondary = "shipId,startPos,h|v;..." fleet list
type MoveData struct {
	Primary   int32  `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// MoveResult is the uniform verdict every engine is normalized to.
type MoveResult struct {
	Ended      bool    `json:"ended"`
	Winner     *Player `json:"winner,omitempty"`
	SwitchTurn bool    `json:"switch_turn"`
}

// PlayerProfile is the per-wallet record kept on each chain.
type PlayerProfile struct {
	Username    string `json:"username"`
	Wallet      string `json:"wallet"`
	TotalWins   uint64 `json:"total_wins"`
	TotalLosses uint64 `json:"total_losses"`
	TotalDraws  uint64 `json:"total_draws"`
	TotalGames  uint64 `json:"total_games"`
	XP          uint64 `json:"xp"`
	Coins       uint64 `json:"coins"`
	CreatedAt   int64  `json:"created_at"`
}
