package game

// Reward is one participant's payout for a finished match.
type Reward struct {
	XP       uint64 `json:"xp"`
	Coins    uint64 `json:"coins"`
	IsWinner bool   `json:"is_winner"`
}

// rewardRate holds a game type's payout split.
type rewardRate struct {
	winnerXP    uint64
	winnerCoins uint64
	loserXP     uint64
	loserCoins  uint64
}

var rewardRates = map[GameType]rewardRate{
	Chess:       {winnerXP: 150, winnerCoins: 100, loserXP: 50, loserCoins: 15},
	ConnectFour: {winnerXP: 75, winnerCoins: 40, loserXP: 30, loserCoins: 8},
	Reversi:     {winnerXP: 100, winnerCoins: 60, loserXP: 40, loserCoins: 12},
	Gomoku:      {winnerXP: 80, winnerCoins: 45, loserXP: 30, loserCoins: 10},
	Battleship:  {winnerXP: 120, winnerCoins: 70, loserXP: 45, loserCoins: 15},
	Mancala:     {winnerXP: 80, winnerCoins: 50, loserXP: 30, loserCoins: 10},
}

// Draws pay the same flat rate regardless of game.
const (
	drawXP    uint64 = 50
	drawCoins uint64 = 25
)

// RewardFor computes the payout for the roster slot given the room's
// outcome. A nil winner is a draw and pays both sides the shared draw
// rate.
func RewardFor(gameType GameType, winner *Player, slot int) Reward {
	if winner == nil {
		return Reward{XP: drawXP, Coins: drawCoins}
	}

	rate := rewardRates[gameType]
	if winner.Index() == slot {
		return Reward{XP: rate.winnerXP, Coins: rate.winnerCoins, IsWinner: true}
	}
	return Reward{XP: rate.loserXP, Coins: rate.loserCoins}
}
