package game

// CanMove reports whether the wallet may act right now: the room must be
// in progress and it must be the wallet's turn. The Battleship setup
// phase is the exception, both players place fleets independently.
func (r *Room) CanMove(wallet string) bool {
	if r.Status != StatusInProgress {
		return false
	}
	player, ok := r.PlayerFor(wallet)
	if !ok {
		return false
	}
	if r.InSetupPhase() {
		return true
	}
	return r.CurrentTurn == player
}

// InSetupPhase reports whether a Battleship room is still placing fleets.
func (r *Room) InSetupPhase() bool {
	if r.GameType != Battleship {
		return false
	}
	board, ok := r.Board.(*BattleshipBoard)
	return ok && board.SetupPhase
}

// ApplyMove validates the mover and routes the payload to the room's
// board engine, then applies the normalized verdict: flip the turn on a
// non-terminal switching move, or settle status and winner on a terminal
// one. The timestamp is stamped on every accepted move.
func (r *Room) ApplyMove(wallet string, mv MoveData, now int64) (MoveResult, error) {
	if r.Status != StatusInProgress {
		return MoveResult{}, ErrGameNotInProgress
	}

	player, ok := r.PlayerFor(wallet)
	if !ok {
		return MoveResult{}, ErrNotInRoom
	}

	if !r.InSetupPhase() && r.CurrentTurn != player {
		return MoveResult{}, ErrNotYourTurn
	}

	result, ok := r.dispatch(player, mv)
	if !ok {
		return MoveResult{}, ErrInvalidMove
	}

	if result.SwitchTurn && !result.Ended {
		r.CurrentTurn = r.CurrentTurn.Other()
	}

	if result.Ended {
		if result.Winner != nil {
			r.Status = StatusFinished
			r.Winner = result.Winner
		} else {
			r.Status = StatusDraw
		}
	}

	r.LastMoveAt = now

	return result, nil
}

// dispatch runs the engine for the room's game type. ok is false for any
// engine rejection; callers collapse that into ErrInvalidMove.
func (r *Room) dispatch(player Player, mv MoveData) (MoveResult, bool) {
	switch board := r.Board.(type) {
	case *ChessBoard:
		return r.chessMove(board, player, mv)
	case *ConnectFourBoard:
		return r.connectFourMove(board, player, mv)
	case *ReversiBoard:
		return r.reversiMove(board, player, mv)
	case *GomokuBoard:
		return r.gomokuMove(board, player, mv)
	case *BattleshipBoard:
		return r.battleshipMove(board, player, mv)
	case *MancalaBoard:
		return r.mancalaMove(board, player, mv)
	}
	return MoveResult{}, false
}

func (r *Room) chessMove(board *ChessBoard, player Player, mv MoveData) (MoveResult, bool) {
	if mv.Secondary == "" {
		return MoveResult{}, false
	}
	if !board.MakeMove(mv.Secondary, player == PlayerOne) {
		return MoveResult{}, false
	}
	// No automatic terminal detection: chess games end outside the engine.
	return MoveResult{SwitchTurn: true}, true
}

func (r *Room) connectFourMove(board *ConnectFourBoard, player Player, mv MoveData) (MoveResult, bool) {
	if board.DropPiece(int(mv.Primary), player) < 0 {
		return MoveResult{}, false
	}
	if winner := board.CheckWinner(); winner != nil {
		return MoveResult{Ended: true, Winner: winner}, true
	}
	if board.IsFull() {
		return MoveResult{Ended: true}, true
	}
	return MoveResult{SwitchTurn: true}, true
}

func (r *Room) reversiMove(board *ReversiBoard, player Player, mv MoveData) (MoveResult, bool) {
	if mv.Primary < 0 {
		// Passing is only legal with no placement available.
		if board.HasValidMoves(player) {
			return MoveResult{}, false
		}
		board.Pass()
	} else if board.MakeMove(int(mv.Primary), player) == 0 {
		return MoveResult{}, false
	}

	if board.IsGameOver() {
		return MoveResult{Ended: true, Winner: board.Winner()}, true
	}

	// Hand the turn over only if the next player can actually place;
	// otherwise the mover goes again.
	return MoveResult{SwitchTurn: board.HasValidMoves(player.Other())}, true
}

func (r *Room) gomokuMove(board *GomokuBoard, player Player, mv MoveData) (MoveResult, bool) {
	if !board.MakeMove(int(mv.Primary), player) {
		return MoveResult{}, false
	}
	if winner := board.CheckWinner(); winner != nil {
		return MoveResult{Ended: true, Winner: winner}, true
	}
	if board.IsFull() {
		return MoveResult{Ended: true}, true
	}
	return MoveResult{SwitchTurn: true}, true
}

func (r *Room) battleshipMove(board *BattleshipBoard, player Player, mv MoveData) (MoveResult, bool) {
	if board.SetupPhase {
		if mv.Secondary == "" {
			return MoveResult{}, false
		}
		if !board.PlaceShips(player, mv.Secondary) {
			return MoveResult{}, false
		}
		// Placement never hands the turn over; once both fleets are in,
		// the attack phase opens with player one to move.
		return MoveResult{}, true
	}

	ok, _, _ := board.Attack(player, int(mv.Primary))
	if !ok {
		return MoveResult{}, false
	}

	if winner := board.CheckWinner(); winner != nil {
		return MoveResult{Ended: true, Winner: winner}, true
	}
	return MoveResult{SwitchTurn: true}, true
}

func (r *Room) mancalaMove(board *MancalaBoard, player Player, mv MoveData) (MoveResult, bool) {
	again, ok := board.MakeMove(int(mv.Primary), player)
	if !ok {
		return MoveResult{}, false
	}

	if board.IsGameOver() {
		return MoveResult{Ended: true, Winner: board.Finalize()}, true
	}

	// Landing in the own store keeps the turn.
	return MoveResult{SwitchTurn: !again}, true
}
