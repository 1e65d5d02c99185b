package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/store"
)

// Read-only surface. Queries go straight to the store; the executor
// lock is not needed for point-in-time reads.

func (s *Server) ChainInfo(c *gin.Context) {
	hosting, err := s.store.Hosting(c.Request.Context())
	if err != nil {
		s.queryError(c, err)
		return
	}

	joinedHost, err := s.store.JoinedHost(c.Request.Context())
	if err != nil {
		s.queryError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("chain info", gin.H{
		"chain_id":    s.node.ID(),
		"hosting":     hosting,
		"joined_host": joinedHost,
	}))
}

// RoomState returns the full room snapshot: status, game type, rosters,
// turn, winner, timestamps and the board for the room's game.
func (s *Server) RoomState(c *gin.Context) {
	room, err := s.store.Room(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(game.ErrRoomNotFound.Error()))
		return
	}
	if err != nil {
		s.queryError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("room state", room))
}

func (s *Server) TurnState(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	room, err := s.store.Room(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(game.ErrRoomNotFound.Error()))
		return
	}
	if err != nil {
		s.queryError(c, err)
		return
	}

	player, seated := room.PlayerFor(authPayload.Wallet)

	c.JSON(http.StatusOK, successResponse("turn state", gin.H{
		"status":       room.Status,
		"current_turn": room.CurrentTurn,
		"winner":       room.Winner,
		"seated":       seated,
		"player":       player,
		"is_my_turn":   seated && room.Status == game.StatusInProgress && room.CurrentTurn == player,
		"can_move":     room.CanMove(authPayload.Wallet),
		"setup_phase":  room.InSetupPhase(),
	}))
}

// ValidMoves enumerates legal placements for the games that have a
// cheap enumeration: open Connect Four columns and Reversi placements
// for the caller's seat.
func (s *Server) ValidMoves(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	room, err := s.store.Room(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(game.ErrRoomNotFound.Error()))
		return
	}
	if err != nil {
		s.queryError(c, err)
		return
	}

	switch board := room.Board.(type) {
	case *game.ConnectFourBoard:
		c.JSON(http.StatusOK, successResponse("valid moves", gin.H{
			"game_type":     room.GameType,
			"valid_columns": board.ValidColumns(),
		}))
	case *game.ReversiBoard:
		if !slices.Contains(room.Wallets, authPayload.Wallet) {
			c.JSON(http.StatusBadRequest, errorResponse(game.ErrNotInRoom.Error()))
			return
		}
		player, _ := room.PlayerFor(authPayload.Wallet)
		moves := board.ValidMoves(player)
		c.JSON(http.StatusOK, successResponse("valid moves", gin.H{
			"game_type":   room.GameType,
			"valid_moves": moves,
			"must_pass":   len(moves) == 0,
		}))
	default:
		c.JSON(http.StatusBadRequest, errorResponse("no move enumeration for this game type"))
	}
}

// MancalaState exposes the pit and store views each side sees.
func (s *Server) MancalaState(c *gin.Context) {
	room, err := s.store.Room(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(game.ErrRoomNotFound.Error()))
		return
	}
	if err != nil {
		s.queryError(c, err)
		return
	}

	board, ok := room.Board.(*game.MancalaBoard)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("room is not a Mancala game"))
		return
	}

	p1Store, p2Store := board.Stores()

	c.JSON(http.StatusOK, successResponse("mancala state", gin.H{
		"player_one_pits":  board.PlayerPits(0),
		"player_two_pits":  board.PlayerPits(1),
		"player_one_store": p1Store,
		"player_two_store": p2Store,
		"total_stones":     lo.Sum(board.Pits),
	}))
}

func (s *Server) RecentRooms(c *gin.Context) {
	rooms, err := s.store.RecentRooms(c.Request.Context())
	if err != nil {
		s.queryError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("recent rooms", gin.H{
		"rooms": rooms,
	}))
}

type profileRequest struct {
	Wallet string `uri:"wallet" binding:"required"`
}

func (s *Server) GetProfile(c *gin.Context) {
	var data profileRequest
	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	profile, err := s.store.Profile(c.Request.Context(), data.Wallet)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse(game.ErrNotRegistered.Error()))
		return
	}
	if err != nil {
		s.queryError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("profile", profile))
}

func (s *Server) queryError(c *gin.Context, err error) {
	log.Println("query error:", err)
	c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
}
