package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/tokens"
)

type tokenRequest struct {
	Username string `json:"username" binding:"required"`
	Wallet   string `json:"wallet"`
}

// Issues a signed identity token. A wallet address may be supplied; a
// fresh one is minted when absent.
func (s *Server) TokenGenerator(c *gin.Context) {
	var data tokenRequest

	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	if data.Wallet == "" {
		data.Wallet = uuid.NewString()
	}

	token, err := tokens.NewJWTToken(jwt.MapClaims{
		"username": data.Username,
		"wallet":   data.Wallet,
	}, []byte(s.config.JWTSecret))

	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	c.JSON(http.StatusOK, successResponse("Auth data", gin.H{
		"wallet":   data.Wallet,
		"username": data.Username,
		"token":    token,
	}))
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
}

func (s *Server) Register(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data registerRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	profile, err := s.node.Register(c.Request.Context(), authPayload.Wallet, data.Username)
	if err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Registered", profile))
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

func (s *Server) UpdateProfile(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data updateProfileRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	profile, err := s.node.UpdateProfile(c.Request.Context(), authPayload.Wallet, data.Username)
	if err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Profile updated", profile))
}

type createRoomRequest struct {
	GameType game.GameType `json:"game_type" binding:"required"`
}

func (s *Server) CreateRoom(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data createRoomRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	if !data.GameType.Valid() {
		c.JSON(http.StatusUnprocessableEntity, errorResponse("unknown game type"))
		return
	}

	room, err := s.node.CreateRoom(c.Request.Context(), authPayload.Wallet, data.GameType)
	if err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Room created", gin.H{
		"host_id": room.HostID,
		"room":    room,
	}))
}

type joinRoomRequest struct {
	HostID string `json:"host_id" binding:"required"`
}

func (s *Server) JoinRoom(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data joinRoomRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	if err := s.node.JoinRoom(c.Request.Context(), authPayload.Wallet, data.HostID); err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Join requested", gin.H{
		"host_id": data.HostID,
		"message": "join request sent, awaiting host snapshot",
	}))
}

func (s *Server) LeaveRoom(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	if err := s.node.LeaveRoom(c.Request.Context(), authPayload.Wallet); err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Left room", nil))
}

func (s *Server) ClearRoom(c *gin.Context) {
	if err := s.node.ClearRoom(c.Request.Context()); err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Room cleared", nil))
}

type moveRequest struct {
	Primary   int32  `json:"primary"`
	Secondary string `json:"secondary"`
}

func (s *Server) MakeMove(c *gin.Context) {
	authPayload, ok := GetPayload(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
		return
	}

	var data moveRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	room, result, err := s.node.MakeMove(c.Request.Context(), authPayload.Wallet, game.MoveData{
		Primary:   data.Primary,
		Secondary: data.Secondary,
	})
	if err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Move applied", gin.H{
		"success":    true,
		"game_ended": result.Ended,
		"winner":     result.Winner,
		"status":     room.Status,
	}))
}

func (s *Server) SyncInbox(c *gin.Context) {
	if err := s.node.SyncInbox(c.Request.Context()); err != nil {
		s.operationError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Inbox synced", nil))
}

// operationError translates the node's error taxonomy to a status code.
// The taxonomy name is the response message, so clients switch on it.
func (s *Server) operationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrNotRegistered), errors.Is(err, game.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, game.ErrAlreadyRegistered), errors.Is(err, game.ErrRoomAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, game.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, game.ErrGameNotInProgress),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotInRoom),
		errors.Is(err, game.ErrCannotJoinOwnRoom),
		errors.Is(err, game.ErrInvalidMove):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		log.Println("operation error:", err)
		c.JSON(http.StatusInternalServerError, errorResponse(ErrorMessage500))
	}
}
