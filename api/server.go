package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/openarcade/arcade-server/node"
	"github.com/openarcade/arcade-server/store"
	"github.com/openarcade/arcade-server/util"
	"github.com/openarcade/arcade-server/ws"
)

type Server struct {
	config    *util.Config
	node      *node.Node
	store     store.Store
	wsManager *ws.Manager
	router    *gin.Engine
}

func NewServer(config *util.Config, n *node.Node, s store.Store, wsManager *ws.Manager) *Server {
	router := gin.Default()

	server := &Server{
		config:    config,
		node:      n,
		store:     s,
		wsManager: wsManager,
		router:    router,
	}

	router.Any("/peer", server.wsManager.ServePeer)
	router.POST("/auth/token", server.TokenGenerator)

	authed := router.Group("/", server.AuthMiddleware)

	authed.POST("/register", server.Register)
	authed.PATCH("/profile", server.UpdateProfile)

	authed.POST("/rooms", server.CreateRoom)
	authed.POST("/rooms/join", server.JoinRoom)
	authed.POST("/rooms/leave", server.LeaveRoom)
	authed.POST("/rooms/clear", server.ClearRoom)
	authed.POST("/moves", server.MakeMove)
	authed.POST("/sync", server.SyncInbox)

	authed.GET("/state/chain", server.ChainInfo)
	authed.GET("/state/room", server.RoomState)
	authed.GET("/state/turn", server.TurnState)
	authed.GET("/state/valid-moves", server.ValidMoves)
	authed.GET("/state/mancala", server.MancalaState)
	authed.GET("/state/rooms/recent", server.RecentRooms)
	authed.GET("/state/profiles/:wallet", server.GetProfile)

	return server
}

func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%v", s.config.Port))
}
