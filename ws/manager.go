package ws

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/openarcade/arcade-server/tokens"
	"github.com/openarcade/arcade-server/util"
)

var (
	websocketUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	dialTimeout = 5 * time.Second
)

type wsQuery struct {
	Token string `form:"token" binding:"required"`
}

// MessageSink consumes inbound peer events one at a time.
type MessageSink interface {
	HandleMessage(ctx context.Context, evt Event) error
}

// Manager is the peer transport. Inbound peers connect to /peer and
// stream events that are handed to the sink; outbound sends dial the
// target node's /peer endpoint, write one event and hang up. Delivery
// is fire and forget, send errors are logged and dropped.
type Manager struct {
	nodeID string
	config *util.Config
	sink   MessageSink
}

func NewManager(nodeID string, config *util.Config, sink MessageSink) *Manager {
	return &Manager{
		nodeID: nodeID,
		config: config,
		sink:   sink,
	}
}

// ServePeer upgrades an authenticated peer connection and routes every
// event it delivers to the sink.
func (m *Manager) ServePeer(c *gin.Context) {
	// temporary: use request query to pass token
	var query wsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "token not sent",
		})
		return
	}

	if _, err := tokens.ParseJWTToken(query.Token, []byte(m.config.JWTSecret)); err != nil {
		c.IndentedJSON(http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := websocketUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error upgrading to websocket connection: %v\n", err)
		c.IndentedJSON(http.StatusInternalServerError, "something went wrong")
		return
	}
	defer conn.Close()

	for {
		var evt Event
		if err := conn.ReadJSON(&evt); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("error reading peer message: %v", err)
			}
			return
		}

		if err := m.sink.HandleMessage(c, evt); err != nil {
			log.Printf("error handling event %v from peer: %v", evt.Type, err)
		}
	}
}

// Send delivers an event to the target node. Messages addressed to this
// node skip the network and go straight to the sink. Remote delivery
// happens on its own goroutine so callers never block on a slow peer.
func (m *Manager) Send(target string, evt Event) {
	if target == m.nodeID {
		// Loop back off the caller's goroutine so a sender holding the
		// executor lock cannot deadlock on its own message.
		go func() {
			if err := m.sink.HandleMessage(context.Background(), evt); err != nil {
				log.Printf("error handling own event %v: %v", evt.Type, err)
			}
		}()
		return
	}

	go func() {
		if err := m.deliver(target, evt); err != nil {
			log.Printf("error delivering %v to %v: %v", evt.Type, target, err)
		}
	}()
}

func (m *Manager) deliver(target string, evt Event) error {
	token, err := tokens.NewJWTToken(jwt.MapClaims{
		"wallet":   m.nodeID,
		"username": m.nodeID,
	}, []byte(m.config.JWTSecret))
	if err != nil {
		return err
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     target,
		Path:     "/peer",
		RawQuery: url.Values{"token": {token}}.Encode(),
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(evt); err != nil {
		return err
	}

	return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Reachable reports whether the target node currently accepts peer
// connections. It is how callers resolve a room id before joining.
func (m *Manager) Reachable(target string) bool {
	if target == m.nodeID {
		return true
	}

	u := url.URL{Scheme: "ws", Host: target, Path: "/peer"}
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		// a handshake rejection still proves something is listening
		return resp != nil
	}
	conn.Close()
	return true
}
