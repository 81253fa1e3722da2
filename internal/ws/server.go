// Package ws pushes audit entries to connected admin dashboards over
// Socket.IO so the activity feed updates without polling.
package ws

import (
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/sirupsen/logrus"
)

// auditRoom is the room admin connections join to receive the feed
const auditRoom = "audit"

// NewServer creates and starts the Socket.IO server. Connections are
// admitted by AuthMiddleware on the HTTP route; admins join the audit
// room on connect.
func NewServer(logger *logrus.Entry) (*socketio.Server, error) {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		logger.WithField("client", s.ID()).Debug("websocket client connected")
		s.Join(auditRoom)
		s.Emit("connected", map[string]interface{}{"ok": true})
		return nil
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		logger.WithFields(logrus.Fields{"client": s.ID(), "reason": reason}).Debug("websocket client disconnected")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		id := "unknown"
		if s != nil {
			id = s.ID()
		}
		logger.WithField("client", id).WithError(e).Warn("websocket error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			logger.WithError(err).Error("websocket server stopped")
		}
	}()

	return server, nil
}
