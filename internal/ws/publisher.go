package ws

import (
	socketio "github.com/googollee/go-socket.io"
	"github.com/sirupsen/logrus"

	"go_backoffice/internal/audit"
)

// Publisher broadcasts audit entries to the audit room. Broadcasting is
// best-effort: a failure never affects the request that produced the
// entry.
type Publisher struct {
	server *socketio.Server
	logger *logrus.Entry
}

// NewPublisher creates a publisher bound to a running server. A nil
// server yields a no-op publisher, which keeps the audit log usable
// when the websocket layer is disabled.
func NewPublisher(server *socketio.Server, logger *logrus.Entry) *Publisher {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Publisher{server: server, logger: logger}
}

// AuditEvent pushes one entry to connected admin dashboards
func (p *Publisher) AuditEvent(entry audit.Entry) {
	if p.server == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("entry_id", entry.ID).Warnf("audit broadcast panicked: %v", r)
		}
	}()

	p.server.BroadcastToRoom("/", auditRoom, "audit:event", map[string]interface{}{
		"id":        entry.ID,
		"action":    entry.Action,
		"actor":     entry.Actor,
		"timestamp": entry.Timestamp,
		"entity": map[string]interface{}{
			"type": entry.EntityType,
			"id":   entry.EntityID,
		},
		"meta": entry.Meta,
	})
}
