package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/digitalburnout/burnout-backend/internal/models"
	"github.com/digitalburnout/burnout-backend/internal/services"
)

// DashboardRefreshInterval is how often the live feed re-resolves and pushes
// the snapshot to a connected shell.
const DashboardRefreshInterval = 30 * time.Second

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// DashboardEvent is what the live feed pushes to the desktop shell.
type DashboardEvent struct {
	Type      string                     `json:"type"` // "snapshot" or "error"
	Snapshot  *models.DashboardSnapshot  `json:"snapshot,omitempty"`
	Source    services.Source            `json:"source,omitempty"`
	Error     string                     `json:"error,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}

// DashboardFeed streams the resolved dashboard snapshot over a WebSocket so
// the shell can refresh without polling. The token comes from the standard
// Authorization header, or the `token` query parameter for browser WebSocket
// clients that cannot set headers.
func DashboardFeed(w http.ResponseWriter, r *http.Request) {
	token := ""
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "missing auth token", http.StatusUnauthorized)
		return
	}

	claims, err := services.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid auth token", http.StatusForbidden)
		return
	}

	conn, err := dashboardUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reader loop only watches for disconnect; the feed is one-way.
	go func() {
		defer cancel()
		conn.SetReadLimit(4 * 1024)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pushSnapshot(ctx, conn, claims.UserID)

	ticker := time.NewTicker(DashboardRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !pushSnapshot(ctx, conn, claims.UserID) {
				return
			}
		}
	}
}

// pushSnapshot resolves and writes one snapshot event; returns false when the
// connection is gone.
func pushSnapshot(ctx context.Context, conn *websocket.Conn, userID string) bool {
	resolveCtx, cancel := context.WithTimeout(ctx, metricsQueryTimeout)
	defer cancel()

	snap, source, err := services.ResolveSnapshot(resolveCtx, userID)
	if err != nil {
		evt := DashboardEvent{
			Type:      "error",
			Error:     "dashboard data unavailable",
			Timestamp: time.Now().UTC(),
		}
		return conn.WriteJSON(evt) == nil
	}

	evt := DashboardEvent{
		Type:      "snapshot",
		Snapshot:  snap,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	return conn.WriteJSON(evt) == nil
}
