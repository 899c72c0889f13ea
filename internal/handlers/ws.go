package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/worklet-dev/worklet/internal/types"
)

var (
	projectWatchers   = make(map[string]map[*websocket.Conn]bool)
	projectWatchersMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every client watching a project that its session
// data changed and should be re-fetched.
func BroadcastRefresh(projectID string) {
	projectWatchersMu.RLock()
	watchers, exists := projectWatchers[projectID]
	if !exists || len(watchers) == 0 {
		projectWatchersMu.RUnlock()
		return
	}

	conns := make([]*websocket.Conn, 0, len(watchers))
	for conn := range watchers {
		conns = append(conns, conn)
	}
	projectWatchersMu.RUnlock()

	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       "refresh",
			"message":    "Session data updated",
			"project_id": projectID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			removeWatcher(projectID, conn)
			conn.Close()
		}
	}
}

func removeWatcher(projectID string, conn *websocket.Conn) {
	projectWatchersMu.Lock()
	defer projectWatchersMu.Unlock()

	if watchers, exists := projectWatchers[projectID]; exists {
		delete(watchers, conn)

		if len(watchers) == 0 {
			delete(projectWatchers, projectID)
		}
	}
}

// WebSocket registers the client as a watcher of one project and keeps
// the connection alive with pings until the client goes away.
func WebSocket(c *gin.Context) {
	projectID := c.Param("project_id")

	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	projectWatchersMu.Lock()
	if projectWatchers[projectID] == nil {
		projectWatchers[projectID] = make(map[*websocket.Conn]bool)
	}
	projectWatchers[projectID][conn] = true
	projectWatchersMu.Unlock()

	defer func() {
		removeWatcher(projectID, conn)
		conn.Close()
		log.Printf("WebSocket connection closed for project %s", projectID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":       "connected",
		"message":    "WebSocket connection established",
		"project_id": projectID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for project %s: %v", projectID, err)
			}
			break
		}
	}
}
