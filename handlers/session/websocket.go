package session

import (
	"encoding/json"
	"net/http"
	"sync"

	"cofoundly/backend/handlers/auth"

	"github.com/gorilla/websocket"
)

var sessionConnections = make(map[int]*websocket.Conn)
var sessionLock sync.Mutex

// HandleSessionWebSocket upgrades a client into a session-change
// subscription. Clients receive sign-out events instead of polling the
// session endpoint.
func HandleSessionWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		mockReq := &http.Request{
			Header: http.Header{
				"Authorization": []string{"Bearer " + token},
			},
		}

		userID, err := auth.GetUserIDFromToken(mockReq)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		upgrader := websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		defer func() {
			sessionLock.Lock()
			if sessionConnections[userID] == conn {
				delete(sessionConnections, userID)
			}
			sessionLock.Unlock()
			conn.Close()
		}()

		// register and greet under one lock hold; every write to the
		// connection happens under sessionLock, so broadcasts never race
		// the greeting on the single-writer connection
		sessionLock.Lock()
		sessionConnections[userID] = conn
		data, _ := json.Marshal(map[string]string{"type": "connected"})
		err = conn.WriteMessage(websocket.TextMessage, data)
		sessionLock.Unlock()
		if err != nil {
			return
		}

		// read loop only detects the close; pings are answered by the
		// library's default ping handler
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

// Broadcast pushes a session-change event to a user's open subscription.
// The write happens under sessionLock so concurrent broadcasts never hit
// the connection's single-writer limit.
func Broadcast(userID int, event string) {
	sessionLock.Lock()
	defer sessionLock.Unlock()

	if conn, exists := sessionConnections[userID]; exists {
		data, _ := json.Marshal(map[string]string{
			"type": event,
		})
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
