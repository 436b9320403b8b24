package sessions

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// SessionUpdatesWS lets clients watch a session for live status and seat
// changes. The connection stays open until the client disconnects.
func SessionUpdatesWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[sessionID] = append(subscribers[sessionID], conn)
	mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[sessionID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[sessionID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastSessionUpdate pushes a JSON payload to every subscriber of a
// session, dropping connections that fail to write.
func BroadcastSessionUpdate(sessionID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Println("broadcast marshal error:", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[sessionID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[sessionID] = newList
}
