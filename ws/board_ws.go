package ws

import (
	"log"
	"net/http"
	"sync"

	"dispatchboard/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// BoardHub pushes a full board snapshot to every connected operator after
// each committed change. Clients never send board data over the socket; the
// read loop exists only to notice the close.
type BoardHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan services.BoardSnapshot
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewBoardHub() *BoardHub {
	return &BoardHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan services.BoardSnapshot, 8),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run dispatches register/unregister/broadcast events until the process exits.
func (h *BoardHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case snap := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(snap); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a snapshot for delivery. Dropping is fine when the hub is
// backed up; a newer snapshot supersedes the missed one.
func (h *BoardHub) Broadcast(snap services.BoardSnapshot) {
	select {
	case h.broadcast <- snap:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/board
func (h *BoardHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
