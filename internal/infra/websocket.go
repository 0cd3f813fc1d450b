package infra

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"boothtrack.in/internal/domain"
)

// WardAll subscribes a client to check-ins from every ward.
const WardAll = "*"

// WsHub manages dashboard WebSocket connections. Each client watches one
// ward topic (or all wards) and receives every check-in created there.
type WsHub struct {
	// conn -> subscribed ward topic
	clients map[*websocket.Conn]string

	// sendChannels stores a buffered channel for each client.
	// This helps avoid blocking the broadcast path if one client is slow.
	sendChannels map[*websocket.Conn]chan domain.LocationEvent

	mu sync.RWMutex

	Register   chan WardSubscription
	Unregister chan *websocket.Conn
}

// WardSubscription attaches a connection to a ward topic.
type WardSubscription struct {
	Conn *websocket.Conn
	Ward string
}

func NewWsHub() *WsHub {
	return &WsHub{
		clients:      make(map[*websocket.Conn]string),
		sendChannels: make(map[*websocket.Conn]chan domain.LocationEvent),
		Register:     make(chan WardSubscription),
		Unregister:   make(chan *websocket.Conn),
	}
}

func (h *WsHub) Start() {
	log.Println("WsHub: starting location feed hub...")
	for {
		select {
		case sub := <-h.Register:
			ward := sub.Ward
			if ward == "" {
				ward = WardAll
			}

			h.mu.Lock()
			h.clients[sub.Conn] = ward

			sendCh := make(chan domain.LocationEvent, 64)
			h.sendChannels[sub.Conn] = sendCh
			h.mu.Unlock()

			// Dedicated writer goroutine per connection.
			go func(conn *websocket.Conn, ch chan domain.LocationEvent) {
				for event := range ch {
					if err := conn.WriteJSON(event); err != nil {
						// On error, let the connection close and unregister handle it
						log.Printf("WsHub: write error: %v", err)
						conn.Close()
						return
					}
				}
			}(sub.Conn, sendCh)

			log.Printf("WsHub: client subscribed to ward %q", ward)

		case conn := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				if ch, exists := h.sendChannels[conn]; exists {
					close(ch)
					delete(h.sendChannels, conn)
				}
			}
			h.mu.Unlock()
			log.Println("WsHub: client disconnected")
		}
	}
}

// Broadcast delivers a check-in to every client watching its ward.
func (h *WsHub) Broadcast(event domain.LocationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn, ward := range h.clients {
		if ward != WardAll && ward != event.WardNumber {
			continue
		}
		if ch, exists := h.sendChannels[conn]; exists {
			select {
			case ch <- event:
			default:
				// Buffer full: drop the event for this slow client.
			}
		}
	}
}
