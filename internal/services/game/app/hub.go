package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/encore/internal/sim/action"
)

// Hub keeps the registry of connected clients and fans state updates out
// to all of them. Run must be started in its own goroutine.
type Hub struct {
	session    *Session
	replyDelay time.Duration

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

// defaultReplyDelay keeps simulated accounts from answering instantly.
const defaultReplyDelay = 4 * time.Second

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub serving one game session.
func NewHub(session *Session) *Hub {
	return &Hub{
		session:    session,
		replyDelay: defaultReplyDelay,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run is the hub's event loop. It exits when the context ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// A full buffer means the client stopped reading.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// BroadcastState pushes the current snapshot to every client.
func (h *Hub) BroadcastState() {
	snap := h.session.Snapshot()
	data, err := json.Marshal(serverMessage{Type: "state", Payload: snap})
	if err != nil {
		log.Printf("encode state broadcast: %v", err)
		return
	}
	h.broadcast <- data
}

// deliverReply answers a direct message in the background. Failures only
// log: the conversation simply stays unanswered.
func (h *Hub) deliverReply(to string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Simulated accounts take a while to type.
	select {
	case <-time.After(h.replyDelay):
	case <-ctx.Done():
		return
	}

	snap, err := h.session.DeliverReply(ctx, to)
	if err != nil {
		log.Printf("reply from %q: %v", to, err)
		return
	}
	if snap != nil {
		h.BroadcastState()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a websocket and attaches it to the
// hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- c

	go c.writePump()
	go c.readPump(r.Context())

	// New connections get the current state immediately.
	if snap := h.session.Snapshot(); snap != nil {
		if data, err := json.Marshal(serverMessage{Type: "state", Payload: snap}); err == nil {
			c.send <- data
		}
	}
}

// readPump decodes inbound command envelopes and applies them to the
// session, broadcasting the new state after each accepted command.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(serverMessage{Type: "error", Error: "malformed message"})
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *client) handle(ctx context.Context, msg clientMessage) {
	switch msg.Type {
	case "command":
		cmd, err := decodeCommand(msg.Command, msg.Payload)
		if err != nil {
			c.reply(serverMessage{Type: "error", Error: err.Error()})
			return
		}
		_, changed, err := c.hub.session.Dispatch(ctx, cmd)
		if err != nil {
			log.Printf("dispatch %q: %v", msg.Command, err)
			c.reply(serverMessage{Type: "error", Error: "command failed"})
			return
		}
		if changed {
			c.hub.BroadcastState()
			if send, ok := cmd.(action.SendMessage); ok {
				go c.hub.deliverReply(send.To)
			}
		} else {
			c.reply(serverMessage{Type: "rejected", Payload: msg.Command})
		}
	case "export":
		data, err := c.hub.session.Export()
		if err != nil {
			c.reply(serverMessage{Type: "error", Error: "export failed"})
			return
		}
		c.reply(serverMessage{Type: "export", Payload: json.RawMessage(data)})
	case "import":
		if _, err := c.hub.session.Import(ctx, msg.Payload); err != nil {
			c.reply(serverMessage{Type: "error", Error: err.Error()})
			return
		}
		c.hub.BroadcastState()
	default:
		c.reply(serverMessage{Type: "error", Error: "unknown message type"})
	}
}

func (c *client) reply(msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("encode reply: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
}
