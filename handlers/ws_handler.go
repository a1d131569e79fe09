package handlers

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

// wsClient adapts one websocket connection to chat.Client. Events are
// handed to a buffered channel drained by a single writer goroutine;
// a full buffer means the peer is not keeping up and the hub may drop
// the client.
type wsClient struct {
	conn *websocket.Conn
	send chan interface{}
	done chan struct{}
	once sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan interface{}, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *wsClient) Deliver(event interface{}) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) shutdown() {
	c.once.Do(func() { close(c.done) })
}

// ChatSocketHandler is the realtime gateway: it owns no state of its
// own, it only relays between the connection, the hub and the chat
// service.
type ChatSocketHandler struct {
	svc *services.ChatService
	hub *chat.Hub
}

func NewChatSocketHandler(svc *services.ChatService, hub *chat.Hub) *ChatSocketHandler {
	return &ChatSocketHandler{svc: svc, hub: hub}
}

// GET /ws/chat
//
// A fresh connection belongs to no room; it must send join-room first.
// Joining hands the full room history back to this connection only.
// send-message persists, then the stored record is broadcast to the
// whole room, the sender included, so every member sees the
// authoritative position and timestamp.
func (h *ChatSocketHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := newWSClient(conn)
	go client.writePump()

	subs := make(map[uint]*chat.Subscription)
	defer func() {
		for _, sub := range subs {
			sub.Cancel()
		}
		h.hub.Leave(client)
		client.shutdown()
	}()

	ctx := c.Request.Context()
	for {
		var ev dto.ClientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("chat socket read: %v", err)
			}
			return
		}

		switch ev.Type {
		case dto.EventJoinRoom:
			// Always re-join: the hub may have dropped this client
			// under backpressure while the connection stayed up, and
			// a fresh join-room must restore delivery.
			if old, ok := subs[ev.ProjectID]; ok {
				old.Cancel()
			}
			subs[ev.ProjectID] = h.hub.Join(ev.ProjectID, client)
			history, err := h.svc.History(ctx, ev.ProjectID)
			if err != nil {
				client.Deliver(dto.SocketErrorEvent{Type: dto.EventError, Error: err.Error()})
				continue
			}
			client.Deliver(dto.RoomHistoryEvent{
				Type:      dto.EventRoomHistory,
				ProjectID: ev.ProjectID,
				Messages:  history,
			})

		case dto.EventSendMessage:
			if strings.TrimSpace(ev.Text) == "" {
				continue
			}
			if _, err := h.svc.SendMessage(ev.ProjectID, ev.SenderID, ev.Text); err != nil {
				client.Deliver(dto.SocketErrorEvent{Type: dto.EventError, Error: err.Error()})
			}

		default:
			client.Deliver(dto.SocketErrorEvent{Type: dto.EventError, Error: "unknown event type"})
		}
	}
}
