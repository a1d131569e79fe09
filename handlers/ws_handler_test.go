package handlers_test

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/handlers"
	"github.com/skillbridge/marketplace-go/models"
	"github.com/skillbridge/marketplace-go/repositories"
	"github.com/skillbridge/marketplace-go/services"
)

type memMessageRepo struct {
	mu   sync.Mutex
	msgs map[uint][]models.Message
}

func (f *memMessageRepo) Append(projectID, senderID uint, text string) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.msgs == nil {
		f.msgs = make(map[uint][]models.Message)
	}
	msg := models.Message{
		ID:        uint(len(f.msgs[projectID]) + 1),
		ProjectID: projectID,
		SenderID:  senderID,
		Text:      text,
		Position:  int64(len(f.msgs[projectID]) + 1),
		CreatedAt: time.Now(),
	}
	f.msgs[projectID] = append(f.msgs[projectID], msg)
	return msg, nil
}

func (f *memMessageRepo) History(projectID uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Message, len(f.msgs[projectID]))
	copy(out, f.msgs[projectID])
	return out, nil
}

// serverEvent is loose enough to decode every outbound event type.
type serverEvent struct {
	Type      string           `json:"type"`
	ProjectID uint             `json:"projectId"`
	SenderID  uint             `json:"senderId"`
	Text      string           `json:"text"`
	Position  int64            `json:"position"`
	Messages  []models.Message `json:"messages"`
	Error     string           `json:"error"`
}

func newChatServer(t *testing.T) *httptest.Server {
	srv, _ := newChatServerWithHub(t)
	return srv
}

func newChatServerWithHub(t *testing.T) (*httptest.Server, *chat.Hub) {
	gin.SetMode(gin.TestMode)

	hub := chat.NewHub()
	repos := &repositories.Repos{Message: &memMessageRepo{}}
	svc := services.NewChatService(repos, hub, nil)
	handler := handlers.NewChatSocketHandler(svc, hub)

	r := gin.New()
	r.GET("/ws/chat", handler.Serve)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub
}

func dialChat(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		defer resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) serverEvent {
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev serverEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func joinRoom(t *testing.T, conn *websocket.Conn, projectID uint) serverEvent {
	if err := conn.WriteJSON(dto.ClientEvent{Type: dto.EventJoinRoom, ProjectID: projectID}); err != nil {
		t.Fatalf("join: %v", err)
	}
	ev := readEvent(t, conn)
	if ev.Type != dto.EventRoomHistory {
		t.Fatalf("expected room-history after join, got %q", ev.Type)
	}
	return ev
}

func TestMessageBroadcastIncludesSender(t *testing.T) {
	srv := newChatServer(t)

	a := dialChat(t, srv)
	b := dialChat(t, srv)

	joinRoom(t, a, 1)
	joinRoom(t, b, 1)

	if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 10, Text: "hello"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	gotA := readEvent(t, a)
	gotB := readEvent(t, b)

	for name, ev := range map[string]serverEvent{"sender echo": gotA, "peer": gotB} {
		if ev.Type != dto.EventMessage || ev.Text != "hello" || ev.SenderID != 10 {
			t.Fatalf("%s: unexpected event %+v", name, ev)
		}
	}
	if gotA.Position != gotB.Position {
		t.Fatalf("sender and peer saw different positions: %d vs %d", gotA.Position, gotB.Position)
	}
	if gotA.Position != 1 {
		t.Fatalf("first message should take position 1, got %d", gotA.Position)
	}
}

func TestHistoryOnJoinGoesToJoinerOnly(t *testing.T) {
	srv := newChatServer(t)

	a := dialChat(t, srv)
	joinRoom(t, a, 1)

	if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 10, Text: "first"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if ev := readEvent(t, a); ev.Type != dto.EventMessage {
		t.Fatalf("expected message echo, got %q", ev.Type)
	}

	b := dialChat(t, srv)
	history := joinRoom(t, b, 1)
	if len(history.Messages) != 1 || history.Messages[0].Text != "first" {
		t.Fatalf("joiner should get existing history, got %+v", history.Messages)
	}

	// the join must not have produced any event on A's connection
	_ = a.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var stray serverEvent
	if err := a.ReadJSON(&stray); err == nil {
		t.Fatalf("unexpected event on existing member during join: %+v", stray)
	}
}

func TestReconnectSeesPersistedHistoryInOrder(t *testing.T) {
	srv := newChatServer(t)

	a := dialChat(t, srv)
	joinRoom(t, a, 1)
	for _, text := range []string{"one", "two", "three"} {
		if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 5, Text: text}); err != nil {
			t.Fatalf("send: %v", err)
		}
		if ev := readEvent(t, a); ev.Type != dto.EventMessage {
			t.Fatalf("expected message event, got %q", ev.Type)
		}
	}
	a.Close()

	a2 := dialChat(t, srv)
	history := joinRoom(t, a2, 1)
	if len(history.Messages) != 3 {
		t.Fatalf("expected 3 messages after reconnect, got %d", len(history.Messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if history.Messages[i].Text != want || history.Messages[i].Position != int64(i+1) {
			t.Fatalf("history out of order at %d: %+v", i, history.Messages[i])
		}
	}
}

func TestBlankMessagesAreIgnored(t *testing.T) {
	srv := newChatServer(t)

	a := dialChat(t, srv)
	joinRoom(t, a, 1)

	if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 5, Text: "   "}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 5, Text: "real"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	ev := readEvent(t, a)
	if ev.Text != "real" || ev.Position != 1 {
		t.Fatalf("blank message should not consume a position: %+v", ev)
	}
}

func TestRejoinAfterBackpressureDropRestoresDelivery(t *testing.T) {
	srv, hub := newChatServerWithHub(t)

	a := dialChat(t, srv)
	joinRoom(t, a, 1)

	// b only sends; it never joins the room, so a is the sole member
	// and the membership count tells us exactly when a is dropped.
	b := dialChat(t, srv)

	// a stops reading; pump messages big enough to back up its writer
	// until the hub drops it mid-broadcast
	payload := strings.Repeat("x", 256*1024)
	deadline := time.Now().Add(15 * time.Second)
	for hub.Members(1) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("hub never dropped the stalled client")
		}
		if err := b.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 2, Text: payload}); err != nil {
			t.Fatalf("send: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	// a catches up: collect everything still buffered for it
	_ = a.SetReadDeadline(time.Time{})
	events := make(chan serverEvent, 256)
	go func() {
		defer close(events)
		for {
			var ev serverEvent
			if err := a.ReadJSON(&ev); err != nil {
				return
			}
			events <- ev
		}
	}()
drain:
	for {
		select {
		case <-events:
		case <-time.After(500 * time.Millisecond):
			break drain
		}
	}

	waitFor := func(match func(serverEvent) bool, what string) serverEvent {
		timeout := time.After(3 * time.Second)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					t.Fatalf("connection closed while waiting for %s", what)
				}
				if match(ev) {
					return ev
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %s", what)
			}
		}
	}

	// the connection is still up, so a fresh join-room must put a back
	// in the room, not just replay history
	if err := a.WriteJSON(dto.ClientEvent{Type: dto.EventJoinRoom, ProjectID: 1}); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	history := waitFor(func(ev serverEvent) bool { return ev.Type == dto.EventRoomHistory }, "room history")
	if len(history.Messages) == 0 {
		t.Fatal("rejoin returned empty history")
	}

	if err := b.WriteJSON(dto.ClientEvent{Type: dto.EventSendMessage, ProjectID: 1, SenderID: 2, Text: "after-rejoin"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	got := waitFor(func(ev serverEvent) bool {
		return ev.Type == dto.EventMessage && ev.Text == "after-rejoin"
	}, "post-rejoin broadcast")
	if got.Position <= int64(len(history.Messages)) {
		t.Fatalf("post-rejoin message has position %d, behind the %d already in history", got.Position, len(history.Messages))
	}
}

func TestUnknownEventYieldsError(t *testing.T) {
	srv := newChatServer(t)

	a := dialChat(t, srv)
	if err := a.WriteJSON(dto.ClientEvent{Type: "subscribe"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	ev := readEvent(t, a)
	if ev.Type != dto.EventError || ev.Error == "" {
		t.Fatalf("expected error event, got %+v", ev)
	}
}
