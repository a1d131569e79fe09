// Package chat holds the in-process room registry for project chat.
// Membership is ephemeral: it exists only while a connection is up and
// is rebuilt when a client reconnects. Nothing here touches storage.
package chat

import "sync"

// Client is one connected chat participant. Deliver hands an event to
// the client and reports false when the client is dead or backed up,
// in which case the hub drops it from the room.
type Client interface {
	Deliver(event interface{}) bool
}

// Hub maps project IDs to the set of live clients in that project's
// room. Rooms are created lazily on first join; a join is never
// validated against project existence.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[Client]struct{})}
}

// Join adds the client to the project's room, creating the room if
// needed. Joining a room twice is a no-op. The returned subscription
// cancels exactly this membership.
func (h *Hub) Join(projectID uint, c Client) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[projectID]
	if room == nil {
		room = make(map[Client]struct{})
		h.rooms[projectID] = room
	}
	room[c] = struct{}{}

	return &Subscription{hub: h, projectID: projectID, client: c}
}

// Leave removes the client from every room it belongs to. Safe to call
// for a client that never joined.
func (h *Hub) Leave(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for projectID, room := range h.rooms {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
}

// Broadcast delivers the event to every current member of the room.
// Delivery is best-effort per client: a member that fails to accept
// the event is pruned, not retried.
func (h *Hub) Broadcast(projectID uint, event interface{}) {
	h.mu.RLock()
	room := h.rooms[projectID]
	members := make([]Client, 0, len(room))
	for c := range room {
		members = append(members, c)
	}
	h.mu.RUnlock()

	var dead []Client
	for _, c := range members {
		if !c.Deliver(event) {
			dead = append(dead, c)
		}
	}

	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	if room := h.rooms[projectID]; room != nil {
		for _, c := range dead {
			delete(room, c)
		}
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
	h.mu.Unlock()
}

// Members reports the current size of a room.
func (h *Hub) Members(projectID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[projectID])
}

// Subscription is a cancellable handle for one client's membership in
// one room. Cancel is idempotent.
type Subscription struct {
	hub       *Hub
	projectID uint
	client    Client
	once      sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if room := s.hub.rooms[s.projectID]; room != nil {
			delete(room, s.client)
			if len(room) == 0 {
				delete(s.hub.rooms, s.projectID)
			}
		}
	})
}
