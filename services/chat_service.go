package services

import (
	"context"
	"log"

	"github.com/skillbridge/marketplace-go/cache"
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/models"
	"github.com/skillbridge/marketplace-go/repositories"
)

// ChatService ties the message store to the room hub. The per-room
// lock spans append and broadcast, so the order in which appends are
// accepted is exactly the order every room member observes.
type ChatService struct {
	Repos *repositories.Repos
	Hub   *chat.Hub
	Cache *cache.MessageCache
	rooms keyedMutex
}

func NewChatService(repos *repositories.Repos, hub *chat.Hub, msgCache *cache.MessageCache) *ChatService {
	return &ChatService{Repos: repos, Hub: hub, Cache: msgCache}
}

// SendMessage persists the message, mirrors it into the cache and
// broadcasts the stored record, position and server timestamp included,
// to every room member, the sender among them. The caller's own copy of
// the text is never echoed back; only the authoritative record is.
func (s *ChatService) SendMessage(projectID, senderID uint, text string) (models.Message, error) {
	unlock := s.rooms.Lock(projectID)
	defer unlock()

	msg, err := s.Repos.Message.Append(projectID, senderID, text)
	if err != nil {
		return models.Message{}, storageError("append message", err)
	}

	// Background, not the caller's context: once the append is
	// accepted the cache must track it even if the sender's
	// connection is already gone. A warm cache missing this message
	// would serve incomplete history, so a failed push invalidates.
	if err := s.Cache.Push(context.Background(), projectID, msg); err != nil {
		log.Printf("chat: cache push for project %d: %v", projectID, err)
		if err := s.Cache.Invalidate(context.Background(), projectID); err != nil {
			log.Printf("chat: cache invalidate for project %d: %v", projectID, err)
		}
	}

	s.Hub.Broadcast(projectID, dto.NewMessageEvent(msg))
	return msg, nil
}

// History returns the full ordered history for a room, serving from
// the cache when it is warm and rebuilding it from the store when not.
func (s *ChatService) History(ctx context.Context, projectID uint) ([]models.Message, error) {
	if messages, ok := s.Cache.Get(ctx, projectID); ok {
		return messages, nil
	}

	// The rebuild takes the room lock so Fill cannot interleave with
	// a concurrent send: a Fill racing an append would warm the key
	// without the new message, and every later push would land on
	// that stale list until the TTL.
	unlock := s.rooms.Lock(projectID)
	defer unlock()

	if messages, ok := s.Cache.Get(ctx, projectID); ok {
		return messages, nil
	}

	messages, err := s.Repos.Message.History(projectID)
	if err != nil {
		return nil, storageError("load history", err)
	}

	if len(messages) > 0 {
		if err := s.Cache.Fill(ctx, projectID, messages); err != nil {
			log.Printf("chat: cache fill for project %d: %v", projectID, err)
		}
	}
	return messages, nil
}
