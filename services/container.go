package services

import (
	"github.com/skillbridge/marketplace-go/cache"
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/repositories"
)

type Services struct {
	Negotiation *NegotiationService
	Chat        *ChatService
}

func New(repos *repositories.Repos, hub *chat.Hub, msgCache *cache.MessageCache) *Services {
	return &Services{
		Negotiation: NewNegotiationService(repos),
		Chat:        NewChatService(repos, hub, msgCache),
	}
}
