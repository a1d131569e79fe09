package handlers

import (
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/services"
)

type Handlers struct {
	Project     *ProjectHandler
	Negotiation *NegotiationHandler
	Chat        *ChatHandler
	ChatSocket  *ChatSocketHandler
}

func New(svc *services.Services, hub *chat.Hub) *Handlers {
	return &Handlers{
		Project:     NewProjectHandler(svc.Negotiation),
		Negotiation: NewNegotiationHandler(svc.Negotiation),
		Chat:        NewChatHandler(svc.Chat),
		ChatSocket:  NewChatSocketHandler(svc.Chat, hub),
	}
}
