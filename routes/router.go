package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/cache"
	"github.com/skillbridge/marketplace-go/chat"
	"github.com/skillbridge/marketplace-go/config"
	"github.com/skillbridge/marketplace-go/handlers"
	"github.com/skillbridge/marketplace-go/repositories"
	"github.com/skillbridge/marketplace-go/services"
)

func RegisterRoutes(r *gin.Engine) {

	// init
	repos_instance := repositories.New()
	hub := chat.NewHub()
	msg_cache := cache.New(config.RedisAddr, config.RedisPassword)
	services_instance := services.New(repos_instance, hub, msg_cache)
	handlers_instance := handlers.New(services_instance, hub)

	// setup
	r.GET("/ws/chat", handlers_instance.ChatSocket.Serve)

	projects := r.Group("/projects")
	{
		projects.GET("", handlers_instance.Project.GetProjects)
		projects.GET("/:id", handlers_instance.Project.GetProjectByID)
		projects.POST("", handlers_instance.Project.CreateProject)

		projects.GET("/:id/chats", handlers_instance.Chat.GetHistory)

		projects.POST("/:id/bids", handlers_instance.Negotiation.SubmitBid)
		projects.GET("/:id/bids", handlers_instance.Negotiation.GetBids)
		projects.POST("/:id/assign", handlers_instance.Negotiation.Assign)
		projects.POST("/:id/submission", handlers_instance.Negotiation.SubmitWork)
		projects.POST("/:id/submission/approve", handlers_instance.Negotiation.Approve)
		projects.POST("/:id/submission/reject", handlers_instance.Negotiation.Reject)
		projects.POST("/:id/submission/upload-url", handlers_instance.Project.CreateUploadURL)
	}
}
