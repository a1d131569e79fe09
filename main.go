package main

import (
	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/config"
	"github.com/skillbridge/marketplace-go/db"
	"github.com/skillbridge/marketplace-go/middleware"
	"github.com/skillbridge/marketplace-go/minio"
	"github.com/skillbridge/marketplace-go/routes"
)

func main() {
	config.LoadConfig()
	db.Init()
	minio.InitMinio()

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	routes.RegisterRoutes(r)
	r.Run(":" + config.ServerPort)
}
