package main

import (
	"os"
	"time"

	"go-restaurant-pos/controllers"
	"go-restaurant-pos/cosmic"
	"go-restaurant-pos/middleware"
	"go-restaurant-pos/notifications"
	"go-restaurant-pos/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	hub := notifications.NewHub()
	controllers.Init(cosmic.NewClient(), hub)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// signup and login stay open, the POS surface requires a staff token
	routes.UserRoutes(router)
	router.Use(middleware.Authentication())
	routes.ProductRoutes(router)
	routes.TableRoutes(router)
	routes.OrderRoutes(router)
	routes.CartRoutes(router)
	routes.StatsRoutes(router)
	router.GET("/ws", hub.HandleWebSocket())

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
