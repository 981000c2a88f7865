package routes

import (
	"go-restaurant-pos/controllers"

	"github.com/gin-gonic/gin"
)

func StatsRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/statistics", controllers.GetStatistics())
	incomingRoutes.GET("/dashboard", controllers.GetDashboard())
}
