package routes

import (
	"go-restaurant-pos/controllers"

	"github.com/gin-gonic/gin"
)

func ProductRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/products", controllers.GetProducts())
	incomingRoutes.GET("/categories", controllers.GetCategories())
}
