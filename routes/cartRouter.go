package routes

import (
	"go-restaurant-pos/controllers"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/carts", controllers.CreateCart())
	incomingRoutes.GET("/carts/:cart_id", controllers.GetCart())
	incomingRoutes.POST("/carts/:cart_id/items", controllers.AddCartItem())
	incomingRoutes.PATCH("/carts/:cart_id/items/:product_id", controllers.UpdateCartItem())
	incomingRoutes.DELETE("/carts/:cart_id/items/:product_id", controllers.RemoveCartItem())
	incomingRoutes.POST("/carts/:cart_id/submit", controllers.SubmitCart())
}
