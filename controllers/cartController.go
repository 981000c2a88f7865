package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type submitCartRequest struct {
	TableNumber   string `json:"table_number"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// CreateCart opens a new order-creation session with an empty cart.
func CreateCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cart_id": sessions.Create()})
	}
}

// GetCart returns the session's current items and running total.
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		workingCart, ok := sessions.Get(c.Param("cart_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": workingCart.Items(),
			"total": workingCart.Total(),
		})
	}
}

// AddCartItem adds one unit of a product to the session cart. The product is
// resolved against the store so the cart always carries a current snapshot;
// unavailable products are rejected here, the engine itself stays permissive.
func AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		workingCart, ok := sessions.Get(c.Param("cart_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		var req addCartItemRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		products, err := store.GetProducts(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}
		for _, product := range products {
			if product.ID != req.ProductID {
				continue
			}
			if !product.IsAvailable() {
				c.JSON(http.StatusConflict, gin.H{"error": "product is not available"})
				return
			}
			workingCart.Add(product)
			c.JSON(http.StatusOK, gin.H{
				"items": workingCart.Items(),
				"total": workingCart.Total(),
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	}
}

// UpdateCartItem sets an entry's quantity; zero or less removes it.
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		workingCart, ok := sessions.Get(c.Param("cart_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		var req updateCartItemRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		workingCart.SetQuantity(c.Param("product_id"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{
			"items": workingCart.Items(),
			"total": workingCart.Total(),
		})
	}
}

// RemoveCartItem drops an entry from the session cart.
func RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		workingCart, ok := sessions.Get(c.Param("cart_id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		workingCart.Remove(c.Param("product_id"))
		c.JSON(http.StatusOK, gin.H{
			"items": workingCart.Items(),
			"total": workingCart.Total(),
		})
	}
}

// SubmitCart turns a non-empty session cart into a persisted order. The
// session is destroyed on success; on failure the cart is kept so the staff
// member can retry.
func SubmitCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cartID := c.Param("cart_id")
		workingCart, ok := sessions.Get(cartID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}

		var req submitCartRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if workingCart.IsEmpty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot submit an empty cart"})
			return
		}

		order, err := submitOrder(ctx, CreateOrderRequest{
			TableNumber:   req.TableNumber,
			Items:         workingCart.LineItems(),
			TotalAmount:   workingCart.Total(),
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
		if err != nil {
			log.Errorf("error submitting cart %s: %v", cartID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		sessions.Delete(cartID)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
