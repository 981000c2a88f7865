package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-restaurant-pos/cosmic"
	"go-restaurant-pos/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreateOrderRequest is the order-creation payload: the cart's line-item
// snapshots plus the session metadata captured in the order form.
type CreateOrderRequest struct {
	TableNumber   string                 `json:"table_number"`
	Items         []models.OrderLineItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64                `json:"total_amount"`
	PaymentMethod string                 `json:"payment_method"`
	Notes         string                 `json:"notes"`
}

// GetOrders lists orders newest first. Optional query params: status filters
// on the order status, q searches order title and table number.
func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := store.GetOrders(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}

		status := c.Query("status")
		search := strings.ToLower(strings.TrimSpace(c.Query("q")))
		if status != "" || search != "" {
			filtered := []models.Order{}
			for _, order := range orders {
				if status != "" && order.EffectiveStatus() != status {
					continue
				}
				if search != "" &&
					!strings.Contains(strings.ToLower(order.Title), search) &&
					!strings.Contains(strings.ToLower(order.Metadata.TableNumber), search) {
					continue
				}
				filtered = append(filtered, order)
			}
			orders = filtered
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GetOrder returns one order with its line items deserialized. A malformed
// items payload is reported next to the order instead of failing the whole
// response.
func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderID := c.Param("order_id")
		order, err := store.GetOrder(ctx, orderID)
		if errors.Is(err, cosmic.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching order"})
			return
		}

		response := gin.H{"order": order}
		items, err := order.LineItems()
		if err != nil {
			log.WithFields(log.Fields{"order_id": order.ID}).Warnf("order detail: %v", err)
			response["items"] = []models.OrderLineItem{}
			response["items_error"] = "order items could not be read"
		} else {
			response["items"] = items
		}
		c.JSON(http.StatusOK, response)
	}
}

// CreateOrder persists a new order from submitted line items. An empty item
// list is rejected before any store call is made.
func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req CreateOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		order, err := submitOrder(ctx, req)
		if err != nil {
			log.Errorf("error creating order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// submitOrder serializes the line items and writes the order record. No
// idempotency key is attached: a retry after a failed submission can create
// a duplicate order, the retry is a deliberate user action.
func submitOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	itemsJSON, err := models.MarshalOrderLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}

	now := time.Now()
	metadata := models.OrderMetadata{
		TableNumber:   req.TableNumber,
		Items:         itemsJSON,
		TotalAmount:   models.FormatAmount(req.TotalAmount),
		Status:        models.StatusPreparing,
		PaymentMethod: paymentMethod,
		OrderDate:     now.UTC().Format(time.RFC3339),
		Notes:         req.Notes,
	}

	order, err := store.InsertOrder(ctx, "Order #"+orderNumber(now), metadata)
	if err != nil {
		return nil, err
	}
	if hub != nil {
		hub.NotifyNewOrder(*order)
	}
	return order, nil
}

// orderNumber derives the display number from the creation timestamp: the
// last 6 digits of the epoch milliseconds. It is a display label only, two
// orders in the same millisecond window would share it.
func orderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	return ms[len(ms)-6:]
}
