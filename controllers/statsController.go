package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-pos/stats"

	"github.com/gin-gonic/gin"
)

// GetStatistics aggregates sales over the selected period (today, week or
// month; defaults to today). Inputs are refetched and the aggregates fully
// recomputed on every request.
func GetStatistics() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		period := stats.PeriodToday
		if raw := c.Query("period"); raw != "" {
			parsed, err := stats.ParsePeriod(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			period = parsed
		}

		orders, err := store.GetOrders(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		products, err := store.GetProducts(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}

		result := stats.Compute(orders, products, period, time.Now())
		c.JSON(http.StatusOK, gin.H{
			"period": period,
			"stats":  result,
		})
	}
}
