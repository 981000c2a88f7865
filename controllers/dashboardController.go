package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-pos/models"
	"go-restaurant-pos/stats"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the home-screen summary: today's order count and
// revenue, the catalog size and how many tables are free right now.
func GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

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
		tables, err := store.GetTables(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing tables"})
			return
		}

		today := stats.Compute(orders, products, stats.PeriodToday, time.Now())

		freeTables := 0
		for _, table := range tables {
			if table.EffectiveStatus() == models.TableFree {
				freeTables++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"today_orders":  today.OrderCount,
			"today_revenue": today.TotalRevenue,
			"product_count": len(products),
			"free_tables":   freeTables,
		})
	}
}
