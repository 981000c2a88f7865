package controllers

import (
	"context"
	"net/http"
	"time"

	"go-restaurant-pos/models"

	"github.com/gin-gonic/gin"
)

// GetProducts lists the menu, optionally filtered to one category via the
// category query param. The response carries per-category product counts for
// the category filter bar.
func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		products, err := store.GetProducts(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing products"})
			return
		}

		counts := make(map[string]int)
		for _, product := range products {
			if id := product.CategoryID(); id != "" {
				counts[id]++
			}
		}

		categoryID := c.Query("category")
		if categoryID != "" {
			filtered := []models.Product{}
			for _, product := range products {
				if product.CategoryID() == categoryID {
					filtered = append(filtered, product)
				}
			}
			products = filtered
		}

		c.JSON(http.StatusOK, gin.H{
			"products":        products,
			"category_counts": counts,
		})
	}
}
