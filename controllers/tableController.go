package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetTables lists all tables with their occupancy status, sorted by the
// table number embedded in the title.
func GetTables() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tables, err := store.GetTables(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing tables"})
			return
		}
		c.JSON(http.StatusOK, tables)
	}
}
