package models

// SalesStats summarizes the orders that fall inside a statistics window.
type SalesStats struct {
	TotalRevenue    float64        `json:"total_revenue"`
	OrderCount      int            `json:"order_count"`
	AverageOrder    float64        `json:"average_order"`
	TopProducts     []ProductSales `json:"top_products"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

// ProductSales is the accumulated quantity and revenue of one product
// across the filtered orders.
type ProductSales struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
