package stats

import (
	"fmt"
	"sort"
	"time"

	"go-restaurant-pos/models"

	log "github.com/sirupsen/logrus"
)

// Period selects the statistics time window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

const topProductsLimit = 5

// ParsePeriod validates a period selector from a request.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// WindowStart returns the inclusive lower bound of the period relative to
// now, in now's location. Weeks start on Sunday.
func WindowStart(p Period, now time.Time) time.Time {
	year, month, day := now.Date()
	switch p {
	case PeriodWeek:
		return time.Date(year, month, day-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	case PeriodMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	}
}

// Compute aggregates the orders falling inside the period window. It is a
// pure function of its inputs; callers refetch and recompute per request.
//
// Orders whose embedded items payload is malformed still count toward
// revenue, order count and the status breakdown, but contribute nothing to
// the product ranking since their line items cannot be attributed.
func Compute(orders []models.Order, products []models.Product, p Period, now time.Time) models.SalesStats {
	start := WindowStart(p, now)

	productsByID := make(map[string]models.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	result := models.SalesStats{
		TopProducts: []models.ProductSales{},
		StatusBreakdown: map[string]int{
			models.StatusPreparing: 0,
			models.StatusServed:    0,
			models.StatusPaid:      0,
			models.StatusCancelled: 0,
		},
	}
	sales := make(map[string]*models.ProductSales)

	for _, order := range orders {
		if order.Timestamp().Before(start) {
			continue
		}

		result.OrderCount++
		result.TotalRevenue += order.Total()

		status := order.EffectiveStatus()
		if _, ok := result.StatusBreakdown[status]; ok {
			result.StatusBreakdown[status]++
		}

		items, err := order.LineItems()
		if err != nil {
			log.WithFields(log.Fields{"order_id": order.ID}).Warnf("skipping line items: %v", err)
			continue
		}
		for _, item := range items {
			product, ok := productsByID[item.ProductID]
			if !ok {
				// orphaned reference, product no longer in the catalog
				continue
			}
			entry, ok := sales[item.ProductID]
			if !ok {
				entry = &models.ProductSales{Product: product}
				sales[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Subtotal
		}
	}

	if result.OrderCount > 0 {
		result.AverageOrder = result.TotalRevenue / float64(result.OrderCount)
	}

	for _, entry := range sales {
		result.TopProducts = append(result.TopProducts, *entry)
	}
	sort.Slice(result.TopProducts, func(i, j int) bool {
		return result.TopProducts[i].Quantity > result.TopProducts[j].Quantity
	})
	if len(result.TopProducts) > topProductsLimit {
		result.TopProducts = result.TopProducts[:topProductsLimit]
	}

	return result
}
