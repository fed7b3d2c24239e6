// Package analytics derives the dashboard view models from order snapshots.
// Everything here is a pure function of its inputs: same orders and same
// "now" always produce the same output.
package analytics

import (
	"sort"
	"time"

	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
)

type Window string

const (
	WindowToday  Window = "today"
	Window7Days  Window = "7d"
	Window30Days Window = "30d"
)

// WindowStart returns local midnight of the first calendar day in the
// window, so "7d" covers today plus the six days before it.
func WindowStart(w Window, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case Window7Days:
		return midnight.AddDate(0, 0, -6)
	case Window30Days:
		return midnight.AddDate(0, 0, -29)
	default:
		return midnight
	}
}

// FilterByWindow retains orders created within [windowStart, now]. An order
// stamped exactly at midnight of the first day is included.
func FilterByWindow(orders []domain.Order, w Window, now time.Time) []domain.Order {
	start := WindowStart(w, now)
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(now) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// Revenue sums the authoritative totals of paid orders. Orders with any
// other payment status contribute nothing, whatever their order status.
func Revenue(orders []domain.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.PaymentStatus == domain.PaymentPago {
			sum += o.Total
		}
	}
	return sum
}

// PendingCount counts orders still in flight, i.e. neither completed nor
// cancelled.
func PendingCount(orders []domain.Order) int {
	count := 0
	for _, o := range orders {
		if !domain.IsTerminal(o.Status) {
			count++
		}
	}
	return count
}

func CompletedCount(orders []domain.Order) int {
	count := 0
	for _, o := range orders {
		if o.Status == domain.StatusConcluido {
			count++
		}
	}
	return count
}

// Stats bundles the dashboard cards for one window.
type Stats struct {
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"revenue"`
	Pending     int     `json:"pending"`
	Completed   int     `json:"completed"`
}

func WindowStats(orders []domain.Order, w Window, now time.Time) Stats {
	windowed := FilterByWindow(orders, w, now)
	return Stats{
		TotalOrders: len(windowed),
		Revenue:     Revenue(windowed),
		Pending:     PendingCount(windowed),
		Completed:   CompletedCount(windowed),
	}
}

type StatusCount struct {
	Status domain.OrderStatus `json:"status"`
	Count  int                `json:"count"`
}

// StatusHistogram counts every order by status, ignoring the time window.
// Only observed statuses appear, in the canonical status order with any
// unexpected values appended in first-seen order.
func StatusHistogram(orders []domain.Order) []StatusCount {
	counts := make(map[domain.OrderStatus]int)
	var unexpected []domain.OrderStatus
	for _, o := range orders {
		if counts[o.Status] == 0 && !domain.ValidOrderStatus(o.Status) {
			unexpected = append(unexpected, o.Status)
		}
		counts[o.Status]++
	}

	var histogram []StatusCount
	for _, s := range domain.AllOrderStatuses() {
		if counts[s] > 0 {
			histogram = append(histogram, StatusCount{Status: s, Count: counts[s]})
		}
	}
	for _, s := range unexpected {
		histogram = append(histogram, StatusCount{Status: s, Count: counts[s]})
	}
	return histogram
}

type DailyRevenue struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// RevenueSeries groups paid, windowed orders by local calendar day and emits
// the chronological (day/month, amount) sequence. Days without paid orders
// are absent, not zero-filled.
func RevenueSeries(orders []domain.Order, w Window, now time.Time) []DailyRevenue {
	amounts := make(map[time.Time]float64)
	for _, o := range FilterByWindow(orders, w, now) {
		if o.PaymentStatus != domain.PaymentPago {
			continue
		}
		day := time.Date(o.CreatedAt.Year(), o.CreatedAt.Month(), o.CreatedAt.Day(), 0, 0, 0, 0, o.CreatedAt.Location())
		amounts[day] += o.Total
	}

	days := make([]time.Time, 0, len(amounts))
	for day := range amounts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]DailyRevenue, 0, len(days))
	for _, day := range days {
		series = append(series, DailyRevenue{
			Date:   day.Format("02/01"),
			Amount: amounts[day],
		})
	}
	return series
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// TopProducts ranks the products sold within the window by total quantity
// and keeps the top n. Quantity ties keep the order items were first seen
// in, which is stable for a fixed input but otherwise unspecified.
func TopProducts(orders []domain.Order, w Window, now time.Time, n int) []ProductSales {
	totals := make(map[string]*ProductSales)
	var seen []string
	for _, o := range FilterByWindow(orders, w, now) {
		for _, item := range o.Items {
			sales, ok := totals[item.ProductID]
			if !ok {
				sales = &ProductSales{ProductID: item.ProductID, Name: item.ProductName}
				totals[item.ProductID] = sales
				seen = append(seen, item.ProductID)
			}
			sales.Quantity += item.Quantity
			sales.Revenue += float64(item.Quantity) * item.Price
		}
	}

	ranked := make([]ProductSales, 0, len(seen))
	for _, id := range seen {
		ranked = append(ranked, *totals[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
