// Package dashboard computes the admin dashboard snapshot: user and
// order counts, a trailing monthly revenue series and recent-activity
// lists. Compute is pure over its inputs so the snapshot is rebuilt
// fresh on every request.
package dashboard

import (
	"sort"
	"time"

	"go_backoffice/internal/model"
	"go_backoffice/internal/rbac"

	"github.com/sirupsen/logrus"
)

// MonthlyWindow is the number of trailing calendar months in the
// revenue series, current month inclusive
const MonthlyWindow = 6

// RecentLimit caps the recent-orders and recent-users lists
const RecentLimit = 5

// UserCounts summarizes the user collection
type UserCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Admins   int `json:"admins"`
}

// OrderCounts summarizes orders by normalized status. Other collects
// unrecognized statuses so no order is silently dropped.
type OrderCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
	Other      int `json:"other"`
}

// MonthRevenue is one bucket of the trailing revenue series
type MonthRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Revenue holds the revenue totals. Only shipped and delivered orders
// count as revenue.
type Revenue struct {
	Total   float64        `json:"total"`
	Monthly []MonthRevenue `json:"monthly"`
}

// RecentOrder is the trimmed order shape in the recent list
type RecentOrder struct {
	ID            int       `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Date          time.Time `json:"date"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
}

// RecentUser is the trimmed, password-free user shape in the recent list
type RecentUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Snapshot is the derived dashboard aggregate. Never stored.
type Snapshot struct {
	Users        UserCounts    `json:"users"`
	Orders       OrderCounts   `json:"orders"`
	Revenue      Revenue       `json:"revenue"`
	RecentOrders []RecentOrder `json:"recentOrders"`
	RecentUsers  []RecentUser  `json:"recentUsers"`
}

// Compute builds a snapshot from the current users and orders. The
// inputs are never mutated and the result is deterministic given now.
func Compute(users []model.User, orders []model.Order, now time.Time) Snapshot {
	return Snapshot{
		Users:        countUsers(users),
		Orders:       countOrders(orders),
		Revenue:      computeRevenue(orders, now),
		RecentOrders: recentOrders(orders),
		RecentUsers:  recentUsers(users),
	}
}

func countUsers(users []model.User) UserCounts {
	counts := UserCounts{Total: len(users)}
	for _, u := range users {
		if u.Status == model.UserStatusActive {
			counts.Active++
		} else {
			counts.Inactive++
		}
		switch rbac.Normalize(u.Role) {
		case model.RoleAdmin, model.RoleOwner:
			counts.Admins++
		}
	}
	return counts
}

func countOrders(orders []model.Order) OrderCounts {
	counts := OrderCounts{Total: len(orders)}
	for _, o := range orders {
		switch NormalizeStatus(o.Status) {
		case model.OrderStatusPending:
			counts.Pending++
		case model.OrderStatusProcessing:
			counts.Processing++
		case model.OrderStatusShipped:
			counts.Shipped++
		case model.OrderStatusDelivered:
			counts.Delivered++
		case model.OrderStatusCancelled:
			counts.Cancelled++
		default:
			counts.Other++
		}
	}
	return counts
}

type monthKey struct {
	year  int
	month time.Month
}

// computeRevenue fills a fixed window of trailing calendar-month
// buckets, current month inclusive, with no gaps. Orders outside the
// window, with non-revenue statuses or without a usable date contribute
// nothing to the series.
func computeRevenue(orders []model.Order, now time.Time) Revenue {
	buckets := make(map[monthKey]*MonthRevenue, MonthlyWindow)
	monthly := make([]MonthRevenue, MonthlyWindow)

	// Oldest first; anchor at the first of the current month so month
	// arithmetic never skips short months
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < MonthlyWindow; i++ {
		m := anchor.AddDate(0, -(MonthlyWindow - 1 - i), 0)
		monthly[i] = MonthRevenue{Year: m.Year(), Month: int(m.Month())}
		buckets[monthKey{m.Year(), m.Month()}] = &monthly[i]
	}

	var total float64
	for _, o := range orders {
		if !countsRevenue(NormalizeStatus(o.Status)) {
			continue
		}
		total += o.Total

		if o.Date.IsZero() {
			logrus.WithField("order_id", o.ID).Debug("order has no usable date, skipped from revenue series")
			continue
		}
		if bucket, ok := buckets[monthKey{o.Date.Year(), o.Date.Month()}]; ok {
			bucket.Revenue += o.Total
		}
	}

	return Revenue{Total: total, Monthly: monthly}
}

func recentOrders(orders []model.Order) []RecentOrder {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}

	out := make([]RecentOrder, len(sorted))
	for i, o := range sorted {
		out[i] = RecentOrder{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			Date:          o.Date,
			Total:         o.Total,
			Status:        NormalizeStatus(o.Status),
		}
	}
	return out
}

func recentUsers(users []model.User) []RecentUser {
	sorted := make([]model.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := rbac.RolePriority(sorted[i].Role), rbac.RolePriority(sorted[j].Role)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > RecentLimit {
		sorted = sorted[:RecentLimit]
	}

	out := make([]RecentUser, len(sorted))
	for i, u := range sorted {
		out[i] = RecentUser{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   rbac.Normalize(u.Role),
			Status: string(u.Status),
		}
	}
	return out
}
