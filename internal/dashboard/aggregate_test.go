package dashboard

import (
	"reflect"
	"testing"
	"time"

	"go_backoffice/internal/model"
)

func orderWith(id int, status string, total float64, date time.Time) model.Order {
	o := model.Order{Status: status, Total: total, Date: date}
	o.ID = id
	return o
}

func userWith(id int, role string, status model.UserStatus) model.User {
	u := model.User{Role: role, Status: status}
	u.ID = id
	return u
}

func TestCompute_EmptyInputsStillFillBuckets(t *testing.T) {
	now := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	snap := Compute(nil, nil, now)

	if len(snap.Revenue.Monthly) != MonthlyWindow {
		t.Fatalf("Expected %d monthly buckets, got %d", MonthlyWindow, len(snap.Revenue.Monthly))
	}

	// Oldest first, trailing window ending at the current month
	want := []MonthRevenue{
		{Year: 2024, Month: 2}, {Year: 2024, Month: 3}, {Year: 2024, Month: 4},
		{Year: 2024, Month: 5}, {Year: 2024, Month: 6}, {Year: 2024, Month: 7},
	}
	if !reflect.DeepEqual(snap.Revenue.Monthly, want) {
		t.Errorf("Monthly buckets = %v, want %v", snap.Revenue.Monthly, want)
	}

	if snap.Users.Total != 0 || snap.Orders.Total != 0 {
		t.Error("empty inputs should produce zero counts")
	}
	if len(snap.RecentOrders) != 0 || len(snap.RecentUsers) != 0 {
		t.Error("empty inputs should produce empty recent lists")
	}
}

func TestCompute_WindowSpansYearBoundary(t *testing.T) {
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	snap := Compute(nil, nil, now)

	first := snap.Revenue.Monthly[0]
	if first.Year != 2023 || first.Month != 9 {
		t.Errorf("first bucket = %d-%d, want 2023-9", first.Year, first.Month)
	}
	last := snap.Revenue.Monthly[MonthlyWindow-1]
	if last.Year != 2024 || last.Month != 2 {
		t.Errorf("last bucket = %d-%d, want 2024-2", last.Year, last.Month)
	}
}

func TestCompute_RevenueOnlyShippableStatuses(t *testing.T) {
	now := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	inMonth := time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC)

	orders := []model.Order{
		orderWith(1, "Pending", 100, inMonth),
		orderWith(2, "Shipped", 50, inMonth),
		orderWith(3, "delivered", 25, inMonth),
		orderWith(4, "Cancelled", 1000, inMonth),
	}

	snap := Compute(nil, orders, now)

	current := snap.Revenue.Monthly[MonthlyWindow-1]
	if current.Revenue != 75 {
		t.Errorf("current month revenue = %v, want 75", current.Revenue)
	}
	if snap.Revenue.Total != 75 {
		t.Errorf("total revenue = %v, want 75", snap.Revenue.Total)
	}
}

func TestCompute_OrdersOutsideWindowIgnored(t *testing.T) {
	now := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	old := time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC)

	snap := Compute(nil, []model.Order{orderWith(1, "shipped", 40, old)}, now)

	for _, bucket := range snap.Revenue.Monthly {
		if bucket.Revenue != 0 {
			t.Errorf("bucket %d-%d got revenue %v from an out-of-window order", bucket.Year, bucket.Month, bucket.Revenue)
		}
	}
	// The order still counts toward the total
	if snap.Revenue.Total != 40 {
		t.Errorf("total revenue = %v, want 40", snap.Revenue.Total)
	}
}

func TestCompute_ZeroDateSkippedFromSeries(t *testing.T) {
	now := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

	snap := Compute(nil, []model.Order{orderWith(1, "shipped", 40, time.Time{})}, now)

	for _, bucket := range snap.Revenue.Monthly {
		if bucket.Revenue != 0 {
			t.Errorf("undated order leaked into bucket %d-%d", bucket.Year, bucket.Month)
		}
	}
}

func TestCompute_OrderCounts(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		orderWith(1, "pending", 0, now),
		orderWith(2, "  Canceled ", 0, now),
		orderWith(3, "SHIPPED", 0, now),
		orderWith(4, "delivered", 0, now),
		orderWith(5, "processing", 0, now),
		orderWith(6, "mystery", 0, now),
	}

	counts := Compute(nil, orders, now).Orders

	want := OrderCounts{Total: 6, Pending: 1, Processing: 1, Shipped: 1, Delivered: 1, Cancelled: 1, Other: 1}
	if counts != want {
		t.Errorf("OrderCounts = %+v, want %+v", counts, want)
	}
}

func TestCompute_UserCounts(t *testing.T) {
	now := time.Now()
	users := []model.User{
		userWith(1, "owner", model.UserStatusActive),
		userWith(2, "admin", model.UserStatusInactive),
		userWith(3, "user", model.UserStatusActive),
		userWith(4, "bogus", model.UserStatusActive),
	}

	counts := Compute(users, nil, now).Users

	want := UserCounts{Total: 4, Active: 3, Inactive: 1, Admins: 2}
	if counts != want {
		t.Errorf("UserCounts = %+v, want %+v", counts, want)
	}
}

func TestCompute_RecentUsersRolePriorityDominates(t *testing.T) {
	now := time.Now()
	users := []model.User{
		userWith(1, "user", model.UserStatusActive),
		userWith(2, "owner", model.UserStatusActive),
		userWith(3, "admin", model.UserStatusActive),
	}

	recent := Compute(users, nil, now).RecentUsers

	wantIDs := []int{2, 3, 1}
	if len(recent) != len(wantIDs) {
		t.Fatalf("Expected %d recent users, got %d", len(wantIDs), len(recent))
	}
	for i, id := range wantIDs {
		if recent[i].ID != id {
			t.Errorf("recentUsers[%d].ID = %d, want %d", i, recent[i].ID, id)
		}
	}
}

func TestCompute_RecentUsersIDBreaksTies(t *testing.T) {
	now := time.Now()
	users := []model.User{
		userWith(1, "admin", model.UserStatusActive),
		userWith(2, "admin", model.UserStatusActive),
	}

	recent := Compute(users, nil, now).RecentUsers
	if recent[0].ID != 2 || recent[1].ID != 1 {
		t.Errorf("ties should break by id descending, got %d then %d", recent[0].ID, recent[1].ID)
	}
}

func TestCompute_RecentOrdersDateThenID(t *testing.T) {
	now := time.Now()
	d1 := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC)

	orders := []model.Order{
		orderWith(1, "pending", 0, d2),
		orderWith(2, "pending", 0, d1),
		orderWith(3, "pending", 0, d2),
	}

	recent := Compute(nil, orders, now).RecentOrders

	wantIDs := []int{3, 1, 2}
	for i, id := range wantIDs {
		if recent[i].ID != id {
			t.Errorf("recentOrders[%d].ID = %d, want %d", i, recent[i].ID, id)
		}
	}
}

func TestCompute_RecentListsTruncated(t *testing.T) {
	now := time.Now()
	var users []model.User
	var orders []model.Order
	for i := 1; i <= RecentLimit+3; i++ {
		users = append(users, userWith(i, "user", model.UserStatusActive))
		orders = append(orders, orderWith(i, "pending", 0, now))
	}

	snap := Compute(users, orders, now)
	if len(snap.RecentUsers) != RecentLimit {
		t.Errorf("recentUsers length = %d, want %d", len(snap.RecentUsers), RecentLimit)
	}
	if len(snap.RecentOrders) != RecentLimit {
		t.Errorf("recentOrders length = %d, want %d", len(snap.RecentOrders), RecentLimit)
	}
}

func TestCompute_PureAndIdempotent(t *testing.T) {
	now := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	users := []model.User{
		userWith(3, "user", model.UserStatusActive),
		userWith(1, "owner", model.UserStatusActive),
	}
	orders := []model.Order{
		orderWith(2, "shipped", 10, now),
		orderWith(1, "pending", 5, now.AddDate(0, 0, -1)),
	}

	usersBefore := make([]model.User, len(users))
	copy(usersBefore, users)
	ordersBefore := make([]model.Order, len(orders))
	copy(ordersBefore, orders)

	first := Compute(users, orders, now)
	second := Compute(users, orders, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("Compute is not idempotent for identical input")
	}
	if !reflect.DeepEqual(users, usersBefore) {
		t.Error("Compute mutated the users slice")
	}
	if !reflect.DeepEqual(orders, ordersBefore) {
		t.Error("Compute mutated the orders slice")
	}
}
