package service

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mmeshcher/restomanage/internal/model"
)

func TestPeriodStart(t *testing.T) {
	// среда
	now := time.Date(2025, time.March, 12, 15, 30, 45, 0, time.Local)

	tests := []struct {
		period string
		want   time.Time
	}{
		{
			period: PeriodDay,
			want:   time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local),
		},
		{
			period: PeriodWeek,
			want:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		},
		{
			period: PeriodMonth,
			want:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
		},
		{
			period: PeriodYear,
			want:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := periodStart(tt.period, now)
			if err != nil {
				t.Fatalf("periodStart(%q) error: %v", tt.period, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("periodStart(%q) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestPeriodStartWeekOnSunday(t *testing.T) {
	sunday := time.Date(2025, time.March, 16, 23, 59, 0, 0, time.Local)

	got, err := periodStart(PeriodWeek, sunday)
	if err != nil {
		t.Fatalf("periodStart error: %v", err)
	}

	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("week start on Sunday = %v, want %v", got, want)
	}
}

func TestNaiveNow(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2025, time.March, 12, 1, 30, 0, 0, zone)

	got := naiveNow(now)

	want := time.Date(2025, time.March, 12, 1, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("naiveNow = %v, want %v", got, want)
	}
}

func TestComputeAnalyticsNaiveWindowInNonUTCZone(t *testing.T) {
	// Хранилище возвращает метки как UTC без фактического смещения. Начало
	// окна должно строиться из тех же наивных показаний часов: заказ за
	// 21:00 вчерашнего дня не попадает в окно day даже в зоне UTC+5.
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2025, time.March, 12, 1, 30, 0, 0, zone)

	start, err := periodStart(PeriodDay, naiveNow(now))
	if err != nil {
		t.Fatalf("periodStart error: %v", err)
	}

	orders := []model.Order{
		{ID: "old", UserID: "u1", TotalAmount: 50, CreatedAt: time.Date(2025, time.March, 11, 21, 0, 0, 0, time.UTC)},
		{ID: "new", UserID: "u2", TotalAmount: 10, CreatedAt: time.Date(2025, time.March, 12, 1, 0, 0, 0, time.UTC)},
	}

	data := computeAnalytics(orders, start)

	if data.TotalOrders != 1 {
		t.Fatalf("total orders = %d, want 1 (yesterday's order outside the day window)", data.TotalOrders)
	}
	if data.TotalSales != 10 {
		t.Fatalf("total sales = %v, want 10", data.TotalSales)
	}
}

func TestPeriodStartInvalid(t *testing.T) {
	_, err := periodStart("quarter", time.Now())
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestComputeAnalyticsEmpty(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	data := computeAnalytics(nil, start)

	if data.TotalSales != 0 || data.TotalOrders != 0 || data.AvgOrderValue != 0 || data.NewCustomers != 0 {
		t.Fatalf("empty scalars: %+v", data)
	}
	if len(data.SalesByDay) != 0 || len(data.OrdersByDay) != 0 {
		t.Fatalf("empty maps expected, got %+v", data)
	}
	if data.SalesByDay == nil || data.OrdersByDay == nil || data.PopularItems == nil {
		t.Fatalf("maps and slices must be allocated for JSON serialization")
	}
	if len(data.PopularItems) != 0 {
		t.Fatalf("popular items = %v, want empty", data.PopularItems)
	}
	if data.CustomerBreakdown.New != 0 || data.CustomerBreakdown.Returning != 0 {
		t.Fatalf("customer breakdown = %+v, want zeros", data.CustomerBreakdown)
	}
}

func TestComputeAnalyticsTwoOrdersToday(t *testing.T) {
	today := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)

	orders := []model.Order{
		{
			ID:          "a",
			UserID:      "u1",
			TotalAmount: 10,
			CreatedAt:   today.Add(10 * time.Hour),
			Items: []model.OrderItem{
				{MenuItemID: "x", Name: "Margherita", Quantity: 2},
			},
		},
		{
			ID:          "b",
			UserID:      "u2",
			TotalAmount: 20,
			CreatedAt:   today.Add(12 * time.Hour),
			Items: []model.OrderItem{
				{MenuItemID: "x", Name: "Margherita", Quantity: 1},
			},
		},
	}

	data := computeAnalytics(orders, today)

	if data.TotalSales != 30 {
		t.Fatalf("total sales = %v, want 30", data.TotalSales)
	}
	if data.TotalOrders != 2 {
		t.Fatalf("total orders = %d, want 2", data.TotalOrders)
	}
	if math.Abs(data.AvgOrderValue-15) > 1e-9 {
		t.Fatalf("avg order value = %v, want 15", data.AvgOrderValue)
	}
	if data.NewCustomers != 2 {
		t.Fatalf("new customers = %d, want 2", data.NewCustomers)
	}

	day := today.Format("2006-01-02")
	if data.SalesByDay[day] != 30 {
		t.Fatalf("sales by day = %v, want 30 on %s", data.SalesByDay, day)
	}
	if data.OrdersByDay[day] != 2 {
		t.Fatalf("orders by day = %v, want 2 on %s", data.OrdersByDay, day)
	}

	if len(data.PopularItems) != 1 {
		t.Fatalf("popular items = %v, want single entry", data.PopularItems)
	}
	top := data.PopularItems[0]
	if top.ID != "x" || top.Name != "Margherita" || top.Count != 3 {
		t.Fatalf("top item = %+v, want {x Margherita 3}", top)
	}
}

func TestComputeAnalyticsWindowFilter(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	orders := []model.Order{
		{ID: "old", UserID: "u1", TotalAmount: 100, CreatedAt: start.Add(-time.Hour)},
		{ID: "edge", UserID: "u2", TotalAmount: 5, CreatedAt: start},
		{ID: "in", UserID: "u2", TotalAmount: 7, CreatedAt: start.Add(time.Hour)},
	}

	data := computeAnalytics(orders, start)

	if data.TotalOrders != 2 {
		t.Fatalf("total orders = %d, want 2 (order at boundary included)", data.TotalOrders)
	}
	if data.TotalSales != 12 {
		t.Fatalf("total sales = %v, want 12", data.TotalSales)
	}
	if data.NewCustomers != 1 {
		t.Fatalf("new customers = %d, want 1", data.NewCustomers)
	}

	// окно: 1 клиент; за всё время: 2. Формула разбивки сохранена как есть.
	if data.CustomerBreakdown.New != 1 || data.CustomerBreakdown.Returning != 1 {
		t.Fatalf("customer breakdown = %+v, want {1 1}", data.CustomerBreakdown)
	}
}

func TestComputeAnalyticsCancelledOrdersCount(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	orders := []model.Order{
		{ID: "a", UserID: "u1", Status: model.OrderStatusDelivered, TotalAmount: 10, CreatedAt: start.Add(time.Hour)},
		{ID: "b", UserID: "u1", Status: model.OrderStatusCancelled, TotalAmount: 15, CreatedAt: start.Add(2 * time.Hour)},
	}

	data := computeAnalytics(orders, start)

	if data.TotalSales != 25 {
		t.Fatalf("total sales = %v, want 25 (cancelled orders count)", data.TotalSales)
	}
}

func TestPopularItemsTopFive(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	var items []model.OrderItem
	for i := 0; i < 7; i++ {
		items = append(items, model.OrderItem{
			MenuItemID: fmt.Sprintf("item-%d", i),
			Name:       fmt.Sprintf("Item %d", i),
			Quantity:   i + 1,
		})
	}

	orders := []model.Order{
		{ID: "a", UserID: "u1", Items: items, CreatedAt: start.Add(time.Hour)},
	}

	data := computeAnalytics(orders, start)

	if len(data.PopularItems) != 5 {
		t.Fatalf("popular items length = %d, want 5", len(data.PopularItems))
	}
	for i := 1; i < len(data.PopularItems); i++ {
		if data.PopularItems[i].Count > data.PopularItems[i-1].Count {
			t.Fatalf("popular items not sorted descending: %+v", data.PopularItems)
		}
	}
	if data.PopularItems[0].ID != "item-6" || data.PopularItems[0].Count != 7 {
		t.Fatalf("top item = %+v, want item-6 with count 7", data.PopularItems[0])
	}
}

func TestPopularItemsTieBreakFirstSeen(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	orders := []model.Order{
		{
			ID:        "a",
			UserID:    "u1",
			CreatedAt: start.Add(time.Hour),
			Items: []model.OrderItem{
				{MenuItemID: "first", Name: "First", Quantity: 2},
				{MenuItemID: "second", Name: "Second", Quantity: 2},
			},
		},
	}

	data := computeAnalytics(orders, start)

	if len(data.PopularItems) != 2 {
		t.Fatalf("popular items = %+v, want 2 entries", data.PopularItems)
	}
	if data.PopularItems[0].ID != "first" || data.PopularItems[1].ID != "second" {
		t.Fatalf("tie-break must keep first-seen order, got %+v", data.PopularItems)
	}
}
