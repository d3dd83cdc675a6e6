package handlers

import (
	"net/http"
	"testing"
	"time"

	"Storefront/models"
)

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)

	c, w := newJSONContext(t, http.MethodPost, "/api/place-order", map[string]any{
		"user_id":       1,
		"customer_name": "John Doe",
	})
	PlaceOrderHandler(c, db)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no order row, got %d", count)
	}
}

func TestPlaceOrderSnapshotsPricesAndEmptiesCart(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Product{Name: "Pump", Price: 100, Stock: 10})
	db.Create(&models.Product{Name: "Valve", Price: 50, Stock: 10})
	db.Create(&models.CartItem{UserID: 1, ProductID: 1, Quantity: 2})
	db.Create(&models.CartItem{UserID: 1, ProductID: 2, Quantity: 1})

	c, w := newJSONContext(t, http.MethodPost, "/api/place-order", map[string]any{
		"user_id":          1,
		"customer_name":    "John Doe",
		"customer_mobile":  "+886912345678",
		"customer_email":   "john@example.com",
		"shipping_address": "1 Test Road",
	})
	PlaceOrderHandler(c, db)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := db.Preload("OrderItems").First(&order).Error; err != nil {
		t.Fatalf("expected an order row: %v", err)
	}
	if order.Total != 250 {
		t.Fatalf("expected total 250, got %d", order.Total)
	}
	if order.Status != models.OrderStatusPlaced {
		t.Fatalf("expected status Placed, got %q", order.Status)
	}
	if order.CustomerName != "John Doe" || order.CustomerEmail != "john@example.com" {
		t.Fatalf("expected contact snapshot on the order, got %+v", order)
	}
	if len(order.OrderItems) != 2 {
		t.Fatalf("expected two order items, got %d", len(order.OrderItems))
	}

	totals := map[uint]uint{}
	for _, item := range order.OrderItems {
		totals[item.ProductID] = item.Total
	}
	if totals[1] != 200 || totals[2] != 50 {
		t.Fatalf("expected line totals 200 and 50, got %v", totals)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("expected cart to be emptied, got %d lines", cartCount)
	}
}

// 歷史訂單金額不隨商品售價變動
func TestPlacedOrderKeepsHistoricalPrices(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Product{Name: "Pump", Price: 100, Stock: 10})
	db.Create(&models.CartItem{UserID: 1, ProductID: 1, Quantity: 2})

	c, _ := newJSONContext(t, http.MethodPost, "/api/place-order", map[string]any{
		"user_id": 1, "customer_name": "John Doe",
	})
	PlaceOrderHandler(c, db)

	db.Model(&models.Product{}).Where("id = ?", 1).Update("price", 999)

	var order models.Order
	db.Preload("OrderItems").First(&order)
	if order.Total != 200 {
		t.Fatalf("expected historical total 200 after price drift, got %d", order.Total)
	}
	if order.OrderItems[0].Price != 100 {
		t.Fatalf("expected snapshot unit price 100, got %d", order.OrderItems[0].Price)
	}
}

func TestCancelOrderWrongUser(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Order{UserID: 1, Total: 100, Status: models.OrderStatusPlaced})

	c, w := newJSONContext(t, http.MethodPatch, "/api/orders/cancel/1", map[string]any{
		"userId": 2,
	})
	c.Params = append(c.Params, newParam("orderId", "1"))
	CancelOrderHandler(c, db)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.First(&order, 1)
	if order.Status != models.OrderStatusPlaced {
		t.Fatalf("expected status unchanged, got %q", order.Status)
	}
}

func TestCancelOrderTwice(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Order{UserID: 1, Total: 100, Status: models.OrderStatusPlaced})

	c, w := newJSONContext(t, http.MethodPatch, "/api/orders/cancel/1", map[string]any{"userId": 1})
	c.Params = append(c.Params, newParam("orderId", "1"))
	CancelOrderHandler(c, db)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 on first cancel, got %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	db.First(&order, 1)
	if order.Status != models.OrderStatusCancelled {
		t.Fatalf("expected status Cancelled, got %q", order.Status)
	}

	c, w = newJSONContext(t, http.MethodPatch, "/api/orders/cancel/1", map[string]any{"userId": 1})
	c.Params = append(c.Params, newParam("orderId", "1"))
	CancelOrderHandler(c, db)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second cancel, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetOrdersGroupsItemsByOrder(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.Product{Name: "Pump", Price: 100, Stock: 10})
	db.Create(&models.Product{Name: "Valve", Price: 50, Stock: 10})
	db.Create(&models.CartItem{UserID: 1, ProductID: 1, Quantity: 2})
	db.Create(&models.CartItem{UserID: 1, ProductID: 2, Quantity: 1})

	c, _ := newJSONContext(t, http.MethodPost, "/api/place-order", map[string]any{
		"user_id": 1, "customer_name": "John Doe",
	})
	PlaceOrderHandler(c, db)

	c, w := newJSONContext(t, http.MethodGet, "/api/orders/1", nil)
	c.Params = append(c.Params, newParam("userId", "1"))
	GetOrdersHandler(c, db)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	orders, ok := body["orders"].([]any)
	if !ok {
		t.Fatalf("expected orders array, got %v", body["orders"])
	}
	if len(orders) != 1 {
		t.Fatalf("expected one grouped order, got %d", len(orders))
	}
	items := orders[0].(map[string]any)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected two items nested under the order, got %d", len(items))
	}
}

func TestGetOrdersEmptyIsNotAnError(t *testing.T) {
	db := newTestDB(t)

	c, w := newJSONContext(t, http.MethodGet, "/api/orders/1", nil)
	c.Params = append(c.Params, newParam("userId", "1"))
	GetOrdersHandler(c, db)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	orders, ok := body["orders"].([]any)
	if !ok {
		t.Fatalf("expected orders array, got %v", body["orders"])
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty orders list, got %d", len(orders))
	}
}

func TestOrderTotal(t *testing.T) {
	lines := []cartLine{
		{ProductID: 1, Quantity: 2, Price: 100},
		{ProductID: 2, Quantity: 1, Price: 50},
	}
	if total := orderTotal(lines); total != 250 {
		t.Fatalf("expected total 250, got %d", total)
	}
}

func TestBuildOrderItemsSnapshotsLineTotals(t *testing.T) {
	lines := []cartLine{
		{ProductID: 1, Quantity: 2, Price: 100},
		{ProductID: 2, Quantity: 1, Price: 50},
	}
	items := buildOrderItems(7, lines)
	if len(items) != 2 {
		t.Fatalf("expected two order items, got %d", len(items))
	}
	if items[0].OrderID != 7 || items[1].OrderID != 7 {
		t.Fatalf("expected order id 7 on all items, got %+v", items)
	}
	if items[0].Total != 200 || items[1].Total != 50 {
		t.Fatalf("expected line totals 200 and 50, got %d and %d", items[0].Total, items[1].Total)
	}
}

func TestGroupOrderRowsPreservesOrderAndNestsItems(t *testing.T) {
	newer := time.Now()
	older := newer.Add(-time.Hour)
	rows := []orderRow{
		{OrderID: 2, OrderDate: newer, Status: models.OrderStatusPlaced, ProductID: 1, Quantity: 2, Price: 100},
		{OrderID: 2, OrderDate: newer, Status: models.OrderStatusPlaced, ProductID: 2, Quantity: 1, Price: 50},
		{OrderID: 1, OrderDate: older, Status: models.OrderStatusCancelled, ProductID: 1, Quantity: 1, Price: 100},
	}

	orders := groupOrderRows(rows)
	if len(orders) != 2 {
		t.Fatalf("expected two grouped orders, got %d", len(orders))
	}
	if orders[0].OrderID != 2 || orders[1].OrderID != 1 {
		t.Fatalf("expected newest order first, got %d then %d", orders[0].OrderID, orders[1].OrderID)
	}
	if len(orders[0].Items) != 2 || len(orders[1].Items) != 1 {
		t.Fatalf("expected item counts 2 and 1, got %d and %d", len(orders[0].Items), len(orders[1].Items))
	}
}
