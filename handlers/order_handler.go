package handlers

import (
	"Storefront/models"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errEmptyCart = errors.New("購物車是空的")

// 下單當下購物車的一列，價格取自商品目前售價
type cartLine struct {
	CartID    uint
	ProductID uint
	Quantity  uint
	Price     uint
}

func orderTotal(lines []cartLine) uint {
	total := uint(0)
	for _, line := range lines {
		total += line.Price * line.Quantity
	}
	return total
}

func buildOrderItems(orderID uint, lines []cartLine) []models.OrderItem {
	orderItems := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		orderItems[i] = models.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     line.Price * line.Quantity,
		}
	}
	return orderItems
}

// 送出訂單：讀取購物車、建立訂單與明細快照、清空購物車，全程包在同一事務
func PlaceOrderHandler(c *gin.Context, db *gorm.DB) {
	var orderReq struct {
		UserID          uint   `json:"user_id"`
		CustomerName    string `json:"customer_name"`
		CustomerMobile  string `json:"customer_mobile"`
		CustomerEmail   string `json:"customer_email"`
		ShippingAddress string `json:"shipping_address"`
	}
	if err := c.BindJSON(&orderReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if orderReq.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "缺少使用者ID",
		})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		//讀取購物車商品與目前售價
		var lines []cartLine
		err := tx.
			Model(&models.CartItem{}).
			Select("cart_items.id AS cart_id, cart_items.product_id, cart_items.quantity, products.price").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", orderReq.UserID).
			Find(&lines).
			Error
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return errEmptyCart
		}

		//以結帳當下的售價計算總金額
		order := models.Order{
			UserID:          orderReq.UserID,
			CustomerName:    orderReq.CustomerName,
			CustomerEmail:   orderReq.CustomerEmail,
			CustomerMobile:  orderReq.CustomerMobile,
			ShippingAddress: orderReq.ShippingAddress,
			Total:           orderTotal(lines),
			Status:          models.OrderStatusPlaced,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		//建立訂單明細快照
		orderItems := buildOrderItems(order.ID, lines)
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		//清空購物車
		return tx.Where("user_id = ?", orderReq.UserID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		if errors.Is(err, errEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "購物車是空的",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "送出訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "訂單已送出",
	})
}

// 訂單列表查詢結果的平面資料列
type orderRow struct {
	OrderID         uint
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	OrderDate       time.Time
	Status          string
	ProductID       uint
	Quantity        uint
	Price           uint
	ProductName     string
	ImageURL        string
}

type orderLineItem struct {
	ProductID   uint   `json:"product_id"`
	Quantity    uint   `json:"order_quantity"`
	Price       uint   `json:"order_price"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image"`
}

type orderSummary struct {
	OrderID         uint            `json:"order_id"`
	OrderDate       time.Time       `json:"order_date"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ShippingAddress string          `json:"shipping_address"`
	Status          string          `json:"order_status"`
	Items           []orderLineItem `json:"items"`
}

// 將平面資料列依訂單分組，保留輸入的排序
func groupOrderRows(rows []orderRow) []orderSummary {
	orders := make([]orderSummary, 0)
	indexByID := make(map[uint]int)

	for _, row := range rows {
		index, exists := indexByID[row.OrderID]
		if !exists {
			orders = append(orders, orderSummary{
				OrderID:         row.OrderID,
				OrderDate:       row.OrderDate,
				CustomerName:    row.CustomerName,
				CustomerEmail:   row.CustomerEmail,
				ShippingAddress: row.ShippingAddress,
				Status:          row.Status,
				Items:           make([]orderLineItem, 0),
			})
			index = len(orders) - 1
			indexByID[row.OrderID] = index
		}
		orders[index].Items = append(orders[index].Items, orderLineItem{
			ProductID:   row.ProductID,
			Quantity:    row.Quantity,
			Price:       row.Price,
			ProductName: row.ProductName,
			ImageURL:    row.ImageURL,
		})
	}

	return orders
}

// 查詢使用者的歷史訂單，依下單時間由新到舊
func GetOrdersHandler(c *gin.Context, db *gorm.DB) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "使用者ID格式錯誤",
		})
		return
	}

	var rows []orderRow
	err = db.
		Model(&models.Order{}).
		Select("orders.id AS order_id, orders.customer_name, orders.customer_email, orders.shipping_address, orders.created_at AS order_date, orders.status, order_items.product_id, order_items.quantity, order_items.price, products.name AS product_name, products.image_url").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢訂單列表失敗",
			"error":   err.Error(),
		})
		return
	}

	//沒有訂單時回傳空列表
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  groupOrderRows(rows),
	})
}

// 取消訂單，訂單ID與使用者ID必須同時符合才會更新
func CancelOrderHandler(c *gin.Context, db *gorm.DB) {
	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "訂單ID格式錯誤",
		})
		return
	}

	var cancelReq struct {
		UserID uint `json:"userId"`
	}
	if err := c.BindJSON(&cancelReq); err != nil || cancelReq.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "缺少訂單ID或使用者ID",
		})
		return
	}

	//找不到、非本人或已取消的訂單一律視為找不到
	result := db.
		Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND status <> ?", orderID, cancelReq.UserID, models.OrderStatusCancelled).
		Update("status", models.OrderStatusCancelled)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "取消訂單失敗",
			"error":   result.Error.Error(),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "找不到訂單或訂單已取消",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "訂單已取消",
	})
}
