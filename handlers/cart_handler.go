package handlers

import (
	"Storefront/models"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 新增商品至購物車，同商品已存在則累加數量
func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	var cartItemReq struct {
		UserID    uint `json:"userId"`
		ProductID uint `json:"productId"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.BindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if cartItemReq.UserID == 0 || cartItemReq.ProductID == 0 || cartItemReq.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "userId、productId與quantity必須為正整數",
		})
		return
	}

	//查詢商品庫存數量
	var product models.Product
	err := db.First(&product, cartItemReq.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "找不到商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢商品庫存錯誤",
			"error":   err.Error(),
		})
		return
	}

	//庫存檢查只針對本次加入的數量
	if cartItemReq.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "商品庫存不足",
		})
		return
	}

	var cartItem models.CartItem
	err = db.
		Where("user_id = ? AND product_id = ?", cartItemReq.UserID, cartItemReq.ProductID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			//購物車沒有相同商品，新增此商品至購物車
			err := db.Create(&models.CartItem{
				UserID:    cartItemReq.UserID,
				ProductID: cartItemReq.ProductID,
				Quantity:  cartItemReq.Quantity,
			}).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "新增商品至購物車失敗",
					"error":   err.Error(),
				})
				return
			}

			c.JSON(http.StatusCreated, gin.H{
				"success": true,
				"message": "成功新增商品至購物車",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢購物車商品錯誤",
			"error":   err.Error(),
		})
		return
	}

	//購物車有相同商品，累加商品數量（此路徑不設上限）
	cartItem.Quantity += cartItemReq.Quantity
	if err := db.Updates(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "更新購物車商品數量失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "成功更新購物車商品數量",
	})
}

// 查詢購物車商品並附上商品名稱、價格與圖片
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "使用者ID格式錯誤",
		})
		return
	}

	cartItems := make([]struct {
		CartID   uint   `json:"cart_id"`
		Quantity uint   `json:"cart_quantity"`
		Name     string `json:"product_name"`
		Price    uint   `json:"price"`
		ImageURL string `json:"image"`
	}, 0)
	err = db.
		Model(&models.CartItem{}).
		Select("cart_items.id AS cart_id, cart_items.quantity, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Find(&cartItems).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	//空購物車不是錯誤，回傳空列表
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartItems": cartItems,
	})
}

// 刪除購物車商品，之後將該使用者剩餘商品數量重設為1（網站既定行為）
func RemoveCartItemHandler(c *gin.Context, db *gorm.DB) {
	var removeReq struct {
		ItemID uint `json:"itemId"`
		UserID uint `json:"userId"`
	}
	if err := c.BindJSON(&removeReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if removeReq.ItemID == 0 || removeReq.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "itemId與userId必須為數字",
		})
		return
	}

	//檢查此商品是否在該使用者的購物車內
	var cartItem models.CartItem
	err := db.
		Where("id = ? AND user_id = ?", removeReq.ItemID, removeReq.UserID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "購物車內找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢購物車商品錯誤",
			"error":   err.Error(),
		})
		return
	}

	if err := db.Delete(&cartItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "刪除購物車商品錯誤",
			"error":   err.Error(),
		})
		return
	}

	//刪除後將該使用者剩餘購物車商品數量全部重設為1
	err = db.
		Model(&models.CartItem{}).
		Where("user_id = ?", removeReq.UserID).
		Update("quantity", 1).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "重設購物車商品數量錯誤",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "成功刪除購物車商品並重設剩餘商品數量",
	})
}

// 覆寫購物車商品數量，僅接受1到10
func UpdateCartItemHandler(c *gin.Context, db *gorm.DB) {
	var updateReq struct {
		UserID      uint `json:"userId"`
		CartID      uint `json:"cartId"`
		NewQuantity uint `json:"newQuantity"`
	}
	if err := c.BindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if updateReq.UserID == 0 || updateReq.CartID == 0 || updateReq.NewQuantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "缺少參數",
		})
		return
	}

	if updateReq.NewQuantity < 1 || updateReq.NewQuantity > 10 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "商品數量必須介於1到10之間",
		})
		return
	}

	//覆寫（而非累加）商品數量
	result := db.
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", updateReq.CartID, updateReq.UserID).
		Update("quantity", updateReq.NewQuantity)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "更新購物車商品數量錯誤",
			"error":   result.Error.Error(),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "購物車內找不到此商品",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "成功更新購物車商品數量",
	})
}
