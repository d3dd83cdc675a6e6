package models

import "gorm.io/gorm"

// 購物車以(使用者, 商品)為鍵，每組只會有一列
// 唯一性由新增流程維護，不加唯一索引以免與軟刪除衝突
type CartItem struct {
	gorm.Model
	UserID    uint `gorm:"not null;index:idx_user_product"`
	ProductID uint `gorm:"not null;index:idx_user_product"`
	Product   Product
	Quantity  uint `gorm:"not null"`
}
