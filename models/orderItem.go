package models

import "gorm.io/gorm"

// 訂單商品保留下單當時的單價與小計快照
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"not null"`
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  uint `gorm:"not null"`
	Price     uint `gorm:"not null"`
	Total     uint `gorm:"not null"`
}
