package models

import "gorm.io/gorm"

const (
	OrderStatusPlaced    = "Placed"
	OrderStatusCancelled = "Cancelled"
)

// 訂單保留下單當時的聯絡資料快照，不隨使用者資料變動
type Order struct {
	gorm.Model
	UserID          uint `gorm:"not null"`
	CustomerName    string
	CustomerEmail   string
	CustomerMobile  string
	ShippingAddress string
	Total           uint   `gorm:"not null"`
	Status          string `gorm:"not null"`
	OrderItems      []OrderItem
}
