package models

import "gorm.io/gorm"

// 商品僅由外部庫存管理系統維護，本服務只讀取
type Product struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Price       uint   `gorm:"not null"`
	Stock       uint   `gorm:"not null"`
	Description string
	ImageURL    string
}
