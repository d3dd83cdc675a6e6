package models

import "gorm.io/gorm"

// 已登出的Token會加入黑名單，驗證時一併檢查
type BlacklistToken struct {
	gorm.Model
	Token string `gorm:"index;not null"`
}
