package models

import (
	"gorm.io/gorm"
	"time"
)

// Google帳號登入的使用者沒有密碼，以此哨兵值代替
const GoogleUserPassword = "GOOGLE_USER"

type User struct {
	gorm.Model
	Username         string
	FirstName        string `gorm:"not null"`
	LastName         string
	Email            string  `gorm:"unique;not null"`
	Password         string  `gorm:"not null"`
	GoogleID         *string `gorm:"uniqueIndex"`
	ResetToken       *string
	ResetTokenExpire *time.Time
	Orders           []Order
	CartItems        []CartItem
}
