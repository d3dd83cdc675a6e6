package models

import "gorm.io/gorm"

type ServiceInquiry struct {
	gorm.Model
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Gender    string
	City      string
	State     string
	Address   string
	Inquiry   string
}
