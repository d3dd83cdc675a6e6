package models

import "gorm.io/gorm"

type Contact struct {
	gorm.Model
	FirstName string
	LastName  string
	Email     string
	Message   string
}
