package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "campo", "supervisor", "admin"

	Cargo   string `json:"cargo" gorm:"size:100"`   // job title
	Cedula  string `json:"cedula" gorm:"size:20"`   // national id
	Empresa string `json:"empresa" gorm:"size:150"` // contractor company
}
