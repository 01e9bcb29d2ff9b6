package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a back office account.
type User struct {
	Model
	Name       string `gorm:"size:255;not null"             json:"name"`
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string `gorm:"size:255;not null"             json:"-"` // bcrypt hash, never serialised
	Phone      string `gorm:"size:50"                       json:"phone"`
	Role       string `gorm:"size:50;not null;default:user" json:"role"`
	ProfileID  *uint  `json:"profileId"`
	EmployeeID *uint  `json:"employeeId"`

	Profile  *Profile  `gorm:"foreignKey:ProfileID"  json:"profile,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// Profile holds personal details of a user.
type Profile struct {
	Model
	Address string    `gorm:"size:500;not null" json:"address"`
	Dob     time.Time `gorm:"not null"          json:"dob"`
	UserID  uint      `gorm:"index"             json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Employee is the employment record of a user. Login is refused while
// IsWorking is false.
type Employee struct {
	Model
	UserID     uint            `gorm:"uniqueIndex;not null"        json:"userId"`
	DateOfHire time.Time       `gorm:"not null"                    json:"dateOfHire"`
	Salary     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	IsWorking  bool            `gorm:"not null;default:true"       json:"isWorking"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
