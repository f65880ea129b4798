package db

import "time"

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID          uint   `gorm:"primaryKey"`
	FullName    string `gorm:"size:100;not null"`
	Email       string `gorm:"not null"`
	Phone       string `gorm:"size:15"`
	Subject     string `gorm:"size:200;not null"`
	Message     string `gorm:"size:1000;not null"`
	CreatedDate time.Time
	IsRead      bool
}
