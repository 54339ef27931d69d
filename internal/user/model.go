package user

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Account   string    `json:"account" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
