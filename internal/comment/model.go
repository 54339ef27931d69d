package comment

import (
	"time"

	"github.com/h662/x-clone-go/internal/post"
	"github.com/h662/x-clone-go/internal/user"
)

type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Content   string     `json:"content" gorm:"not null"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	User      user.User  `json:"user" gorm:"foreignKey:UserID"`
	PostID    uint       `json:"post_id" gorm:"index;not null"`
	Post      *post.Post `json:"post,omitempty" gorm:"foreignKey:PostID"` // loaded on the detail view only
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
