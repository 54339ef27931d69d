package like

import "time"

// Like is an aggregate flag per content item, not a per-user record:
// there is no user column, so "who liked this" is unanswerable and a
// second user's like is indistinguishable from the first. Exactly one of
// PostID/CommentID is set. The unique indexes keep at most one row per
// subject even when two first-time likes race.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    *uint     `json:"post_id" gorm:"uniqueIndex"`
	CommentID *uint     `json:"comment_id" gorm:"uniqueIndex"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
