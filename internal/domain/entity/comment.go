package entity

import "time"

// Comment is a reader comment attached to a published article.
type Comment struct {
	ID        int64
	ArticleID int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}
