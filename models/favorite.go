package models

import "time"

// Favorite is a membership edge between a user and an article. The article's
// denormalized favorites_count must always equal the number of these edges
// pointing at it.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`
	ArticleID uint      `json:"article_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`
	CreatedAt time.Time `json:"created_at"`
}
