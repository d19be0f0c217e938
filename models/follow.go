package models

import "time"

// Follow is a directed edge: follower sees following's articles in their feed.
// The composite unique index keeps concurrent follow requests from inserting
// the edge twice.
type Follow struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowingID uint      `json:"following_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	CreatedAt   time.Time `json:"created_at"`
}
