package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TagList is stored as a single comma-joined text column so the feed's tag
// filter can match it with a plain LIKE.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

func (t *TagList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}
	if raw == "" {
		*t = TagList{}
		return nil
	}
	*t = TagList(strings.Split(raw, ","))
	return nil
}

type Article struct {
	ID             uint           `json:"-" gorm:"primarykey"`
	Slug           string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	Body           string         `json:"body" gorm:"type:text"`
	TagList        TagList        `json:"tagList" gorm:"type:text"`
	FavoritesCount int            `json:"favoritesCount" gorm:"not null;default:0"`
	AuthorID       uint           `json:"-" gorm:"not null"`
	Author         User           `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// ArticleView is the wire shape of an article, with the author rendered as a
// profile and the per-requester favorited flag filled in.
type ArticleView struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        TagList   `json:"tagList"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (a *Article) View(favorited bool) ArticleView {
	tags := a.TagList
	if tags == nil {
		tags = TagList{}
	}
	return ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		Favorited:      favorited,
		FavoritesCount: a.FavoritesCount,
		Author:         a.Author.Profile(false),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
