package models

// Request bodies follow the conduit envelope convention: the payload sits
// under a "user" or "article" key.

type RegisterRequest struct {
	User RegisterUser `json:"user" binding:"required"`
}

type RegisterUser struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	User LoginUser `json:"user" binding:"required"`
}

type LoginUser struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries a partial update; nil means "leave unchanged".
type UpdateUserRequest struct {
	User UpdateUser `json:"user" binding:"required"`
}

type UpdateUser struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// ApplyUpdate copies the permitted fields onto the user. Password is handled
// by the service because it must be hashed first.
func (u *User) ApplyUpdate(upd UpdateUser) {
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Image != nil {
		u.Image = *upd.Image
	}
}

type CreateArticleRequest struct {
	Article CreateArticle `json:"article" binding:"required"`
}

type CreateArticle struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tagList"`
}

type UpdateArticleRequest struct {
	Article UpdateArticle `json:"article" binding:"required"`
}

type UpdateArticle struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

// ApplyUpdate copies the permitted fields onto the article. The slug is not
// regenerated when the title changes.
func (a *Article) ApplyUpdate(upd UpdateArticle) {
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Body != nil {
		a.Body = *upd.Body
	}
}

// FeedParams are the query parameters of the article listing endpoint.
type FeedParams struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// ArticleFilter is the resolved form of FeedParams handed to the repository.
// A nil pointer means the filter is absent; a present-but-empty ArticleIDs
// set must yield zero matches.
type ArticleFilter struct {
	Tag        string
	AuthorID   *uint
	ArticleIDs *[]uint
	Limit      int
	Offset     int
}

// Response envelopes.

type UserView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

type UserResponse struct {
	User UserView `json:"user"`
}

type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

type ArticleResponse struct {
	Article ArticleView `json:"article"`
}

type ArticlesResponse struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}
