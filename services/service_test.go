package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"conduit-backend/config"
	"conduit-backend/models"
	"conduit-backend/repositories"
)

// testEnv wires real repositories over an in-memory database, the same shape
// main.go builds in production.
type testEnv struct {
	db             *gorm.DB
	codec          *TokenCodec
	userService    UserService
	profileService ProfileService
	articleService ArticleService
	tagService     TagService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	codec := NewTokenCodec([]byte("test-secret"), time.Hour)

	return &testEnv{
		db:             db,
		codec:          codec,
		userService:    NewUserService(userRepo, codec),
		profileService: NewProfileService(userRepo, followRepo),
		articleService: NewArticleService(articleRepo, userRepo, favoriteRepo, tagRepo),
		tagService:     NewTagService(tagRepo),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) *models.User {
	t.Helper()
	_, err := e.userService.Register(models.RegisterUser{
		Username: username,
		Email:    username + "@x.com",
		Password: "password",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, e.db.Where("username = ?", username).First(&user).Error)
	return &user
}

func (e *testEnv) createArticle(t *testing.T, author *models.User, title string, tags ...string) models.ArticleView {
	t.Helper()
	resp, err := e.articleService.CreateArticle(author, models.CreateArticle{
		Title:       title,
		Description: "desc",
		Body:        "body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return resp.Article
}
