package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"conduit-backend/config"
	"conduit-backend/handlers"
	"conduit-backend/helper"
	"conduit-backend/middleware"
	"conduit-backend/models"
	"conduit-backend/repositories"
	"conduit-backend/services"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *APITestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		suite.T().Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.db = db
	suite.setupRouter()
}

func (suite *APITestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	articleRepo := repositories.NewArticleRepository(suite.db)
	tagRepo := repositories.NewTagRepository(suite.db)
	followRepo := repositories.NewFollowRepository(suite.db)
	favoriteRepo := repositories.NewFavoriteRepository(suite.db)

	// Initialize services
	tokenCodec := services.NewTokenCodec(config.JWTSecret, config.JWTExpiration)
	userService := services.NewUserService(userRepo, tokenCodec)
	profileService := services.NewProfileService(userRepo, followRepo)
	articleService := services.NewArticleService(articleRepo, userRepo, favoriteRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	profileHandler := handlers.NewProfileHandler(profileService, httpHelper)
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	// Setup router
	router := gin.New()

	api := router.Group("/api")
	api.Use(middleware.Identity(tokenCodec, userRepo))
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}

		user := api.Group("/user")
		user.Use(middleware.AuthRequired())
		{
			user.GET("", userHandler.GetCurrentUser)
			user.PUT("", userHandler.UpdateUser)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", profileHandler.GetProfile)
			profiles.POST("/:username/follow", middleware.AuthRequired(), profileHandler.Follow)
			profiles.DELETE("/:username/follow", middleware.AuthRequired(), profileHandler.Unfollow)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.POST("", middleware.AuthRequired(), articleHandler.CreateArticle)
			articles.GET("/:slug", articleHandler.GetArticle)
			articles.PUT("/:slug", middleware.AuthRequired(), articleHandler.UpdateArticle)
			articles.DELETE("/:slug", middleware.AuthRequired(), articleHandler.DeleteArticle)
			articles.POST("/:slug/favorite", middleware.AuthRequired(), articleHandler.FavoriteArticle)
			articles.DELETE("/:slug/favorite", middleware.AuthRequired(), articleHandler.UnfavoriteArticle)
		}

		api.GET("/tags", tagHandler.GetTags)
	}

	suite.router = router
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) register(username, email, password string) string {
	w := suite.request(http.MethodPost, "/api/users", "", gin.H{
		"user": gin.H{"username": username, "email": email, "password": password},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp models.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotEmpty(resp.User.Token)
	return resp.User.Token
}

func (suite *APITestSuite) createArticle(token, title string, tags []string) models.ArticleView {
	w := suite.request(http.MethodPost, "/api/articles", token, gin.H{
		"article": gin.H{"title": title, "description": "desc", "body": "body", "tagList": tags},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp models.ArticleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Article
}

func (suite *APITestSuite) TestRegisterLoginAndCurrentUser() {
	token := suite.register("alice", "a@x.com", "password")

	w := suite.request(http.MethodGet, "/api/user", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"username":"alice"`)

	w = suite.request(http.MethodPost, "/api/users/login", "", gin.H{
		"user": gin.H{"email": "a@x.com", "password": "password"},
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"token"`)

	// Duplicate registration is a 422 with a field error.
	w = suite.request(http.MethodPost, "/api/users", "", gin.H{
		"user": gin.H{"username": "alice", "email": "a@x.com", "password": "password"},
	})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "has already been taken")
}

func (suite *APITestSuite) TestAuthGate() {
	w := suite.request(http.MethodGet, "/api/user", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/api/articles", "garbage", gin.H{
		"article": gin.H{"title": "x", "body": "y"},
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Public routes stay open to anonymous requests.
	w = suite.request(http.MethodGet, "/api/articles", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestUpdateUser() {
	token := suite.register("alice", "a@x.com", "password")

	w := suite.request(http.MethodPut, "/api/user", token, gin.H{
		"user": gin.H{"bio": "hello there"},
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"bio":"hello there"`)

	// Unknown fields are rejected.
	w = suite.request(http.MethodPut, "/api/user", token, gin.H{
		"user": gin.H{"role": "admin"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Invalid email fails DTO validation.
	w = suite.request(http.MethodPut, "/api/user", token, gin.H{
		"user": gin.H{"email": "not-an-email"},
	})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *APITestSuite) TestArticleLifecycle() {
	aliceToken := suite.register("alice", "a@x.com", "password")
	bobToken := suite.register("bob", "b@x.com", "password")

	article := suite.createArticle(aliceToken, "Hello", []string{"greeting"})
	suite.Regexp(`^hello-[a-z0-9]{6}$`, article.Slug)

	// Non-author cannot update or delete.
	w := suite.request(http.MethodPut, "/api/articles/"+article.Slug, bobToken, gin.H{
		"article": gin.H{"title": "Hijacked"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodDelete, "/api/articles/"+article.Slug, bobToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	// The author can.
	w = suite.request(http.MethodPut, "/api/articles/"+article.Slug, aliceToken, gin.H{
		"article": gin.H{"title": "Hello Again"},
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"title":"Hello Again"`)

	w = suite.request(http.MethodDelete, "/api/articles/"+article.Slug, aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/articles/"+article.Slug, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestFavoriteScenario() {
	aliceToken := suite.register("alice", "a@x.com", "password")
	bobToken := suite.register("bob", "b@x.com", "password")

	article := suite.createArticle(aliceToken, "Hello", nil)

	w := suite.request(http.MethodPost, "/api/articles/"+article.Slug+"/favorite", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"favoritesCount":1`)
	suite.Contains(w.Body.String(), `"favorited":true`)

	// Bob's view of the article shows it favorited; alice's does not.
	w = suite.request(http.MethodGet, "/api/articles/"+article.Slug, bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"favorited":true`)

	w = suite.request(http.MethodGet, "/api/articles/"+article.Slug, aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"favorited":false`)

	w = suite.request(http.MethodDelete, "/api/articles/"+article.Slug+"/favorite", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"favoritesCount":0`)

	w = suite.request(http.MethodPost, "/api/articles/missing-slug/favorite", bobToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestFollowScenario() {
	suite.register("alice", "a@x.com", "password")
	bobToken := suite.register("bob", "b@x.com", "password")

	w := suite.request(http.MethodPost, "/api/profiles/alice/follow", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"following":true`)

	w = suite.request(http.MethodGet, "/api/profiles/alice", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"following":true`)
	// Profiles never expose the email.
	suite.NotContains(w.Body.String(), "a@x.com")

	w = suite.request(http.MethodDelete, "/api/profiles/alice/follow", bobToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"following":false`)

	// Unfollow without an edge fails.
	w = suite.request(http.MethodDelete, "/api/profiles/alice/follow", bobToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	// Self-follow fails.
	w = suite.request(http.MethodPost, "/api/profiles/bob/follow", bobToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/profiles/nobody/follow", bobToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestFeedFiltersOverHTTP() {
	aliceToken := suite.register("alice", "a@x.com", "password")
	bobToken := suite.register("bob", "b@x.com", "password")

	a := suite.createArticle(aliceToken, "On Go", []string{"go"})
	suite.createArticle(bobToken, "On Testing", []string{"testing"})

	w := suite.request(http.MethodGet, "/api/articles?tag=go", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp models.ArticlesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Articles, 1)
	suite.Equal(a.Slug, resp.Articles[0].Slug)

	w = suite.request(http.MethodGet, "/api/articles?author=alice", "", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Articles, 1)
	suite.Equal(a.Slug, resp.Articles[0].Slug)

	w = suite.request(http.MethodGet, "/api/articles?author=nobody", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Articles)

	w = suite.request(http.MethodGet, "/api/articles?limit=1", "", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Articles, 1)
	suite.Equal(int64(2), resp.ArticlesCount)
}

func (suite *APITestSuite) TestTagsEndpoint() {
	token := suite.register("alice", "a@x.com", "password")
	suite.createArticle(token, "On Go", []string{"go", "backend"})

	w := suite.request(http.MethodGet, "/api/tags", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp models.TagsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.ElementsMatch([]string{"backend", "go"}, resp.Tags)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
