package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"

	"conduit-backend/helper"
	"conduit-backend/middleware"
	"conduit-backend/models"
	"conduit-backend/services"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, httpHelper *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: httpHelper}
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var params models.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.articleService.Feed(middleware.CurrentUserID(c), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Helper.SendUnauthorizedError(c, "Not authorized")
		return
	}

	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.articleService.CreateArticle(user, req.Article)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	response, err := h.articleService.GetArticle(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req models.UpdateArticleRequest
	if err := h.Helper.DecodeStrict(c, &req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	if err := h.Helper.Validate.Struct(req.Article); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.articleService.UpdateArticle(middleware.CurrentUserID(c), c.Param("slug"), req.Article)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(middleware.CurrentUserID(c), c.Param("slug")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

func (h *ArticleHandler) FavoriteArticle(c *gin.Context) {
	response, err := h.articleService.Favorite(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArticleHandler) UnfavoriteArticle(c *gin.Context) {
	response, err := h.articleService.Unfavorite(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
