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

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, httpHelper *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: httpHelper}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.userService.Register(req.User)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.userService.Login(req.User)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Helper.SendUnauthorizedError(c, "Not authorized")
		return
	}

	response, err := h.userService.BuildUserResponse(user)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := h.Helper.DecodeStrict(c, &req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	if err := h.Helper.Validate.Struct(req.User); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	response, err := h.userService.UpdateUser(middleware.CurrentUserID(c), req.User)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
