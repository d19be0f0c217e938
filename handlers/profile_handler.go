package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit-backend/helper"
	"conduit-backend/middleware"
	"conduit-backend/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
	Helper         *helper.HTTPHelper
}

func NewProfileHandler(profileService services.ProfileService, httpHelper *helper.HTTPHelper) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, Helper: httpHelper}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	response, err := h.profileService.GetProfile(middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	response, err := h.profileService.Follow(middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	response, err := h.profileService.Unfollow(middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
