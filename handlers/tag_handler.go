package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit-backend/helper"
	"conduit-backend/services"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, httpHelper *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: httpHelper}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	response, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
