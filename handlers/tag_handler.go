package handlers

import (
	"net/http"

	"blog-cms/helper"
	"blog-cms/models"
	"blog-cms/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, h *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: h}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	var params models.TagListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendData(c, http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendData(c, http.StatusOK, tag)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	var req models.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "tag deleted successfully", nil)
}
