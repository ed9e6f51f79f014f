package handlers

import (
	"net/http"
	"strconv"

	"blog-cms/helper"
	"blog-cms/models"
	"blog-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: h}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}
	params.Page = queryInt(c, "page")
	params.Limit = queryInt(c, "limit")

	page, err := h.articleService.ListArticles(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       page.Articles,
		"pagination": h.Helper.GeneratePaging(c, page.Page, page.Limit, page.Total),
	})
}

func (h *ArticleHandler) CountArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}
	params.Page = queryInt(c, "page")
	params.Limit = queryInt(c, "limit")

	total, err := h.articleService.CountArticles(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendData(c, http.StatusOK, total)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendData(c, http.StatusOK, article)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "article deleted successfully", nil)
}

// queryInt returns the integer query value for key, or 0 when it is absent or
// not a number. Zero selects the service default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
