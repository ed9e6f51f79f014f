package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCode(t *testing.T) {
	h := NewHTTPHelper(nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", models.NewFieldError("title", "title is required"), http.StatusBadRequest},
		{"unauthorized", models.ErrorUnauthorized{Message: "no"}, http.StatusUnauthorized},
		{"not found", models.NewNotFoundError("article"), http.StatusNotFound},
		{"duplicate", models.NewConflictError("tag name already exists"), http.StatusConflict},
		{"tag in use", models.NewTagInUseError(2), http.StatusBadRequest},
		{"internal", models.NewInternalError("failed", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.GetStatusCode(tt.err))
		})
	}
}

func sendError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/articles", nil)

	NewHTTPHelper(nil).SendError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSendError_HidesInternalCause(t *testing.T) {
	code, body := sendError(t, models.NewInternalError("failed to list article", errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "failed to list article", body["error"])
	assert.Equal(t, CodeTypeInternal, body["code_type"])
	assert.NotContains(t, body["error"], "connection refused")
}

func TestSendError_TagInUsePayload(t *testing.T) {
	code, body := sendError(t, models.NewTagInUseError(3))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, CodeTypeConflict, body["code_type"])
	assert.Equal(t, "tag is used by 3 article(s) and cannot be deleted", body["error"])
	assert.EqualValues(t, 3, body["data"].(map[string]interface{})["article_count"])
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	h := NewHTTPHelper(nil)

	err := h.ValidateStruct(models.CreateArticleRequest{Content: "x", Status: "deleted"})
	var validationErr models.ErrorValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "title")
	assert.Contains(t, validationErr.Fields, "status")
	assert.Equal(t, "title is a required field", validationErr.Fields["title"][0])

	assert.NoError(t, h.ValidateStruct(models.CreateArticleRequest{Title: "t", Content: "x"}))
}

func TestGeneratePaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://blog.test/api/articles?status=published&page=2", nil)

	p := NewHTTPHelper(nil).GeneratePaging(c, 2, 10, 35)
	assert.Equal(t, 4, p.Pages)
	assert.Equal(t, int64(35), p.Total)
	require.NotNil(t, p.Links)
	assert.Equal(t, "http://blog.test/api/articles?limit=10&page=3&status=published", p.Links.Next)
	assert.Equal(t, "http://blog.test/api/articles?limit=10&page=1&status=published", p.Links.Previous)
	assert.Equal(t, "http://blog.test/api/articles?limit=10&page=4&status=published", p.Links.Last)

	empty := NewHTTPHelper(nil).GeneratePaging(c, 1, 10, 0)
	assert.Zero(t, empty.Pages)
	assert.Empty(t, empty.Links.Next)
}
