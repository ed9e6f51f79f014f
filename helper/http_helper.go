package helper

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"blog-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	CodeTypeValidation   = "validationError"
	CodeTypeBadRequest   = "badRequest"
	CodeTypeUnauthorized = "unAuthorized"
	CodeTypeTokenMissing = "tokenMissing"
	CodeTypeTokenInvalid = "tokenInvalid"
	CodeTypeNotFound     = "notFound"
	CodeTypeConflict     = "conflict"
	CodeTypeRateLimited  = "rateLimited"
	CodeTypeInternal     = "internalError"
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     *slog.Logger
}

// NewHTTPHelper builds a helper whose validator reports json field names with
// English messages.
func NewHTTPHelper(logger *slog.Logger) *HTTPHelper {
	if logger == nil {
		logger = slog.Default()
	}

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		logger.Error("failed to register validator translations", "error", err)
	}

	return &HTTPHelper{Validate: validate, Translator: translator, Logger: logger}
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validationErr models.ErrorValidation
		unauthorized  models.ErrorUnauthorized
		notFound      models.ErrorNotFound
		conflict      models.ErrorConflict
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return conflict.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

// ValidateStruct runs the struct validation tags and converts failures into
// a models.ErrorValidation keyed by json field name.
func (u *HTTPHelper) ValidateStruct(req interface{}) error {
	err := u.Validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return models.NewValidationError(err.Error())
	}

	fields := map[string][]string{}
	var first string
	for _, fe := range validationErrors {
		msg := fe.Translate(u.Translator)
		if first == "" {
			first = msg
		}
		fields[fe.Field()] = append(fields[fe.Field()], msg)
	}
	return models.ErrorValidation{Message: first, Fields: fields}
}

// SendError ...
// Send the error response matching err's kind. Internal causes are logged
// and never shown to the consumer.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)

	var (
		validationErr models.ErrorValidation
		unauthorized  models.ErrorUnauthorized
		conflict      models.ErrorConflict
	)
	switch {
	case errors.As(err, &validationErr):
		body := gin.H{
			"error":     validationErr.Message,
			"code_type": CodeTypeValidation,
			"data":      u.EmptyJsonMap(),
		}
		if len(validationErr.Fields) > 0 {
			body["fields"] = validationErr.Fields
		}
		c.JSON(status, body)
	case errors.As(err, &unauthorized):
		kind := unauthorized.Kind
		if kind == "" {
			kind = CodeTypeUnauthorized
		}
		u.send(c, status, unauthorized.Message, kind, u.EmptyJsonMap())
	case status == http.StatusNotFound:
		u.send(c, status, err.Error(), CodeTypeNotFound, u.EmptyJsonMap())
	case errors.As(err, &conflict):
		data := u.EmptyJsonMap()
		if conflict.ArticleCount > 0 {
			data["article_count"] = conflict.ArticleCount
		}
		u.send(c, status, conflict.Message, CodeTypeConflict, data)
	default:
		message := "internal server error"
		var internal models.ErrorInternalServer
		if errors.As(err, &internal) && internal.Message != "" {
			message = internal.Message
		}
		u.Logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
		u.send(c, status, message, CodeTypeInternal, u.EmptyJsonMap())
	}
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.send(c, http.StatusBadRequest, message, CodeTypeBadRequest, u.EmptyJsonMap())
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message, kind string) {
	u.send(c, http.StatusUnauthorized, message, kind, u.EmptyJsonMap())
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.send(c, http.StatusNotFound, message, CodeTypeNotFound, u.EmptyJsonMap())
}

func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) {
	u.send(c, http.StatusTooManyRequests, message, CodeTypeRateLimited, u.EmptyJsonMap())
}

// SendData wraps data in the {"data": ...} envelope.
func (u *HTTPHelper) SendData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// SendSuccess ...
// Send success response with a message and optional data.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func (u *HTTPHelper) send(c *gin.Context, status int, message, codeType string, data interface{}) {
	c.JSON(status, gin.H{
		"error":     message,
		"code_type": codeType,
		"data":      data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL, keeping the request's filters
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// Set pagination response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, page, limit int, total int64) models.Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	links := &models.PageLinks{}
	if page > 1 && page <= totalPages {
		links.Previous = u.GetPagingUrl(c, page-1, limit)
		links.First = u.GetPagingUrl(c, 1, limit)
	}
	if page < totalPages {
		links.Next = u.GetPagingUrl(c, page+1, limit)
		links.Last = u.GetPagingUrl(c, totalPages, limit)
	}

	return models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: totalPages,
		Links: links,
	}
}
