package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// BaseHandler holds the response and binding helpers every handler embeds.
// Helpers that can fail write the response themselves and return false.
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Fail writes an error envelope for an API error code; the status comes
// from dto.ErrorCodeHTTPStatus.
func (h *BaseHandler) Fail(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Fail(c, dto.ErrCodeUnauthorized, message)
}

// HandleError answers with the code of a *shared.DomainError anywhere in
// err's chain. Other errors are attached to the gin context for the access
// log and reach the client only as a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Fail(c, domainErr.Code, domainErr.Message)
		return
	}
	_ = c.Error(err)
	h.Fail(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes the body into req. On failure it writes the response and
// returns false: field errors as ERR_VALIDATION, malformed bodies as
// ERR_INVALID_JSON.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			middleware.HandleValidationError(c, err)
		} else {
			h.Fail(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		}
		return false
	}
	return true
}

// BindQuery decodes query parameters into req, writing ERR_VALIDATION on failure
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ParamUUID parses a path parameter as a UUID, writing 400 on failure
func (h *BaseHandler) ParamUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Actor returns the caller recorded on invoices and payments, writing 401
// when the request carries no usable claims.
func (h *BaseHandler) Actor(c *gin.Context) (pos.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return pos.Actor{}, false
	}
	return actor, true
}

// toDecimal converts a bound amount. Binding has already run the money
// validator, so errors here mean the field was empty.
func toDecimal(n json.Number) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(n.String()))
}
