package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.Success(c, map[string]string{"key": "value"})

	testutil.AssertSuccessResponse(t, w)
	assert.Equal(t, "value", testutil.DataMap(t, w)["key"])
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.SuccessWithMeta(c, []string{"a", "b"}, 100, 2, 10)

	resp := testutil.DecodeJSONAs[dto.Response](t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/", "")

	h.Created(c, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")
	c.Set(middleware.RequestIDKey, "req-42")

	h.Fail(c, "NOT_FOUND", "Invoice not found")

	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	resp := testutil.DecodeJSONAs[dto.Response](t, w)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	assert.Equal(t, "Invoice not found", resp.Error.Message)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped insufficient stock", fmt.Errorf("add item: %w", shared.ErrInsufficientStock), http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		{"invalid amount", shared.ErrInvalidAmount, http.StatusBadRequest, dto.ErrCodeInvalidAmount},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"plain error", fmt.Errorf("connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/", "")

			h.HandleError(c, tt.err)

			testutil.AssertErrorResponse(t, w, tt.status, tt.code)
		})
	}
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.HandleError(c, fmt.Errorf("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
	assert.Len(t, c.Errors, 1)
}

func TestHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", "")

	h.HandleError(c, nil)

	assert.False(t, c.Writer.Written())
	assert.Equal(t, 0, w.Body.Len())
}

type bindTarget struct {
	Amount string `json:"amount" binding:"required,money"`
	Method string `json:"method" binding:"required,payment_method"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		status int
		code   string
	}{
		{"valid", `{"amount":"12.50","method":"card"}`, true, http.StatusOK, ""},
		{"missing method", `{"amount":"12.50"}`, false, http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad money", `{"amount":"twelve","method":"cash"}`, false, http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed", `{"amount":`, false, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodPost, "/", tt.body)

			var req bindTarget
			ok := h.BindJSON(c, &req)

			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				testutil.AssertErrorResponse(t, w, tt.status, tt.code)
			}
		})
	}
}

func TestParamUUID(t *testing.T) {
	h := &BaseHandler{}
	id := testutil.NewTestUUID("invoice")

	c, _ := newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.ParamUUID(c, "id", "invoice")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	_, ok = h.ParamUUID(c, "id", "invoice")
	assert.False(t, ok)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	assert.Contains(t, w.Body.String(), "Invalid invoice ID format")
}

func TestActor(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/", "")
	_, ok := h.Actor(c)
	assert.False(t, ok)
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)

	userID := testutil.TestUserID()
	c, _ = newTestContext(http.MethodGet, "/", "")
	c.Set(middleware.JWTClaimsKey, &auth.Claims{
		UserID:   userID.String(),
		Username: "desk",
		FullName: "Front Desk",
		Role:     auth.RoleStaff,
	})
	actor, ok := h.Actor(c)
	require.True(t, ok)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, "Front Desk", actor.Name)
}
