package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SetupValidator configures the gin validator: field names in errors follow
// the json (or form) tag, and the custom tags below are registered.
//
//	money           string holding a decimal amount, e.g. "12.50"
//	payment_method  one of the accepted payment methods
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("payment_method", validatePaymentMethod)
}

func validateMoney(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return pos.PaymentMethod(fl.Field().String()).IsValid()
}

// FormatValidationErrors turns binding failures into an ERR_VALIDATION body
// with one detail per rejected field. Errors that are not validator errors
// (malformed JSON, wrong types) produce no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	errors.As(err, &fieldErrs)

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: e.Field(), Message: getValidationMessage(e)})
	}
	if len(details) == 0 {
		details = nil
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// fieldMessages renders a FieldError by tag. Length limits read as
// characters for strings and as values otherwise.
var fieldMessages = map[string]func(e validator.FieldError) string{
	"required": func(validator.FieldError) string { return "This field is required" },
	"email":    func(validator.FieldError) string { return "Invalid email format" },
	"uuid":     func(validator.FieldError) string { return "Invalid UUID format" },
	"min":      func(e validator.FieldError) string { return "Must be at least " + e.Param() + unitOf(e) },
	"max":      func(e validator.FieldError) string { return "Must be at most " + e.Param() + unitOf(e) },
	"oneof":    func(e validator.FieldError) string { return "Must be one of: " + e.Param() },
	"gte":      func(e validator.FieldError) string { return "Must be greater than or equal to " + e.Param() },
	"gt":       func(e validator.FieldError) string { return "Must be greater than " + e.Param() },
	"datetime": func(e validator.FieldError) string { return "Must be a date in " + e.Param() + " format" },
	"money":    func(validator.FieldError) string { return "Must be a decimal amount" },
	"payment_method": func(validator.FieldError) string {
		return "Must be a supported payment method"
	},
}

func unitOf(e validator.FieldError) string {
	if e.Type().Kind() == reflect.String {
		return " characters"
	}
	return ""
}

func getValidationMessage(e validator.FieldError) string {
	if render, ok := fieldMessages[e.Tag()]; ok {
		return render(e)
	}
	return "Invalid value"
}
