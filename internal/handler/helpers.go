package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/claudioasousa/Espetaria-PRO/internal/apierror"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// statusFromError maps service sentinel errors to HTTP status codes.
// Anything unrecognized is a plain 400: service errors are user-safe
// messages, internals never reach this path (they go through ErrorHandler).
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, service.ErrInventoryItemNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNoOpenSession):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrSessionAlreadyOpen),
		errors.Is(err, service.ErrSessionNotOpen),
		errors.Is(err, service.ErrNothingToPay):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientCash),
		errors.Is(err, service.ErrPaymentRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), apierror.New(err.Error()))
}
