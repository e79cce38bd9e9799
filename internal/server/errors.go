package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	authdomain "github.com/foodledger/foodledger/internal/auth/domain"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	memodomain "github.com/foodledger/foodledger/internal/memo/domain"
	reportdomain "github.com/foodledger/foodledger/internal/report/domain"
	"github.com/foodledger/foodledger/pkg/db"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not_found")
	ErrInternal     = errors.New("internal_error")
)

// ErrorHandlingMiddleware converts errors accumulated on the context into
// the uniform response envelope. Internal errors keep their detail out of
// the body unless devMode is set.
func ErrorHandlingMiddleware(devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err, devMode)
		c.AbortWithStatusJSON(status, envelope{
			Success:   false,
			Error:     &payload,
			Message:   payload.Message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error, devMode bool) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		message := "internal server error"
		if devMode {
			message = err.Error()
		}
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: message,
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ingredientdomain.ErrInvalidID),
		errors.Is(err, ingredientdomain.ErrInvalidName),
		errors.Is(err, ingredientdomain.ErrInvalidQuantity),
		errors.Is(err, ingredientdomain.ErrInvalidPrice),
		errors.Is(err, ingredientdomain.ErrInvalidGenre):
		return true
	case errors.Is(err, dishdomain.ErrInvalidID),
		errors.Is(err, dishdomain.ErrInvalidName),
		errors.Is(err, dishdomain.ErrInvalidQuantity),
		errors.Is(err, dishdomain.ErrInvalidIngredient):
		return true
	case errors.Is(err, fooddomain.ErrInvalidID),
		errors.Is(err, fooddomain.ErrInvalidName),
		errors.Is(err, fooddomain.ErrInvalidQuantity),
		errors.Is(err, fooddomain.ErrInvalidUsageUnit),
		errors.Is(err, fooddomain.ErrInvalidDish),
		errors.Is(err, fooddomain.ErrInvalidPrice):
		return true
	case errors.Is(err, memodomain.ErrInvalidID),
		errors.Is(err, memodomain.ErrInvalidTitle):
		return true
	case errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidPassword):
		return true
	case errors.Is(err, reportdomain.ErrInvalidInterval):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ingredientdomain.ErrNotFound),
		errors.Is(err, dishdomain.ErrNotFound),
		errors.Is(err, dishdomain.ErrIngredientNotFound),
		errors.Is(err, fooddomain.ErrNotFound),
		errors.Is(err, fooddomain.ErrDishNotFound),
		errors.Is(err, memodomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// isConflictError reclassifies referential-integrity failures, including raw
// store violations, as conflicts rather than leaking driver error codes.
func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, dishdomain.ErrReferenced),
		errors.Is(err, authdomain.ErrUserExists):
		return true
	case db.IsDuplicateKeyErr(err), db.IsForeignKeyErr(err):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
