package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   int          `json:"code,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError is one violated field of an aggregated validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendBindingError turns a binding failure into a 400 listing every violated
// field, not just the first.
func SendBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "Validation failed",
			Code:   http.StatusBadRequest,
			Fields: fields,
		})
		return
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request body",
		Code:  http.StatusBadRequest,
	})
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "alphanum_underscore":
		return "can only contain letters, numbers, and underscores"
	case "url_or_empty":
		return "must be a valid URL or empty"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
