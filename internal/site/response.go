package site

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/splshield/splshield-web/internal/config"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// OK wraps data in a successful Response.
func OK(data any) Response {
	return Response{Status: config.StatusOK, Data: data}
}

// Error returns a failed Response carrying msg.
func Error(msg string) Response {
	return Response{Status: config.StatusError, Error: msg}
}

// ValidationError turns validator failures into one readable message.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{Status: config.StatusError, Error: strings.Join(msgs, ", ")}
}
