// Package handlers exposes the services over HTTP with Fiber.
package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"rentdir/internal/apperror"
	"rentdir/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validationFailed writes a 400 with one message per failing field.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// fail maps err onto its HTTP status. Server-side failures are logged at
// error level; the response carries only the public message.
func fail(c *fiber.Ctx, logger *zap.SugaredLogger, message string, err error) error {
	status := apperror.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		logger.Errorw(message, "method", c.Method(), "path", c.Path(), "error", err)
	} else {
		logger.Debugw(message, "method", c.Method(), "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   apperror.Message(err),
	})
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.NewValidationError(fmt.Sprintf("%s must be a positive integer", name), err)
	}
	return id, nil
}

// currentUser returns the id stored by middleware.AuthRequired.
func currentUser(c *fiber.Ctx) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperror.NewAuthError("not authenticated", nil)
	}
	return id, nil
}

func orNop(logger *zap.SugaredLogger) *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}
