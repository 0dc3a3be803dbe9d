package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries an HTTP status code alongside a caller-safe message.
// Services return it when a failure should map to a specific status;
// everything else becomes a generic 500 in the error handler.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message)
}

func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(fiber.StatusServiceUnavailable, message)
}
