package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is an error with a caller-facing status and code.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Is matches on Code so wrapped copies produced by WithDetails compare equal to the sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewAppError builds a sentinel AppError.
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Shared errors.
var (
	ErrValidation     = NewAppError(http.StatusBadRequest, "validationErrors", "Validation errors")
	ErrUnauthorized   = NewAppError(http.StatusUnauthorized, "unauthorized", "Unauthorized")
	ErrForbidden      = NewAppError(http.StatusForbidden, "forbidden", "You are not allowed to perform this action")
	ErrUserNotFound   = NewAppError(http.StatusNotFound, "userNotFound", "User not found")
	ErrVendorNotFound = NewAppError(http.StatusNotFound, "vendorNotFound", "Vendor not found")
	ErrInternal       = NewAppError(http.StatusInternalServerError, "internalServerError", "Internal Server Error")
)

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Code:    ErrInternal.Code,
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err to the client. AppErrors keep their status; anything else is a 500.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			GetLogger().Error(appErr.Message, zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(appErr.Status, ErrorResponse{Message: appErr.Message, Code: appErr.Code, Details: appErr.Details})
		return
	}
	GetLogger().Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: ErrInternal.Message, Code: ErrInternal.Code})
}

// Respond writes a success body.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
