/*
Package errors 定义应用层错误码。

领域层只暴露哨兵错误；FromDomainError 在 API 边界把它们翻译成
AppError，HTTP 状态码映射留在 api/response。
*/
package errors

import (
	"errors"
	"fmt"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/notification"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/storage"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// 业务错误码
	CodeInsertTargetNotFound ErrorCode = "INSERT_TARGET_NOT_FOUND"
	CodeFileMissing          ErrorCode = "FILE_MISSING"
	CodeUploadFailed         ErrorCode = "UPLOAD_FAILED"
	CodeMessagingFailed      ErrorCode = "MESSAGING_FAILED"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError 将领域错误映射为应用错误
// Order matters: specific sentinels are checked before the shared ones they wrap.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, product.ErrInsertTargetNotFound):
		return Wrap(err, CodeInsertTargetNotFound, err.Error())
	case errors.Is(err, product.ErrEmptyComment), errors.Is(err, user.ErrInvalidEmail):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, storage.ErrFileMissing):
		return Wrap(err, CodeFileMissing, err.Error())
	case errors.Is(err, storage.ErrUploadFailed):
		return Wrap(err, CodeUploadFailed, "file upload failed")
	case errors.Is(err, notification.ErrMessaging):
		return Wrap(err, CodeMessagingFailed, "mail could not be sent")
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		return Wrap(err, CodeUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
