/*
Package user 定义用户领域错误。
*/
package user

import (
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid id or password")
)

func NewUserNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "user",
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewSellerNotFoundError 用户不存在或不是 seller
func NewSellerNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "seller",
		message:  "seller not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidEmailError(email string) error {
	return &userDomainError{
		sentinel: ErrInvalidEmail,
		entity:   "user",
		field:    "email",
		message:  "invalid email format: " + email,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidCredentialsError 登录失败；不区分 id 不存在与密码错误
func NewInvalidCredentialsError() error {
	return &userDomainError{
		sentinel: shared.ErrUnauthorized,
		entity:   "user",
		message:  ErrInvalidCredentials.Error(),
		stack:    shared.CaptureStack(3),
	}
}

type userDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string   { return e.message }
func (e *userDomainError) Unwrap() error   { return e.sentinel }
func (e *userDomainError) Stack() []string { return shared.FormatStack(e.stack) }
