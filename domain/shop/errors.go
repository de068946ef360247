package shop

import (
	"fmt"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
)

func NewShopNotFoundError(url string) error {
	return &shopDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "shop",
		message:  "shop not found: " + url,
		stack:    shared.CaptureStack(3),
	}
}

func NewBoardNotFoundError(id int64) error {
	return &shopDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "board",
		message:  fmt.Sprintf("board not found: %d", id),
		stack:    shared.CaptureStack(3),
	}
}

func NewCategoryNotFoundError(id int64) error {
	return &shopDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "category",
		message:  fmt.Sprintf("category not found: %d", id),
		stack:    shared.CaptureStack(3),
	}
}

func NewShopURLTakenError(url string) error {
	return &shopDomainError{
		sentinel: shared.ErrConflict,
		entity:   "shop",
		message:  "shop url already taken: " + url,
		stack:    shared.CaptureStack(3),
	}
}

type shopDomainError struct {
	sentinel error
	entity   string
	message  string
	stack    []uintptr
}

func (e *shopDomainError) Error() string   { return e.message }
func (e *shopDomainError) Unwrap() error   { return e.sentinel }
func (e *shopDomainError) Stack() []string { return shared.FormatStack(e.stack) }
