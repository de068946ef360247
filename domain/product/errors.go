package product

import (
	"errors"
	"fmt"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
)

var (
	// ErrInsertTargetNotFound 插入的评论指向不存在的商品
	ErrInsertTargetNotFound = errors.New("insert target not found")
	ErrEmptyComment         = errors.New("comment content cannot be empty")
)

func NewProductNotFoundError(id int64) error {
	return &productDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "product",
		message:  fmt.Sprintf("product not found: %d", id),
		stack:    shared.CaptureStack(3),
	}
}

func NewCommentNotFoundError(id int64) error {
	return &productDomainError{
		sentinel: shared.ErrNotFound,
		entity:   "comment",
		message:  fmt.Sprintf("comment not found: %d", id),
		stack:    shared.CaptureStack(3),
	}
}

func NewInsertTargetNotFoundError(productID int64) error {
	return &productDomainError{
		sentinel: ErrInsertTargetNotFound,
		entity:   "comment",
		message:  fmt.Sprintf("cannot comment on missing product %d", productID),
		stack:    shared.CaptureStack(3),
	}
}

func NewEmptyCommentError() error {
	return &productDomainError{
		sentinel: ErrEmptyComment,
		entity:   "comment",
		field:    "content",
		message:  ErrEmptyComment.Error(),
		stack:    shared.CaptureStack(3),
	}
}

type productDomainError struct {
	sentinel error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *productDomainError) Error() string   { return e.message }
func (e *productDomainError) Unwrap() error   { return e.sentinel }
func (e *productDomainError) Stack() []string { return shared.FormatStack(e.stack) }
