/*
Package product 商品领域：Product 与商品评论 ProductComment。
*/
package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品，属于一个 Category 和一个 Shop
type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"categoryId"`
	ShopURL     string          `json:"url"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`

	Comments []Comment `json:"comments,omitempty"`
}

// Comment 商品评论
type Comment struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment 创建评论；product 是否存在由 service 在事务内检查
func NewComment(productID int64, userID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewEmptyCommentError()
	}
	return &Comment{
		ProductID: productID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}
