// Package article 看板文章
package article

import (
	"context"
	"time"
)

type Article struct {
	ID        int64     `json:"id"`
	BoardID   int64     `json:"boardId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	WriterID  string    `json:"writerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository Article persistence gateway
type Repository interface {
	FindAllByBoardID(ctx context.Context, boardID int64) ([]Article, error)
	Insert(ctx context.Context, a *Article) error
	CountByBoardID(ctx context.Context, boardID int64) (int64, error)
}
