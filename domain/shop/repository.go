package shop

import "context"

// Repository Shop persistence gateway.
// Lookups by key return an error wrapping shared.ErrNotFound, never a nil shop.
type Repository interface {
	FindByURL(ctx context.Context, url string) (*Shop, error)
	FindByCategoryID(ctx context.Context, categoryID int64) (*Shop, error)
	Insert(ctx context.Context, shop *Shop) error
	UpdateInfo(ctx context.Context, shop *Shop) error
	UpdateImageURL(ctx context.Context, url, imageURL string) error
	UpdateTheme(ctx context.Context, url string, theme int) error
}

// BoardRepository Board persistence gateway
type BoardRepository interface {
	FindByID(ctx context.Context, id int64) (*Board, error)
	FindAllByURL(ctx context.Context, shopURL string) ([]Board, error)
	Insert(ctx context.Context, board *Board) error
	Remove(ctx context.Context, id int64) error
	CountArticles(ctx context.Context, boardID int64) (int64, error)
}

// CategoryRepository Category persistence gateway
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAllByURL(ctx context.Context, shopURL string) ([]Category, error)
	Insert(ctx context.Context, category *Category) error
	Remove(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
}
