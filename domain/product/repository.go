package product

import "context"

// Repository Product persistence gateway
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAllByURL(ctx context.Context, shopURL string) ([]Product, error)
	FindAllByCategoryID(ctx context.Context, categoryID int64) ([]Product, error)
	Insert(ctx context.Context, p *Product) error
}

// CommentRepository ProductComment persistence gateway.
// Insert against a missing product fails with ErrInsertTargetNotFound
// when the store enforces the foreign key.
type CommentRepository interface {
	FindAllByProductID(ctx context.Context, productID int64) ([]Comment, error)
	Insert(ctx context.Context, c *Comment) error
	// Delete removes comment id of productID; not found when nothing matched.
	Delete(ctx context.Context, id, productID int64) error
}
