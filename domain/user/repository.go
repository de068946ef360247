package user

import "context"

// Repository User/Seller persistence gateway.
// Missing rows come back as errors wrapping shared.ErrNotFound.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user *User) error

	// FindSellerByID 用户不是 seller 时返回 not found
	FindSellerByID(ctx context.Context, id string) (*Seller, error)
	// FindSellerByURL 店铺没有 seller 时返回 not found
	FindSellerByURL(ctx context.Context, shopURL string) (*Seller, error)
	InsertSeller(ctx context.Context, userID, shopURL string) error
}
