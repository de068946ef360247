package relational

import (
	"context"
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	conn
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{conn{db: db}}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var userPO po.UserPO
	if err := r.getDB(ctx).First(&userPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, err
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	if err := r.getDB(ctx).Create(po.FromUserDomain(u)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewConflictError("user", "user id or email already exists")
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindSellerByID(ctx context.Context, id string) (*user.Seller, error) {
	return r.findSeller(ctx, id, "sellers.user_id = ?", id)
}

func (r *UserRepository) FindSellerByURL(ctx context.Context, shopURL string) (*user.Seller, error) {
	return r.findSeller(ctx, shopURL, "sellers.shop_url = ?", shopURL)
}

func (r *UserRepository) findSeller(ctx context.Context, key, query string, arg interface{}) (*user.Seller, error) {
	var sellerPO po.SellerPO
	if err := r.getDB(ctx).Joins("User").Where(query, arg).First(&sellerPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewSellerNotFoundError(key)
		}
		return nil, err
	}
	return sellerPO.ToDomain(), nil
}

func (r *UserRepository) InsertSeller(ctx context.Context, userID, shopURL string) error {
	err := r.getDB(ctx).Omit(clause.Associations).Create(&po.SellerPO{UserID: userID, ShopURL: shopURL}).Error
	if err != nil {
		if isDuplicateKeyError(err) {
			return shared.NewConflictError("seller", "user already owns a shop or shop already has a seller")
		}
		if isForeignKeyError(err) {
			return user.NewUserNotFoundError(userID)
		}
		return err
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
