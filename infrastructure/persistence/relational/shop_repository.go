package relational

import (
	"context"
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

type ShopRepository struct {
	conn
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{conn{db: db}}
}

func (r *ShopRepository) FindByURL(ctx context.Context, url string) (*shop.Shop, error) {
	var shopPO po.ShopPO
	if err := r.getDB(ctx).First(&shopPO, "url = ?", url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.NewShopNotFoundError(url)
		}
		return nil, err
	}
	return shopPO.ToDomain(), nil
}

func (r *ShopRepository) FindByCategoryID(ctx context.Context, categoryID int64) (*shop.Shop, error) {
	var shopPO po.ShopPO
	err := r.getDB(ctx).
		Joins("JOIN categories ON categories.shop_url = shops.url").
		Where("categories.id = ?", categoryID).
		First(&shopPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.NewCategoryNotFoundError(categoryID)
		}
		return nil, err
	}
	return shopPO.ToDomain(), nil
}

func (r *ShopRepository) Insert(ctx context.Context, s *shop.Shop) error {
	if err := r.getDB(ctx).Create(po.FromShopDomain(s)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shop.NewShopURLTakenError(s.URL)
		}
		return err
	}
	return nil
}

// UpdateInfo 只写设置页可编辑的字段
func (r *ShopRepository) UpdateInfo(ctx context.Context, s *shop.Shop) error {
	return r.getDB(ctx).Model(&po.ShopPO{}).
		Where("url = ?", s.URL).
		Updates(map[string]interface{}{
			"title":       s.Title,
			"description": s.Description,
			"phone":       s.Phone,
			"footer":      s.Footer,
		}).Error
}

func (r *ShopRepository) UpdateImageURL(ctx context.Context, url, imageURL string) error {
	return r.getDB(ctx).Model(&po.ShopPO{}).
		Where("url = ?", url).
		Update("image_url", imageURL).Error
}

func (r *ShopRepository) UpdateTheme(ctx context.Context, url string, theme int) error {
	return r.getDB(ctx).Model(&po.ShopPO{}).
		Where("url = ?", url).
		Update("theme", theme).Error
}

var _ shop.Repository = (*ShopRepository)(nil)
