package relational

import (
	"context"
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	conn
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{conn{db: db}}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*shop.Category, error) {
	var categoryPO po.CategoryPO
	if err := r.getDB(ctx).First(&categoryPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.NewCategoryNotFoundError(id)
		}
		return nil, err
	}
	c := categoryPO.ToDomain()
	return &c, nil
}

func (r *CategoryRepository) FindAllByURL(ctx context.Context, shopURL string) ([]shop.Category, error) {
	var pos []po.CategoryPO
	if err := r.getDB(ctx).Where("shop_url = ?", shopURL).Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	categories := make([]shop.Category, 0, len(pos))
	for i := range pos {
		categories = append(categories, pos[i].ToDomain())
	}
	return categories, nil
}

func (r *CategoryRepository) Insert(ctx context.Context, c *shop.Category) error {
	categoryPO := &po.CategoryPO{ShopURL: c.ShopURL, Name: c.Name}
	if err := r.getDB(ctx).Create(categoryPO).Error; err != nil {
		return err
	}
	c.ID = categoryPO.ID
	return nil
}

func (r *CategoryRepository) Remove(ctx context.Context, id int64) error {
	return r.getDB(ctx).Delete(&po.CategoryPO{}, id).Error
}

func (r *CategoryRepository) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

var _ shop.CategoryRepository = (*CategoryRepository)(nil)
