package relational

import (
	"context"
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	conn
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{conn{db: db}}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	var productPO po.ProductPO
	if err := r.getDB(ctx).First(&productPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, err
	}
	p := productPO.ToDomain()
	return &p, nil
}

func (r *ProductRepository) FindAllByURL(ctx context.Context, shopURL string) ([]product.Product, error) {
	return r.findAll(ctx, "shop_url = ?", shopURL)
}

func (r *ProductRepository) FindAllByCategoryID(ctx context.Context, categoryID int64) ([]product.Product, error) {
	return r.findAll(ctx, "category_id = ?", categoryID)
}

func (r *ProductRepository) findAll(ctx context.Context, query string, arg interface{}) ([]product.Product, error) {
	var pos []po.ProductPO
	if err := r.getDB(ctx).Where(query, arg).Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	products := make([]product.Product, 0, len(pos))
	for i := range pos {
		products = append(products, pos[i].ToDomain())
	}
	return products, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *product.Product) error {
	productPO := po.FromProductDomain(p)
	if err := r.getDB(ctx).Create(productPO).Error; err != nil {
		return err
	}
	p.ID = productPO.ID
	return nil
}

var _ product.Repository = (*ProductRepository)(nil)

type CommentRepository struct {
	conn
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{conn{db: db}}
}

func (r *CommentRepository) FindAllByProductID(ctx context.Context, productID int64) ([]product.Comment, error) {
	var pos []po.ProductCommentPO
	if err := r.getDB(ctx).Where("product_id = ?", productID).Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	comments := make([]product.Comment, 0, len(pos))
	for i := range pos {
		comments = append(comments, pos[i].ToDomain())
	}
	return comments, nil
}

func (r *CommentRepository) Insert(ctx context.Context, c *product.Comment) error {
	commentPO := po.FromCommentDomain(c)
	if err := r.getDB(ctx).Omit(clause.Associations).Create(commentPO).Error; err != nil {
		if isForeignKeyError(err) {
			return product.NewInsertTargetNotFoundError(c.ProductID)
		}
		return err
	}
	c.ID = commentPO.ID
	c.CreatedAt = commentPO.CreatedAt
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id, productID int64) error {
	result := r.getDB(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(&po.ProductCommentPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.NewCommentNotFoundError(id)
	}
	return nil
}

var _ product.CommentRepository = (*CommentRepository)(nil)
