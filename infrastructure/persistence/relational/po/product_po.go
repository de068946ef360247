package po

import (
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"

	"github.com/shopspring/decimal"
)

type ProductPO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	CategoryID  int64           `gorm:"index;not null"`
	ShopURL     string          `gorm:"size:64;index;not null"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"size:255"`
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		ShopURL:     p.ShopURL,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

func (p *ProductPO) ToDomain() product.Product {
	return product.Product{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		ShopURL:     p.ShopURL,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

// ProductCommentPO 外键约束指向 products，插入不存在的商品时数据库拒绝
type ProductCommentPO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ProductID int64     `gorm:"index;not null"`
	UserID    string    `gorm:"size:64;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Product ProductPO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (ProductCommentPO) TableName() string {
	return "product_comments"
}

func FromCommentDomain(c *product.Comment) *ProductCommentPO {
	return &ProductCommentPO{
		ID:        c.ID,
		ProductID: c.ProductID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (p *ProductCommentPO) ToDomain() product.Comment {
	return product.Comment{
		ID:        p.ID,
		ProductID: p.ProductID,
		UserID:    p.UserID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}
