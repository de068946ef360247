package po

import (
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
)

type ShopPO struct {
	URL         string `gorm:"primaryKey;size:64"`
	Title       string `gorm:"size:100"`
	Description string `gorm:"size:1000"`
	Phone       string `gorm:"size:32"`
	Footer      string `gorm:"size:1000"`
	Theme       int    `gorm:"not null;default:0"`
	ImageURL    string `gorm:"size:255"`
}

func (ShopPO) TableName() string {
	return "shops"
}

func FromShopDomain(s *shop.Shop) *ShopPO {
	return &ShopPO{
		URL:         s.URL,
		Title:       s.Title,
		Description: s.Description,
		Phone:       s.Phone,
		Footer:      s.Footer,
		Theme:       s.Theme,
		ImageURL:    s.ImageURL,
	}
}

func (p *ShopPO) ToDomain() *shop.Shop {
	return &shop.Shop{
		URL:         p.URL,
		Title:       p.Title,
		Description: p.Description,
		Phone:       p.Phone,
		Footer:      p.Footer,
		Theme:       p.Theme,
		ImageURL:    p.ImageURL,
	}
}

type BoardPO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	ShopURL string `gorm:"size:64;index;not null"`
	Name    string `gorm:"size:100"`
}

func (BoardPO) TableName() string {
	return "boards"
}

func (p *BoardPO) ToDomain() shop.Board {
	return shop.Board{ID: p.ID, ShopURL: p.ShopURL, Name: p.Name}
}

type CategoryPO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	ShopURL string `gorm:"size:64;index;not null"`
	Name    string `gorm:"size:100"`
}

func (CategoryPO) TableName() string {
	return "categories"
}

func (p *CategoryPO) ToDomain() shop.Category {
	return shop.Category{ID: p.ID, ShopURL: p.ShopURL, Name: p.Name}
}
