package relational

import (
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

// AutoMigrate 仅用于开发环境和测试；生产 schema 由 DBA 管理
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ShopPO{},
		&po.BoardPO{},
		&po.CategoryPO{},
		&po.UserPO{},
		&po.SellerPO{},
		&po.ProductPO{},
		&po.ProductCommentPO{},
		&po.ArticlePO{},
		&po.PaymentPO{},
	)
}
