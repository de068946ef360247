package relational

import (
	"context"
	"fmt"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每个测试一个独立的内存 sqlite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := Open(sqlite.Open(dsn), "silent")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

type fixture struct {
	shop     *shop.Shop
	seller   *user.User
	category *shop.Category
	board    *shop.Board
	product  *product.Product
}

// seedShop 建一个带 seller、分类、看板和一个商品的店铺
func seedShop(t *testing.T, db *gorm.DB, url, sellerID string) fixture {
	t.Helper()
	ctx := context.Background()

	s := &shop.Shop{URL: url, Title: "Acme", Description: "tools"}
	require.NoError(t, NewShopRepository(db).Insert(ctx, s))

	u := &user.User{ID: sellerID, Name: sellerID, Email: sellerID + "@example.com"}
	users := NewUserRepository(db)
	require.NoError(t, users.Insert(ctx, u))
	require.NoError(t, users.InsertSeller(ctx, sellerID, url))

	c := shop.NewCategory("Hammers", url)
	require.NoError(t, NewCategoryRepository(db).Insert(ctx, c))

	b := shop.NewBoard(url, "Notices")
	require.NoError(t, NewBoardRepository(db).Insert(ctx, b))

	p := &product.Product{CategoryID: c.ID, ShopURL: url, Name: "Claw hammer", Price: decimal.NewFromInt(12000), Stock: 5}
	require.NoError(t, NewProductRepository(db).Insert(ctx, p))

	return fixture{shop: s, seller: u, category: c, board: b, product: p}
}
