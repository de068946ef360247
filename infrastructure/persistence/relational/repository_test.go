package relational

import (
	"context"
	"errors"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/article"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	fx := seedShop(t, db, "acme-shop", "kim")
	repo := NewShopRepository(db)

	t.Run("find by url", func(t *testing.T) {
		s, err := repo.FindByURL(ctx, "acme-shop")
		require.NoError(t, err)
		assert.Equal(t, "Acme", s.Title)
		assert.Nil(t, s.IsMyShop)
	})

	t.Run("missing url is not found", func(t *testing.T) {
		s, err := repo.FindByURL(ctx, "nope")
		assert.Nil(t, s)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by category", func(t *testing.T) {
		s, err := repo.FindByCategoryID(ctx, fx.category.ID)
		require.NoError(t, err)
		assert.Equal(t, "acme-shop", s.URL)

		_, err = repo.FindByCategoryID(ctx, 9999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate url conflicts", func(t *testing.T) {
		err := repo.Insert(ctx, &shop.Shop{URL: "acme-shop"})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("updates", func(t *testing.T) {
		require.NoError(t, repo.UpdateInfo(ctx, &shop.Shop{URL: "acme-shop", Title: "Acme Tools", Phone: "010", Theme: 7}))
		require.NoError(t, repo.UpdateTheme(ctx, "acme-shop", 3))
		require.NoError(t, repo.UpdateImageURL(ctx, "acme-shop", "/uploads/logo.png"))

		s, err := repo.FindByURL(ctx, "acme-shop")
		require.NoError(t, err)
		assert.Equal(t, "Acme Tools", s.Title)
		assert.Equal(t, "", s.Description, "info update writes empty fields too")
		assert.Equal(t, "010", s.Phone)
		assert.Equal(t, 3, s.Theme)
		assert.Equal(t, "/uploads/logo.png", s.ImageURL)
	})
}

func TestBoardAndCategoryRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	fx := seedShop(t, db, "acme-shop", "kim")

	boards := NewBoardRepository(db)
	categories := NewCategoryRepository(db)
	articles := NewArticleRepository(db)

	require.NoError(t, boards.Insert(ctx, shop.NewBoard("acme-shop", "QnA")))
	list, err := boards.FindAllByURL(ctx, "acme-shop")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Notices", list[0].Name)
	assert.Equal(t, "QnA", list[1].Name)

	count, err := boards.CountArticles(ctx, fx.board.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, articles.Insert(ctx, &article.Article{BoardID: fx.board.ID, Title: "Open", WriterID: "kim"}))
	count, err = boards.CountArticles(ctx, fx.board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	direct, err := articles.CountByBoardID(ctx, fx.board.ID)
	require.NoError(t, err)
	assert.Equal(t, count, direct)

	// 事务内未提交的文章也计入
	uow := NewUnitOfWork(db)
	errRollback := errors.New("rollback")
	err = uow.Execute(ctx, func(ctx context.Context) error {
		require.NoError(t, articles.Insert(ctx, &article.Article{BoardID: fx.board.ID, Title: "Draft", WriterID: "kim"}))
		n, err := boards.CountArticles(ctx, fx.board.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
	count, err = boards.CountArticles(ctx, fx.board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	byBoard, err := articles.FindAllByBoardID(ctx, fx.board.ID)
	require.NoError(t, err)
	require.Len(t, byBoard, 1)
	assert.False(t, byBoard[0].CreatedAt.IsZero())

	require.NoError(t, boards.Remove(ctx, list[1].ID))
	_, err = boards.FindByID(ctx, list[1].ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	count, err = categories.CountProducts(ctx, fx.category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	c, err := categories.FindByID(ctx, fx.category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammers", c.Name)

	empty, err := categories.FindAllByURL(ctx, "other-shop")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommentRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	fx := seedShop(t, db, "acme-shop", "kim")
	repo := NewCommentRepository(db)

	c1, _ := product.NewComment(fx.product.ID, "lee", "first")
	c2, _ := product.NewComment(fx.product.ID, "park", "second")
	require.NoError(t, repo.Insert(ctx, c1))
	require.NoError(t, repo.Insert(ctx, c2))
	assert.NotZero(t, c1.ID)

	list, err := repo.FindAllByProductID(ctx, fx.product.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)

	t.Run("missing product", func(t *testing.T) {
		orphan, _ := product.NewComment(9999, "lee", "hello?")
		err := repo.Insert(ctx, orphan)
		assert.ErrorIs(t, err, product.ErrInsertTargetNotFound)
	})

	t.Run("delete scoped to product", func(t *testing.T) {
		err := repo.Delete(ctx, c1.ID, 9999)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		require.NoError(t, repo.Delete(ctx, c1.ID, fx.product.ID))
		list, err := repo.FindAllByProductID(ctx, fx.product.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, c2.ID, list[0].ID)
	})
}

func TestUserRepositorySellers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedShop(t, db, "acme-shop", "kim")
	repo := NewUserRepository(db)

	seller, err := repo.FindSellerByURL(ctx, "acme-shop")
	require.NoError(t, err)
	assert.Equal(t, "kim", seller.ID)
	assert.Equal(t, "kim@example.com", seller.Email)

	seller, err = repo.FindSellerByID(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, "acme-shop", seller.ShopURL)

	require.NoError(t, repo.Insert(ctx, &user.User{ID: "lee", Name: "lee", Email: "lee@example.com"}))
	_, err = repo.FindSellerByID(ctx, "lee")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindSellerByURL(ctx, "nobody-shop")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.InsertSeller(ctx, "lee", "acme-shop")
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestPaymentRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	fx := seedShop(t, db, "acme-shop", "kim")
	repo := NewPaymentRepository(db)

	for _, p := range []*payment.Payment{
		{ShopURL: "acme-shop", CustomerID: "lee", ProductID: fx.product.ID, Quantity: 2},
		{ShopURL: "acme-shop", CustomerID: "park", ProductID: fx.product.ID, Quantity: 1, DiscountPercent: 50},
		{ShopURL: "other-shop", CustomerID: "lee", ProductID: fx.product.ID, Quantity: 1},
	} {
		require.NoError(t, repo.Insert(ctx, p))
	}

	all, err := repo.FindAllByURL(ctx, "acme-shop")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Claw hammer", all[0].Product.Name)
	assert.True(t, decimal.NewFromInt(12000).Equal(all[0].Product.Price))
	assert.True(t, all[0].RealPrice.IsZero(), "derived fields are left for SetAmount")

	mine, err := repo.FindAllByURLAndCustomer(ctx, "acme-shop", "lee")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].Quantity)
}
