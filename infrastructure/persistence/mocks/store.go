package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/article"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
)

// Store 内存数据集，所有 Mock 仓储共享同一份数据。
// Each repository is a view over the store so that counts and joins
// (articles per board, a category's shop) behave like the relational one.
type Store struct {
	mu sync.RWMutex

	shops      map[string]shop.Shop
	boards     map[int64]shop.Board
	categories map[int64]shop.Category
	articles   map[int64]article.Article
	products   map[int64]product.Product
	comments   map[int64]product.Comment
	users      map[string]user.User
	sellers    map[string]string // user id -> shop url
	payments   []payment.Payment
	nextID     int64

	// UpdateInfoCalls 记录 ShopRepository.UpdateInfo 的写入次数
	UpdateInfoCalls int
}

func NewStore() *Store {
	return &Store{
		shops:      make(map[string]shop.Shop),
		boards:     make(map[int64]shop.Board),
		categories: make(map[int64]shop.Category),
		articles:   make(map[int64]article.Article),
		products:   make(map[int64]product.Product),
		comments:   make(map[int64]product.Comment),
		users:      make(map[string]user.User),
		sellers:    make(map[string]string),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Shops() *MockShopRepository           { return &MockShopRepository{s} }
func (s *Store) Boards() *MockBoardRepository         { return &MockBoardRepository{s} }
func (s *Store) Categories() *MockCategoryRepository  { return &MockCategoryRepository{s} }
func (s *Store) Articles() *MockArticleRepository     { return &MockArticleRepository{s} }
func (s *Store) Products() *MockProductRepository     { return &MockProductRepository{s} }
func (s *Store) Comments() *MockCommentRepository     { return &MockCommentRepository{s} }
func (s *Store) Users() *MockUserRepository           { return &MockUserRepository{s} }
func (s *Store) Payments() *MockPaymentRepository     { return &MockPaymentRepository{s} }

func sortedByID[T any](m map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// ---- shop ----

type MockShopRepository struct{ s *Store }

func (r *MockShopRepository) FindByURL(ctx context.Context, url string) (*shop.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shops[url]
	if !ok {
		return nil, shop.NewShopNotFoundError(url)
	}
	return &sh, nil
}

func (r *MockShopRepository) FindByCategoryID(ctx context.Context, categoryID int64) (*shop.Shop, error) {
	r.s.mu.RLock()
	c, ok := r.s.categories[categoryID]
	r.s.mu.RUnlock()
	if !ok {
		return nil, shop.NewCategoryNotFoundError(categoryID)
	}
	return r.FindByURL(ctx, c.ShopURL)
}

func (r *MockShopRepository) Insert(ctx context.Context, sh *shop.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.shops[sh.URL]; exists {
		return shop.NewShopURLTakenError(sh.URL)
	}
	stored := *sh
	stored.Boards, stored.Categories, stored.IsMyShop = nil, nil, nil
	r.s.shops[sh.URL] = stored
	return nil
}

func (r *MockShopRepository) UpdateInfo(ctx context.Context, sh *shop.Shop) error {
	return r.update(sh.URL, func(stored *shop.Shop) {
		r.s.UpdateInfoCalls++
		stored.Title = sh.Title
		stored.Description = sh.Description
		stored.Phone = sh.Phone
		stored.Footer = sh.Footer
	})
}

func (r *MockShopRepository) UpdateImageURL(ctx context.Context, url, imageURL string) error {
	return r.update(url, func(stored *shop.Shop) { stored.ImageURL = imageURL })
}

func (r *MockShopRepository) UpdateTheme(ctx context.Context, url string, theme int) error {
	return r.update(url, func(stored *shop.Shop) { stored.Theme = theme })
}

// update 与 UPDATE ... WHERE url = ? 一致：行不存在时静默无操作
func (r *MockShopRepository) update(url string, apply func(*shop.Shop)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.shops[url]
	if !ok {
		return nil
	}
	apply(&stored)
	r.s.shops[url] = stored
	return nil
}

// ---- board / category ----

type MockBoardRepository struct{ s *Store }

func (r *MockBoardRepository) FindByID(ctx context.Context, id int64) (*shop.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.boards[id]
	if !ok {
		return nil, shop.NewBoardNotFoundError(id)
	}
	return &b, nil
}

func (r *MockBoardRepository) FindAllByURL(ctx context.Context, shopURL string) ([]shop.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.boards, func(b shop.Board) bool { return b.ShopURL == shopURL }), nil
}

func (r *MockBoardRepository) Insert(ctx context.Context, b *shop.Board) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	r.s.boards[b.ID] = *b
	return nil
}

func (r *MockBoardRepository) Remove(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.boards, id)
	return nil
}

func (r *MockBoardRepository) CountArticles(ctx context.Context, boardID int64) (int64, error) {
	return r.s.Articles().CountByBoardID(ctx, boardID)
}

type MockCategoryRepository struct{ s *Store }

func (r *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*shop.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, shop.NewCategoryNotFoundError(id)
	}
	return &c, nil
}

func (r *MockCategoryRepository) FindAllByURL(ctx context.Context, shopURL string) ([]shop.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.categories, func(c shop.Category) bool { return c.ShopURL == shopURL }), nil
}

func (r *MockCategoryRepository) Insert(ctx context.Context, c *shop.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *MockCategoryRepository) Remove(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

func (r *MockCategoryRepository) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// ---- article ----

type MockArticleRepository struct{ s *Store }

func (r *MockArticleRepository) FindAllByBoardID(ctx context.Context, boardID int64) ([]article.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedByID(r.s.articles, func(a article.Article) bool { return a.BoardID == boardID })
	// newest first
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (r *MockArticleRepository) Insert(ctx context.Context, a *article.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.s.articles[a.ID] = *a
	return nil
}

func (r *MockArticleRepository) CountByBoardID(ctx context.Context, boardID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, a := range r.s.articles {
		if a.BoardID == boardID {
			n++
		}
	}
	return n, nil
}

// ---- product / comment ----

type MockProductRepository struct{ s *Store }

func (r *MockProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return &p, nil
}

func (r *MockProductRepository) FindAllByURL(ctx context.Context, shopURL string) ([]product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.products, func(p product.Product) bool { return p.ShopURL == shopURL }), nil
}

func (r *MockProductRepository) FindAllByCategoryID(ctx context.Context, categoryID int64) ([]product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.products, func(p product.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *MockProductRepository) Insert(ctx context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	stored := *p
	stored.Comments = nil
	r.s.products[p.ID] = stored
	return nil
}

type MockCommentRepository struct{ s *Store }

func (r *MockCommentRepository) FindAllByProductID(ctx context.Context, productID int64) ([]product.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.comments, func(c product.Comment) bool { return c.ProductID == productID }), nil
}

// Insert 模拟外键约束
func (r *MockCommentRepository) Insert(ctx context.Context, c *product.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[c.ProductID]; !ok {
		return product.NewInsertTargetNotFoundError(c.ProductID)
	}
	c.ID = r.s.id()
	r.s.comments[c.ID] = *c
	return nil
}

func (r *MockCommentRepository) Delete(ctx context.Context, id, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok || c.ProductID != productID {
		return product.NewCommentNotFoundError(id)
	}
	delete(r.s.comments, id)
	return nil
}

// ---- user ----

type MockUserRepository struct{ s *Store }

func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.NewUserNotFoundError(id)
	}
	return &u, nil
}

func (r *MockUserRepository) Insert(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[u.ID]; exists {
		return shared.NewConflictError("user", "user id or email already exists")
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *MockUserRepository) FindSellerByID(ctx context.Context, id string) (*user.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	url, ok := r.s.sellers[id]
	u, exists := r.s.users[id]
	if !ok || !exists {
		return nil, user.NewSellerNotFoundError(id)
	}
	return &user.Seller{User: u, ShopURL: url}, nil
}

func (r *MockUserRepository) FindSellerByURL(ctx context.Context, shopURL string) (*user.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, url := range r.s.sellers {
		if url == shopURL {
			return &user.Seller{User: r.s.users[id], ShopURL: url}, nil
		}
	}
	return nil, user.NewSellerNotFoundError(shopURL)
}

func (r *MockUserRepository) InsertSeller(ctx context.Context, userID, shopURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return user.NewUserNotFoundError(userID)
	}
	for id, url := range r.s.sellers {
		if id == userID || url == shopURL {
			return shared.NewConflictError("seller", "user already owns a shop or shop already has a seller")
		}
	}
	r.s.sellers[userID] = shopURL
	return nil
}

// ---- payment ----

type MockPaymentRepository struct{ s *Store }

func (r *MockPaymentRepository) FindAllByURL(ctx context.Context, shopURL string) ([]payment.WithProduct, error) {
	return r.find(func(p payment.Payment) bool { return p.ShopURL == shopURL }), nil
}

func (r *MockPaymentRepository) FindAllByURLAndCustomer(ctx context.Context, shopURL, customerID string) ([]payment.WithProduct, error) {
	return r.find(func(p payment.Payment) bool { return p.ShopURL == shopURL && p.CustomerID == customerID }), nil
}

func (r *MockPaymentRepository) find(keep func(payment.Payment) bool) []payment.WithProduct {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]payment.WithProduct, 0)
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, payment.WithProduct{Payment: p, Product: r.s.products[p.ProductID]})
		}
	}
	return out
}

func (r *MockPaymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

var (
	_ shop.Repository           = (*MockShopRepository)(nil)
	_ shop.BoardRepository      = (*MockBoardRepository)(nil)
	_ shop.CategoryRepository   = (*MockCategoryRepository)(nil)
	_ article.Repository        = (*MockArticleRepository)(nil)
	_ product.Repository        = (*MockProductRepository)(nil)
	_ product.CommentRepository = (*MockCommentRepository)(nil)
	_ user.Repository           = (*MockUserRepository)(nil)
	_ payment.Repository        = (*MockPaymentRepository)(nil)
)
