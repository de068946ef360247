package shop

import (
	"context"
	"errors"
	"mime/multipart"
	"path"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/article"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/storage"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImageUploader 店铺图片上传（storage.Uploader）
type ImageUploader interface {
	Destination(subdir, filename string) (local, publicURL string)
	UploadFile(ctx context.Context, file *multipart.FileHeader, dest string) error
}

// Dependencies 店铺应用服务依赖的仓储与基础设施
type Dependencies struct {
	Shops      shop.Repository
	Boards     shop.BoardRepository
	Categories shop.CategoryRepository
	Users      user.Repository
	Products   product.Repository
	Articles   article.Repository
	Payments   payment.Repository
	Uploader   ImageUploader
	UoW        shared.UnitOfWork
}

// ApplicationService 店铺编排服务：组装店铺视图、删除守卫、归属判断、支付汇总。
// Every method that touches a repository runs inside exactly one unit of work.
type ApplicationService struct {
	shopRepo     shop.Repository
	boardRepo    shop.BoardRepository
	categoryRepo shop.CategoryRepository
	userRepo     user.Repository
	productRepo  product.Repository
	articleRepo  article.Repository
	paymentRepo  payment.Repository
	uploader     ImageUploader
	uow          shared.UnitOfWork
}

func NewApplicationService(deps Dependencies) *ApplicationService {
	return &ApplicationService{
		shopRepo:     deps.Shops,
		boardRepo:    deps.Boards,
		categoryRepo: deps.Categories,
		userRepo:     deps.Users,
		productRepo:  deps.Products,
		articleRepo:  deps.Articles,
		paymentRepo:  deps.Payments,
		uploader:     deps.Uploader,
		uow:          deps.UoW,
	}
}

// SettingByID 卖家自己的店铺（设置页）；未登录或不是卖家时 not found
func (s *ApplicationService) SettingByID(ctx context.Context, userID string) (*shop.Shop, error) {
	if userID == "" {
		return nil, user.NewSellerNotFoundError(userID)
	}

	var result *shop.Shop
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		seller, err := s.userRepo.FindSellerByID(ctx, userID)
		if err != nil {
			return err
		}
		result, err = s.loadShop(ctx, seller.ShopURL)
		return err
	})
	return result, err
}

// GetShopByURL 店铺 + 看板 + 分类；viewerID 非空时计算 IsMyShop
func (s *ApplicationService) GetShopByURL(ctx context.Context, url, viewerID string) (*shop.Shop, error) {
	var result *shop.Shop
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		sh, err := s.loadShop(ctx, url)
		if err != nil {
			return err
		}
		if err := s.markOwnership(ctx, sh, viewerID); err != nil {
			return err
		}
		result = sh
		return nil
	})
	return result, err
}

func (s *ApplicationService) GetShopByCategoryID(ctx context.Context, categoryID int64, viewerID string) (*shop.Shop, error) {
	var result *shop.Shop
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		sh, err := s.shopRepo.FindByCategoryID(ctx, categoryID)
		if err != nil {
			return err
		}
		if err := s.attachChildren(ctx, sh); err != nil {
			return err
		}
		if err := s.markOwnership(ctx, sh, viewerID); err != nil {
			return err
		}
		result = sh
		return nil
	})
	return result, err
}

func (s *ApplicationService) loadShop(ctx context.Context, url string) (*shop.Shop, error) {
	sh, err := s.shopRepo.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := s.attachChildren(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *ApplicationService) attachChildren(ctx context.Context, sh *shop.Shop) error {
	boards, err := s.boardRepo.FindAllByURL(ctx, sh.URL)
	if err != nil {
		return err
	}
	categories, err := s.categoryRepo.FindAllByURL(ctx, sh.URL)
	if err != nil {
		return err
	}
	sh.Boards = boards
	sh.Categories = categories
	return nil
}

// markOwnership 店铺没有卖家时任何人都不是店主
func (s *ApplicationService) markOwnership(ctx context.Context, sh *shop.Shop, viewerID string) error {
	if viewerID == "" {
		return nil
	}
	sellerID := ""
	seller, err := s.userRepo.FindSellerByURL(ctx, sh.URL)
	switch {
	case err == nil:
		sellerID = seller.ID
	case !errors.Is(err, shared.ErrNotFound):
		return err
	}
	sh.MarkOwnership(viewerID, sellerID)
	return nil
}

// SettingEditInfo 只在字段确实变化时写库，返回合并后的店铺
func (s *ApplicationService) SettingEditInfo(ctx context.Context, edited *shop.Shop) (*shop.Shop, error) {
	var result *shop.Shop
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		stored, err := s.shopRepo.FindByURL(ctx, edited.URL)
		if err != nil {
			return err
		}
		if stored.UpdateFromSettingPage(edited) {
			if err := s.shopRepo.UpdateInfo(ctx, stored); err != nil {
				return err
			}
		}
		result = stored
		return nil
	})
	return result, err
}

// SettingEditImage 先上传文件，再在独立事务里更新图片地址。
// The two steps are not atomic: a failed metadata update leaves the stored
// file orphaned while the visible image url stays unchanged.
func (s *ApplicationService) SettingEditImage(ctx context.Context, fileInfo *storage.FileInfo) (string, error) {
	if fileInfo == nil || fileInfo.File == nil {
		return "", storage.ErrFileMissing
	}

	local, publicURL := s.uploader.Destination(path.Join("shop", fileInfo.URL), fileInfo.File.Filename)
	fileInfo.LocalLocation = local
	if err := s.uploader.UploadFile(ctx, fileInfo.File, local); err != nil {
		return "", err
	}

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.shopRepo.FindByURL(ctx, fileInfo.URL); err != nil {
			return err
		}
		return s.shopRepo.UpdateImageURL(ctx, fileInfo.URL, publicURL)
	})
	if err != nil {
		logger.FromContext(ctx).Warn("Image stored but shop not updated",
			zap.String("url", fileInfo.URL),
			zap.String("file", local),
			zap.Error(err),
		)
		return "", err
	}
	return publicURL, nil
}

// SettingEditTheme 修改卖家自己店铺的主题
func (s *ApplicationService) SettingEditTheme(ctx context.Context, theme int, userID string) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		url, err := s.sellerURL(ctx, userID)
		if err != nil {
			return err
		}
		return s.shopRepo.UpdateTheme(ctx, url, theme)
	})
}

// BoardInsert 每个名字插入一行。重名、空名不在服务端校验，由客户端负责。
func (s *ApplicationService) BoardInsert(ctx context.Context, names []string, shopURL string) ([]shop.Board, error) {
	var boards []shop.Board
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		for _, name := range names {
			if err := s.boardRepo.Insert(ctx, shop.NewBoard(shopURL, name)); err != nil {
				return err
			}
		}
		var err error
		boards, err = s.boardRepo.FindAllByURL(ctx, shopURL)
		return err
	})
	return boards, err
}

// CategoryInsert 同 BoardInsert，不做校验
func (s *ApplicationService) CategoryInsert(ctx context.Context, names []string, shopURL string) ([]shop.Category, error) {
	var categories []shop.Category
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		for _, name := range names {
			if err := s.categoryRepo.Insert(ctx, shop.NewCategory(name, shopURL)); err != nil {
				return err
			}
		}
		var err error
		categories, err = s.categoryRepo.FindAllByURL(ctx, shopURL)
		return err
	})
	return categories, err
}

// BoardDelete 看板下还有文章时拒绝删除；拒绝不是错误
func (s *ApplicationService) BoardDelete(ctx context.Context, boardID int64) (shop.DeleteResult, error) {
	var result shop.DeleteResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		count, err := s.boardRepo.CountArticles(ctx, boardID)
		if err != nil {
			return err
		}
		result = shop.GuardBoardDelete(count)
		if !result.IsDeleted() {
			metrics.RecordDeleteRefused("board")
			logger.FromContext(ctx).Debug("Board delete refused",
				zap.Int64("board_id", boardID),
				zap.Int64("articles", count),
			)
			return nil
		}
		return s.boardRepo.Remove(ctx, boardID)
	})
	return result, err
}

// CategoryDelete 分类下还有商品时拒绝删除
func (s *ApplicationService) CategoryDelete(ctx context.Context, categoryID int64) (shop.DeleteResult, error) {
	var result shop.DeleteResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		count, err := s.categoryRepo.CountProducts(ctx, categoryID)
		if err != nil {
			return err
		}
		result = shop.GuardCategoryDelete(count)
		if !result.IsDeleted() {
			metrics.RecordDeleteRefused("category")
			logger.FromContext(ctx).Debug("Category delete refused",
				zap.Int64("category_id", categoryID),
				zap.Int64("products", count),
			)
			return nil
		}
		return s.categoryRepo.Remove(ctx, categoryID)
	})
	return result, err
}

// GetPayments 卖家看到店铺全部支付记录，其他人只看到自己的
func (s *ApplicationService) GetPayments(ctx context.Context, customer *user.User, url string) ([]payment.WithProduct, error) {
	if customer == nil || customer.ID == "" {
		return nil, shared.NewUnauthorizedError("login required")
	}

	var payments []payment.WithProduct
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		seller, err := s.userRepo.FindSellerByURL(ctx, url)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if user.IsSameUser(customer.ID, seller) {
			payments, err = s.paymentRepo.FindAllByURL(ctx, url)
		} else {
			payments, err = s.paymentRepo.FindAllByURLAndCustomer(ctx, url, customer.ID)
		}
		return err
	})
	return payments, err
}

// GetPaymentsTotal 按输入顺序计算每条的 RealPrice 并求和；空列表为 0
func (s *ApplicationService) GetPaymentsTotal(payments []payment.WithProduct) decimal.Decimal {
	return payment.Total(payments)
}

// GetURL 卖家的店铺 URL
func (s *ApplicationService) GetURL(ctx context.Context, userID string) (string, error) {
	var url string
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		url, err = s.sellerURL(ctx, userID)
		return err
	})
	return url, err
}

func (s *ApplicationService) sellerURL(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", user.NewSellerNotFoundError(userID)
	}
	seller, err := s.userRepo.FindSellerByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return seller.ShopURL, nil
}

func (s *ApplicationService) GetMyInfo(ctx context.Context, userID string) (*user.User, error) {
	var u *user.User
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.userRepo.FindByID(ctx, userID)
		return err
	})
	return u, err
}

func (s *ApplicationService) SettingProductByURL(ctx context.Context, url string) ([]product.Product, error) {
	var products []product.Product
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.productRepo.FindAllByURL(ctx, url)
		return err
	})
	if err == nil {
		logger.FromContext(ctx).Debug("Setting products loaded", zap.String("url", url), zap.Int("count", len(products)))
	}
	return products, err
}

func (s *ApplicationService) GetCategoryByID(ctx context.Context, categoryID int64) (*shop.Category, error) {
	var c *shop.Category
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.categoryRepo.FindByID(ctx, categoryID)
		return err
	})
	return c, err
}

func (s *ApplicationService) GetProducts(ctx context.Context, categoryID int64) ([]product.Product, error) {
	var products []product.Product
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.productRepo.FindAllByCategoryID(ctx, categoryID)
		return err
	})
	return products, err
}

// GetArticles 看板不存在时返回 not-found，而不是空列表
func (s *ApplicationService) GetArticles(ctx context.Context, boardID int64) ([]article.Article, error) {
	var articles []article.Article
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.boardRepo.FindByID(ctx, boardID); err != nil {
			return err
		}
		var err error
		articles, err = s.articleRepo.FindAllByBoardID(ctx, boardID)
		return err
	})
	return articles, err
}

// GetBoard 在已加载的列表里查找；找不到返回 false
func (s *ApplicationService) GetBoard(boardID int64, boards []shop.Board) (*shop.Board, bool) {
	return shop.FindBoard(boardID, boards)
}

func (s *ApplicationService) GetCategory(categoryID int64, categories []shop.Category) (*shop.Category, bool) {
	return shop.FindCategory(categoryID, categories)
}
