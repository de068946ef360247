package product

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/notification"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/metrics"

	"go.uber.org/zap"
)

// Notifier 邮件通知（notification.EmailSender）
type Notifier interface {
	SendEmail(ctx context.Context, m notification.Mail) error
}

// ApplicationService 商品与评论
type ApplicationService struct {
	productRepo product.Repository
	commentRepo product.CommentRepository
	userRepo    user.Repository
	notifier    Notifier
	uow         shared.UnitOfWork
}

// NewApplicationService notifier 可以为 nil（不发邮件）
func NewApplicationService(
	productRepo product.Repository,
	commentRepo product.CommentRepository,
	userRepo user.Repository,
	notifier Notifier,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		productRepo: productRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		uow:         uow,
	}
}

// CommentRequest 评论请求
type CommentRequest struct {
	ID        int64  `json:"id" form:"id"`
	ProductID int64  `json:"productId" form:"productId"`
	UserID    string `json:"userId" form:"userId"`
	Content   string `json:"content" form:"content"`
}

// InsertComment 插入评论并返回该商品的完整评论列表。
// 商品不存在时返回 product.ErrInsertTargetNotFound。
func (s *ApplicationService) InsertComment(ctx context.Context, req CommentRequest) ([]product.Comment, error) {
	var (
		comments []product.Comment
		comment  *product.Comment
		p        *product.Product
		seller   *user.Seller
	)
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return product.NewInsertTargetNotFoundError(req.ProductID)
			}
			return err
		}
		// 商品缺失优先于内容校验
		comment, err = product.NewComment(req.ProductID, req.UserID, req.Content)
		if err != nil {
			return err
		}
		if err := s.commentRepo.Insert(ctx, comment); err != nil {
			return err
		}
		if s.notifier != nil {
			seller, err = s.userRepo.FindSellerByURL(ctx, p.ShopURL)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}
		comments, err = s.commentRepo.FindAllByProductID(ctx, req.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 事务已提交，邮件失败只记日志
	if seller != nil && seller.Email != "" && seller.ID != comment.UserID {
		s.notifySeller(ctx, seller, p, comment)
	}
	return comments, nil
}

func (s *ApplicationService) notifySeller(ctx context.Context, seller *user.Seller, p *product.Product, c *product.Comment) {
	recipient, err := user.NormalizeEmail(seller.Email)
	if err != nil {
		logger.FromContext(ctx).Warn("Seller email invalid, skip notice", zap.String("seller_id", seller.ID))
		return
	}
	m := notification.Mail{
		Subject: fmt.Sprintf("[JADO] %s 상품에 새 댓글이 달렸습니다", p.Name),
		Body: fmt.Sprintf("<p><b>%s</b>: %s</p><p>%s</p>",
			html.EscapeString(c.UserID), html.EscapeString(c.Content), html.EscapeString(p.Name)),
		Recipient: recipient,
	}
	if err := s.notifier.SendEmail(ctx, m); err != nil {
		metrics.RecordMailFailure()
		logger.FromContext(ctx).Warn("Comment notice not sent",
			zap.Int64("product_id", p.ID),
			zap.Int64("comment_id", c.ID),
			zap.Error(err),
		)
	}
}

// DeleteComment 删除评论并返回该商品的完整评论列表
func (s *ApplicationService) DeleteComment(ctx context.Context, req CommentRequest) ([]product.Comment, error) {
	var comments []product.Comment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.commentRepo.Delete(ctx, req.ID, req.ProductID); err != nil {
			return err
		}
		var err error
		comments, err = s.commentRepo.FindAllByProductID(ctx, req.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *ApplicationService) GetComments(ctx context.Context, productID int64) ([]product.Comment, error) {
	var comments []product.Comment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		comments, err = s.commentRepo.FindAllByProductID(ctx, productID)
		return err
	})
	return comments, err
}

// GetProduct 商品及其评论
func (s *ApplicationService) GetProduct(ctx context.Context, productID int64) (*product.Product, error) {
	var p *product.Product
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		p.Comments, err = s.commentRepo.FindAllByProductID(ctx, productID)
		return err
	})
	return p, err
}
