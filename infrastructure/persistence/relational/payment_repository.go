package relational

import (
	"context"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	conn
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{conn{db: db}}
}

func (r *PaymentRepository) FindAllByURL(ctx context.Context, shopURL string) ([]payment.WithProduct, error) {
	return r.find(r.getDB(ctx).Where("shop_url = ?", shopURL))
}

func (r *PaymentRepository) FindAllByURLAndCustomer(ctx context.Context, shopURL, customerID string) ([]payment.WithProduct, error) {
	return r.find(r.getDB(ctx).Where("shop_url = ? AND customer_id = ?", shopURL, customerID))
}

func (r *PaymentRepository) find(db *gorm.DB) ([]payment.WithProduct, error) {
	var pos []po.PaymentPO
	if err := db.Preload("Product").Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	payments := make([]payment.WithProduct, 0, len(pos))
	for i := range pos {
		payments = append(payments, pos[i].ToDomain())
	}
	return payments, nil
}

func (r *PaymentRepository) Insert(ctx context.Context, p *payment.Payment) error {
	paymentPO := po.FromPaymentDomain(p)
	if err := r.getDB(ctx).Omit(clause.Associations).Create(paymentPO).Error; err != nil {
		return err
	}
	p.ID = paymentPO.ID
	p.PaidAt = paymentPO.PaidAt
	return nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
