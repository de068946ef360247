package po

import (
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/payment"
)

type PaymentPO struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	ShopURL         string    `gorm:"size:64;index;not null"`
	CustomerID      string    `gorm:"size:64;index;not null"`
	ProductID       int64     `gorm:"index;not null"`
	Quantity        int       `gorm:"not null;default:1"`
	DiscountPercent int       `gorm:"not null;default:0"`
	PaidAt          time.Time `gorm:"autoCreateTime"`

	Product ProductPO `gorm:"foreignKey:ProductID"`
}

func (PaymentPO) TableName() string {
	return "payments"
}

func FromPaymentDomain(p *payment.Payment) *PaymentPO {
	return &PaymentPO{
		ID:              p.ID,
		ShopURL:         p.ShopURL,
		CustomerID:      p.CustomerID,
		ProductID:       p.ProductID,
		Quantity:        p.Quantity,
		DiscountPercent: p.DiscountPercent,
		PaidAt:          p.PaidAt,
	}
}

// ToDomain 需要 Product 已 Preload；金额字段留给 SetAmount 计算
func (p *PaymentPO) ToDomain() payment.WithProduct {
	return payment.WithProduct{
		Payment: payment.Payment{
			ID:              p.ID,
			ShopURL:         p.ShopURL,
			CustomerID:      p.CustomerID,
			ProductID:       p.ProductID,
			Quantity:        p.Quantity,
			DiscountPercent: p.DiscountPercent,
			PaidAt:          p.PaidAt,
		},
		Product: p.Product.ToDomain(),
	}
}
