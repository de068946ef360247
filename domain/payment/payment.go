/*
Package payment 支付记录与金额计算。

Amount and RealPrice are derived on read by SetAmount and are never stored.
*/
package payment

import (
	"context"
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/product"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Payment 支付记录
type Payment struct {
	ID              int64     `json:"id"`
	ShopURL         string    `json:"url"`
	CustomerID      string    `json:"customerId"`
	ProductID       int64     `json:"productId"`
	Quantity        int       `json:"quantity"`
	DiscountPercent int       `json:"discountPercent"`
	PaidAt          time.Time `json:"paidAt"`
}

// WithProduct 支付记录 + 所购商品
type WithProduct struct {
	Payment
	Product product.Product `json:"product"`

	Amount    decimal.Decimal `json:"amount"`
	RealPrice decimal.Decimal `json:"realPrice"`
}

// SetAmount 计算 Amount = price × quantity, RealPrice = Amount 扣除折扣。
// 折扣百分比被夹在 [0, 100]。
func (p *WithProduct) SetAmount() {
	p.Amount = p.Product.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))

	discount := p.DiscountPercent
	if discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}
	off := p.Amount.Mul(decimal.NewFromInt(int64(discount))).Div(hundred)
	p.RealPrice = p.Amount.Sub(off)
}

// Total 按输入顺序计算并累加 RealPrice；空列表为 0
func Total(payments []WithProduct) decimal.Decimal {
	total := decimal.Zero
	for i := range payments {
		payments[i].SetAmount()
		total = total.Add(payments[i].RealPrice)
	}
	return total
}

// Repository Payment persistence gateway
type Repository interface {
	FindAllByURL(ctx context.Context, shopURL string) ([]WithProduct, error)
	FindAllByURLAndCustomer(ctx context.Context, shopURL, customerID string) ([]WithProduct, error)
	Insert(ctx context.Context, p *Payment) error
}
