package po

import (
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/user"
)

type UserPO struct {
	ID           string `gorm:"primaryKey;size:64"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:100"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

func (p *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	}
}

// SellerPO 一个用户最多一个店铺，一个店铺最多一个 seller
type SellerPO struct {
	UserID  string `gorm:"primaryKey;size:64"`
	ShopURL string `gorm:"size:64;uniqueIndex;not null"`

	User UserPO `gorm:"foreignKey:UserID"`
}

func (SellerPO) TableName() string {
	return "sellers"
}

func (p *SellerPO) ToDomain() *user.Seller {
	return &user.Seller{
		User:    *p.User.ToDomain(),
		ShopURL: p.ShopURL,
	}
}
