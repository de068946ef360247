/*
Package user 用户领域：Customer（普通用户）与 Seller（店主）。

A Seller is a user that owns exactly one shop, referenced by URL. Whether a
viewer owns a given shop is decided by comparing ids against that shop's
seller.
*/
package user

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User 用户（Customer）
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Seller 店主，一个 Seller 只拥有一个 Shop
type Seller struct {
	User
	ShopURL string `json:"url"`
}

// Owns 判断 seller 是否拥有该店铺
func (s *Seller) Owns(shopURL string) bool {
	return s != nil && s.ShopURL == shopURL
}

// IsSameUser nil-safe id comparison. An empty id never matches.
func IsSameUser(customerID string, seller *Seller) bool {
	if seller == nil || customerID == "" {
		return false
	}
	return seller.ID == customerID
}

// NormalizeEmail lowercases and trims an address and checks its format.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return "", NewInvalidEmailError(email)
	}
	return email, nil
}
