/*
Package shop 店铺领域：Shop 聚合（看板 Board、商品分类 Category）。

A Shop is addressed by its URL slug. Boards and categories belong to one
shop through that URL and are loaded next to it when the storefront is
assembled.
*/
package shop

// Shop 店铺
type Shop struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Footer      string `json:"footer"`
	Theme       int    `json:"theme"`
	ImageURL    string `json:"imageUrl"`

	Boards     []Board    `json:"boards,omitempty"`
	Categories []Category `json:"categories,omitempty"`

	// IsMyShop is computed per request and never stored; nil when there
	// is no viewer.
	IsMyShop *bool `json:"isMyShop,omitempty"`
}

// UpdateFromSettingPage copies the fields editable on the setting page
// from edited and reports whether any of them differed.
// URL, theme and image have their own operations and are left alone.
func (s *Shop) UpdateFromSettingPage(edited *Shop) bool {
	if edited == nil {
		return false
	}
	changed := false
	if s.Title != edited.Title {
		s.Title = edited.Title
		changed = true
	}
	if s.Description != edited.Description {
		s.Description = edited.Description
		changed = true
	}
	if s.Phone != edited.Phone {
		s.Phone = edited.Phone
		changed = true
	}
	if s.Footer != edited.Footer {
		s.Footer = edited.Footer
		changed = true
	}
	return changed
}

// MarkOwnership sets IsMyShop for a viewer. An empty viewer leaves the
// flag unset; a missing seller never makes the viewer an owner.
func (s *Shop) MarkOwnership(viewerID, sellerID string) {
	if viewerID == "" {
		return
	}
	mine := sellerID != "" && viewerID == sellerID
	s.IsMyShop = &mine
}

// Board 看板，文章（Article）的容器
type Board struct {
	ID      int64  `json:"id"`
	ShopURL string `json:"url"`
	Name    string `json:"name"`
}

func NewBoard(shopURL, name string) *Board {
	return &Board{ShopURL: shopURL, Name: name}
}

// Category 商品分类
type Category struct {
	ID      int64  `json:"id"`
	ShopURL string `json:"url"`
	Name    string `json:"name"`
}

func NewCategory(name, shopURL string) *Category {
	return &Category{ShopURL: shopURL, Name: name}
}

// FindBoard is a linear lookup over an already-loaded list.
func FindBoard(boardID int64, boards []Board) (*Board, bool) {
	for i := range boards {
		if boards[i].ID == boardID {
			return &boards[i], true
		}
	}
	return nil, false
}

// FindCategory is a linear lookup over an already-loaded list.
func FindCategory(categoryID int64, categories []Category) (*Category, bool) {
	for i := range categories {
		if categories[i].ID == categoryID {
			return &categories[i], true
		}
	}
	return nil, false
}
