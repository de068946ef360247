package relational

import (
	"context"
	"errors"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shop"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

type BoardRepository struct {
	conn
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{conn{db: db}}
}

func (r *BoardRepository) FindByID(ctx context.Context, id int64) (*shop.Board, error) {
	var boardPO po.BoardPO
	if err := r.getDB(ctx).First(&boardPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.NewBoardNotFoundError(id)
		}
		return nil, err
	}
	b := boardPO.ToDomain()
	return &b, nil
}

func (r *BoardRepository) FindAllByURL(ctx context.Context, shopURL string) ([]shop.Board, error) {
	var pos []po.BoardPO
	if err := r.getDB(ctx).Where("shop_url = ?", shopURL).Order("id").Find(&pos).Error; err != nil {
		return nil, err
	}
	boards := make([]shop.Board, 0, len(pos))
	for i := range pos {
		boards = append(boards, pos[i].ToDomain())
	}
	return boards, nil
}

func (r *BoardRepository) Insert(ctx context.Context, b *shop.Board) error {
	boardPO := &po.BoardPO{ShopURL: b.ShopURL, Name: b.Name}
	if err := r.getDB(ctx).Create(boardPO).Error; err != nil {
		return err
	}
	b.ID = boardPO.ID
	return nil
}

func (r *BoardRepository) Remove(ctx context.Context, id int64) error {
	return r.getDB(ctx).Delete(&po.BoardPO{}, id).Error
}

// CountArticles 与 ArticleRepository 共用同一连接（事务内即同一 tx）
func (r *BoardRepository) CountArticles(ctx context.Context, boardID int64) (int64, error) {
	return (&ArticleRepository{r.conn}).CountByBoardID(ctx, boardID)
}

var _ shop.BoardRepository = (*BoardRepository)(nil)
