package relational

import (
	"context"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/article"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	conn
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{conn{db: db}}
}

func (r *ArticleRepository) FindAllByBoardID(ctx context.Context, boardID int64) ([]article.Article, error) {
	var pos []po.ArticlePO
	if err := r.getDB(ctx).Where("board_id = ?", boardID).Order("id DESC").Find(&pos).Error; err != nil {
		return nil, err
	}
	articles := make([]article.Article, 0, len(pos))
	for i := range pos {
		articles = append(articles, pos[i].ToDomain())
	}
	return articles, nil
}

func (r *ArticleRepository) Insert(ctx context.Context, a *article.Article) error {
	articlePO := po.FromArticleDomain(a)
	if err := r.getDB(ctx).Create(articlePO).Error; err != nil {
		return err
	}
	a.ID = articlePO.ID
	a.CreatedAt = articlePO.CreatedAt
	return nil
}

func (r *ArticleRepository) CountByBoardID(ctx context.Context, boardID int64) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ArticlePO{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

var _ article.Repository = (*ArticleRepository)(nil)
