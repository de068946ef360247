package po

import (
	"time"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/article"
)

type ArticlePO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	BoardID   int64     `gorm:"index;not null"`
	Title     string    `gorm:"size:200"`
	Content   string    `gorm:"type:text"`
	WriterID  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ArticlePO) TableName() string {
	return "articles"
}

func FromArticleDomain(a *article.Article) *ArticlePO {
	return &ArticlePO{
		ID:        a.ID,
		BoardID:   a.BoardID,
		Title:     a.Title,
		Content:   a.Content,
		WriterID:  a.WriterID,
		CreatedAt: a.CreatedAt,
	}
}

func (p *ArticlePO) ToDomain() article.Article {
	return article.Article{
		ID:        p.ID,
		BoardID:   p.BoardID,
		Title:     p.Title,
		Content:   p.Content,
		WriterID:  p.WriterID,
		CreatedAt: p.CreatedAt,
	}
}
