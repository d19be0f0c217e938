package repositories

import (
	"conduit-backend/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetBySlug(slug string) (*models.Article, error)
	List(filter models.ArticleFilter) ([]models.Article, int64, error)
	Update(article *models.Article) error
	DeleteBySlug(slug string) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *articleRepository) List(filter models.ArticleFilter) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Author")

	// Count is taken before any filter is applied, so articlesCount reflects
	// the whole table. This matches the listing endpoint this query was
	// ported from.
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Tag != "" {
		query = query.Where("tag_list LIKE ?", "%"+filter.Tag+"%")
	}

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	if filter.ArticleIDs != nil {
		ids := *filter.ArticleIDs
		if len(ids) == 0 {
			return []models.Article{}, total, nil
		}
		query = query.Where("id IN ?", ids)
	}

	query = query.Order("created_at desc")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) DeleteBySlug(slug string) error {
	return r.db.Where("slug = ?", slug).Delete(&models.Article{}).Error
}
