package services

import (
	"errors"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"conduit-backend/models"
	"conduit-backend/repositories"
)

type ArticleService interface {
	CreateArticle(user *models.User, req models.CreateArticle) (*models.ArticleResponse, error)
	GetArticle(requesterID uint, slug string) (*models.ArticleResponse, error)
	UpdateArticle(userID uint, slug string, upd models.UpdateArticle) (*models.ArticleResponse, error)
	DeleteArticle(userID uint, slug string) error
	Feed(requesterID uint, params models.FeedParams) (*models.ArticlesResponse, error)
	Favorite(userID uint, slug string) (*models.ArticleResponse, error)
	Unfavorite(userID uint, slug string) (*models.ArticleResponse, error)
}

type articleService struct {
	articleRepo  repositories.ArticleRepository
	userRepo     repositories.UserRepository
	favoriteRepo repositories.FavoriteRepository
	tagRepo      repositories.TagRepository
}

func NewArticleService(
	articleRepo repositories.ArticleRepository,
	userRepo repositories.UserRepository,
	favoriteRepo repositories.FavoriteRepository,
	tagRepo repositories.TagRepository,
) ArticleService {
	return &articleService{
		articleRepo:  articleRepo,
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		tagRepo:      tagRepo,
	}
}

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// makeSlug lowercases the title, replaces runs of non-alphanumerics with a
// dash and appends a 6-character random base36 suffix. Uniqueness is
// best-effort; the column's unique index catches the unlucky collision.
func makeSlug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = slugSuffixAlphabet[rand.Intn(len(slugSuffixAlphabet))]
	}

	if slug == "" {
		return string(suffix)
	}
	return slug + "-" + string(suffix)
}

func (s *articleService) getBySlug(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article does not exist"}
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) isFavorited(userID uint, articleID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.favoriteRepo.Exists(userID, articleID)
}

func (s *articleService) CreateArticle(user *models.User, req models.CreateArticle) (*models.ArticleResponse, error) {
	tagList := req.TagList
	if tagList == nil {
		tagList = []string{}
	}

	article := &models.Article{
		Slug:        makeSlug(req.Title),
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     models.TagList(tagList),
		AuthorID:    user.ID,
		Author:      *user,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	if err := s.tagRepo.UpsertNames(tagList); err != nil {
		return nil, err
	}

	return &models.ArticleResponse{Article: article.View(false)}, nil
}

func (s *articleService) GetArticle(requesterID uint, slug string) (*models.ArticleResponse, error) {
	article, err := s.getBySlug(slug)
	if err != nil {
		return nil, err
	}

	favorited, err := s.isFavorited(requesterID, article.ID)
	if err != nil {
		return nil, err
	}

	return &models.ArticleResponse{Article: article.View(favorited)}, nil
}

func (s *articleService) UpdateArticle(userID uint, slug string, upd models.UpdateArticle) (*models.ArticleResponse, error) {
	article, err := s.getBySlug(slug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != userID {
		return nil, models.ErrorBadRequest{Message: "you should be the author of this article for updating"}
	}

	article.ApplyUpdate(upd)

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	favorited, err := s.isFavorited(userID, article.ID)
	if err != nil {
		return nil, err
	}

	return &models.ArticleResponse{Article: article.View(favorited)}, nil
}

func (s *articleService) DeleteArticle(userID uint, slug string) error {
	article, err := s.getBySlug(slug)
	if err != nil {
		return err
	}

	if article.AuthorID != userID {
		return models.ErrorBadRequest{Message: "you should be the author of this article for deleting"}
	}

	return s.articleRepo.DeleteBySlug(slug)
}

func (s *articleService) Feed(requesterID uint, params models.FeedParams) (*models.ArticlesResponse, error) {
	filter := models.ArticleFilter{
		Tag:    params.Tag,
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if params.Author != "" {
		author, err := s.userRepo.GetByUsername(params.Author)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// Unknown author degenerates to a no-match filter, not an error.
			var none uint
			filter.AuthorID = &none
		} else {
			filter.AuthorID = &author.ID
		}
	}

	if params.Favorited != "" {
		ids := []uint{}
		user, err := s.userRepo.GetByUsername(params.Favorited)
		if err == nil {
			ids, err = s.favoriteRepo.ArticleIDs(user.ID)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		filter.ArticleIDs = &ids
	}

	articles, total, err := s.articleRepo.List(filter)
	if err != nil {
		return nil, err
	}

	favoriteSet := map[uint]bool{}
	if requesterID > 0 {
		favoriteIDs, err := s.favoriteRepo.ArticleIDs(requesterID)
		if err != nil {
			return nil, err
		}
		for _, id := range favoriteIDs {
			favoriteSet[id] = true
		}
	}

	views := make([]models.ArticleView, 0, len(articles))
	for i := range articles {
		views = append(views, articles[i].View(favoriteSet[articles[i].ID]))
	}

	return &models.ArticlesResponse{Articles: views, ArticlesCount: total}, nil
}

func (s *articleService) Favorite(userID uint, slug string) (*models.ArticleResponse, error) {
	article, err := s.getBySlug(slug)
	if err != nil {
		return nil, err
	}

	added, err := s.favoriteRepo.Add(userID, article.ID)
	if err != nil {
		return nil, err
	}
	if added {
		article.FavoritesCount++
	}

	return &models.ArticleResponse{Article: article.View(true)}, nil
}

func (s *articleService) Unfavorite(userID uint, slug string) (*models.ArticleResponse, error) {
	article, err := s.getBySlug(slug)
	if err != nil {
		return nil, err
	}

	removed, err := s.favoriteRepo.Remove(userID, article.ID)
	if err != nil {
		return nil, err
	}
	if removed {
		article.FavoritesCount--
	}

	return &models.ArticleResponse{Article: article.View(false)}, nil
}
