package repositories

import (
	"errors"

	"conduit-backend/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Exists(userID, articleID uint) (bool, error)
	// Add inserts the edge and bumps the article counter in one transaction.
	// Returns false when the edge already existed.
	Add(userID, articleID uint) (bool, error)
	// Remove deletes the edge and decrements the counter in one transaction.
	// Returns false when there was no edge to remove.
	Remove(userID, articleID uint) (bool, error)
	ArticleIDs(userID uint) ([]uint, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(userID, articleID uint) (bool, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *favoriteRepository) Add(userID, articleID uint) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var favorite models.Favorite
		err := tx.Where("user_id = ? AND article_id = ?", userID, articleID).First(&favorite).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.Favorite{UserID: userID, ArticleID: articleID}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Article{}).Where("id = ?", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + ?", 1)).Error; err != nil {
			return err
		}

		added = true
		return nil
	})

	return added, err
}

func (r *favoriteRepository) Remove(userID, articleID uint) (bool, error) {
	removed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Article{}).Where("id = ?", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - ?", 1)).Error; err != nil {
			return err
		}

		removed = true
		return nil
	})

	return removed, err
}

func (r *favoriteRepository) ArticleIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Pluck("article_id", &ids).Error
	return ids, err
}
