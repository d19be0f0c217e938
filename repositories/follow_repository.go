package repositories

import (
	"errors"

	"conduit-backend/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Exists(followerID, followingID uint) (bool, error)
	// Create inserts the edge if it does not exist yet; idempotent.
	Create(followerID, followingID uint) error
	// Delete removes the edge, reporting whether one was there.
	Delete(followerID, followingID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(followerID, followingID uint) (bool, error) {
	var follow models.Follow
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *followRepository) Create(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var follow models.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
	})
}

func (r *followRepository) Delete(followerID, followingID uint) (bool, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
