package repositories

import (
	"errors"

	"conduit-backend/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	// UpsertNames creates any tags that do not exist yet.
	UpsertNames(names []string) error
	GetAllNames() ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) UpsertNames(names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		err := r.db.Where("name = ?", name).First(&tag).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := r.db.Create(&models.Tag{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *tagRepository) GetAllNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.Tag{}).Order("name asc").Pluck("name", &names).Error
	return names, err
}
