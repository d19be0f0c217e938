package services

import (
	"conduit-backend/models"
	"conduit-backend/repositories"
)

type TagService interface {
	GetTags() (*models.TagsResponse, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags() (*models.TagsResponse, error) {
	names, err := s.tagRepo.GetAllNames()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return &models.TagsResponse{Tags: names}, nil
}
