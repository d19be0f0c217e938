package services

import (
	"errors"

	"gorm.io/gorm"

	"conduit-backend/models"
	"conduit-backend/repositories"
)

type ProfileService interface {
	GetProfile(requesterID uint, username string) (*models.ProfileResponse, error)
	Follow(userID uint, username string) (*models.ProfileResponse, error)
	Unfollow(userID uint, username string) (*models.ProfileResponse, error)
}

type profileService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

func NewProfileService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) ProfileService {
	return &profileService{userRepo: userRepo, followRepo: followRepo}
}

func (s *profileService) getUser(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "profile does not exist"}
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) GetProfile(requesterID uint, username string) (*models.ProfileResponse, error) {
	user, err := s.getUser(username)
	if err != nil {
		return nil, err
	}

	following := false
	if requesterID > 0 {
		following, err = s.followRepo.Exists(requesterID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.ProfileResponse{Profile: user.Profile(following)}, nil
}

func (s *profileService) Follow(userID uint, username string) (*models.ProfileResponse, error) {
	user, err := s.getUser(username)
	if err != nil {
		return nil, err
	}

	if user.ID == userID {
		return nil, models.ErrorBadRequest{Message: "follower and following cannot be equal"}
	}

	if err := s.followRepo.Create(userID, user.ID); err != nil {
		return nil, err
	}

	return &models.ProfileResponse{Profile: user.Profile(true)}, nil
}

func (s *profileService) Unfollow(userID uint, username string) (*models.ProfileResponse, error) {
	user, err := s.getUser(username)
	if err != nil {
		return nil, err
	}

	if user.ID == userID {
		return nil, models.ErrorBadRequest{Message: "follower and following cannot be equal"}
	}

	removed, err := s.followRepo.Delete(userID, user.ID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.ErrorBadRequest{Message: "you do not follow this user"}
	}

	return &models.ProfileResponse{Profile: user.Profile(false)}, nil
}
