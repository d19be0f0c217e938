package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conduit-backend/models"
	"conduit-backend/repositories"
)

type UserService interface {
	Register(req models.RegisterUser) (*models.UserResponse, error)
	Login(req models.LoginUser) (*models.UserResponse, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(userID uint, upd models.UpdateUser) (*models.UserResponse, error)
	BuildUserResponse(user *models.User) (*models.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
	codec    *TokenCodec
}

func NewUserService(userRepo repositories.UserRepository, codec *TokenCodec) UserService {
	return &userService{userRepo: userRepo, codec: codec}
}

func (s *userService) Register(req models.RegisterUser) (*models.UserResponse, error) {
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.ErrorUnprocessableEntity{
			Message: "registration failed",
			Errors:  models.FieldErrors{"email": "has already been taken"},
		}
	}
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, models.ErrorUnprocessableEntity{
			Message: "registration failed",
			Errors:  models.FieldErrors{"username": "has already been taken"},
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.BuildUserResponse(user)
}

func (s *userService) Login(req models.LoginUser) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnprocessableEntity{
				Message: "login failed",
				Errors:  models.FieldErrors{"email": "is not registered"},
			}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorForbidden{
			Message: "login failed",
			Errors:  models.FieldErrors{"password": "password incorrect"},
		}
	}

	return s.BuildUserResponse(user)
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) UpdateUser(userID uint, upd models.UpdateUser) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user does not exist"}
		}
		return nil, err
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(*upd.Email); err == nil {
			return nil, models.ErrorUnprocessableEntity{
				Message: "update failed",
				Errors:  models.FieldErrors{"email": "has already been taken"},
			}
		}
	}
	if upd.Username != nil && *upd.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(*upd.Username); err == nil {
			return nil, models.ErrorUnprocessableEntity{
				Message: "update failed",
				Errors:  models.FieldErrors{"username": "has already been taken"},
			}
		}
	}

	user.ApplyUpdate(upd)

	if upd.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.BuildUserResponse(user)
}

func (s *userService) BuildUserResponse(user *models.User) (*models.UserResponse, error) {
	token, err := s.codec.Sign(user)
	if err != nil {
		return nil, err
	}

	return &models.UserResponse{
		User: models.UserView{
			Username: user.Username,
			Email:    user.Email,
			Bio:      user.Bio,
			Image:    user.Image,
			Token:    token,
		},
	}, nil
}
