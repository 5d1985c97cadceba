package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

type UserService interface {
	Register(name, email, phone, plainTextPassword string) (*model.User, error)
	Authenticate(email, plainTextPassword string) (*model.User, error)
	UserByID(id uuid.UUID) (*model.User, error)
}

func NewUserService(repo model.UserRepository, passManager model.PasswordManager, dispatcher EventDispatcher) UserService {
	return &userService{repo: repo, passManager: passManager, dispatcher: dispatcher}
}

type userService struct {
	repo        model.UserRepository
	passManager model.PasswordManager
	dispatcher  EventDispatcher
}

func (s *userService) Register(name, email, phone, plainTextPassword string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, model.ErrEmailTaken
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             userID,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           strings.TrimSpace(name),
		Phone:          strings.TrimSpace(phone),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.UserRegistered{UserID: userID, Email: email, Name: user.Name})
	return user, nil
}

func (s *userService) Authenticate(email, plainTextPassword string) (*model.User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passManager.Check(user.HashedPassword, plainTextPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) UserByID(id uuid.UUID) (*model.User, error) {
	return s.repo.Find(id)
}
