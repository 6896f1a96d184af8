package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mesto-server/internal/apperr"
	"mesto-server/internal/auth"
	"mesto-server/internal/domain"
	"mesto-server/internal/repository"
)

// UserService describes account lifecycle and profile operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, loginEmail string, err error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error)
}

// RegisterInput carries the signup fields; Name, About and Avatar are
// optional.
type RegisterInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperr.New(apperr.BadRequest, "email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		About:        strings.TrimSpace(input.About),
		Avatar:       strings.TrimSpace(input.Avatar),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperr.Wrap(apperr.Conflict, "email already registered", err)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", "", apperr.New(apperr.BadRequest, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", apperr.New(apperr.Unauthorized, "incorrect email or password")
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperr.New(apperr.Forbidden, "incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", "", err
	}
	return token, user.Email, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.New(apperr.BadRequest, "malformed user id")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, strings.TrimSpace(name), strings.TrimSpace(about))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error) {
	user, err := s.users.UpdateAvatar(ctx, id, strings.TrimSpace(avatar))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}
