package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/codeOfTheFuture/mern-stack-authentication/internal/user/domain UserRepository

import (
	"context"
	"time"

	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	usererror "github.com/codeOfTheFuture/mern-stack-authentication/internal/errors"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/domain"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo       domain.UserRepository
	bcryptCost int
}

func NewUserService(repo domain.UserRepository, cfg *config.Config) *UserService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &UserService{
		repo:       repo,
		bcryptCost: cost,
	}
}

// Register creates a new account. The plaintext password is hashed before
// anything is persisted; the unique index on email is the authority on
// duplicates, the pre-check only gives a friendlier fast path.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, usererror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks the submitted credentials against the stored hash.
// Lookup failure and password mismatch are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, input dto.LoginInput) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, usererror.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, usererror.ErrUserNotFound
	}

	return user, nil
}

// UpdateProfile applies the provided fields to the stored user. The password
// is rehashed only when a new plaintext value is supplied; an untouched
// password keeps its stored hash, so a hash is never hashed twice.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, usererror.ErrUserNotFound
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashedPassword)
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
