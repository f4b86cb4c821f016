package service

import (
	"context"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// AdminPredicate decides write privilege from a phone number
type AdminPredicate func(phone string) bool

type userService struct {
	users   repository.UserRepository
	isAdmin AdminPredicate
	log     zerolog.Logger
}

func newUserService(users repository.UserRepository, isAdmin AdminPredicate, log zerolog.Logger) *userService {
	return &userService{
		users:   users,
		isAdmin: isAdmin,
		log:     log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) lookup(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal(err, "find user")
	}
	if user == nil {
		return nil, &Error{Kind: KindUnauthorized, Code: models.CodeUnauthorized, Message: "unknown user"}
	}
	return user, nil
}

// FindIDByUsername returns the numeric id of a user
func (s *userService) FindIDByUsername(ctx context.Context, username string) (int64, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// FindUsernameByID returns the username for an id, "" when the user is gone
func (s *userService) FindUsernameByID(ctx context.Context, id int64) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", internal(err, "find user")
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}

// FindPhoneByUsername returns the phone number of a user
func (s *userService) FindPhoneByUsername(ctx context.Context, username string) (string, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return "", err
	}
	return user.Phone, nil
}

// IsSuperAdmin applies the admin predicate
func (s *userService) IsSuperAdmin(phone string) bool {
	return s.isAdmin != nil && s.isAdmin(phone)
}

// Resolve loads the caller once and derives the admin flag
func (s *userService) Resolve(ctx context.Context, username string) (*models.Identity, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		ID:       user.ID,
		Username: user.Username,
		Phone:    user.Phone,
		Admin:    s.IsSuperAdmin(user.Phone),
	}, nil
}
