package services

import (
	"activitytracker/internal/models"
	"activitytracker/internal/observability"
	"activitytracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Authenticator is the part of the auth helper the user service needs.
type Authenticator interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, digest string) bool
	IssueToken(userID uint) (string, error)
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Gender    string
	Birthdate string // YYYY-MM-DD
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	tx    repository.Transactor
	users repository.UserRepository
	auth  Authenticator

	dummyOnce   sync.Once
	dummyDigest string
}

func NewUserService(tx repository.Transactor, users repository.UserRepository, auth Authenticator) UserService {
	return &userService{tx: tx, users: users, auth: auth}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, Validation("Email is required", nil)
	}
	if in.Password == "" {
		return nil, Validation("Password is required", nil)
	}
	birthdate, err := time.Parse(models.BirthdateLayout, strings.TrimSpace(in.Birthdate))
	if err != nil {
		return nil, Validation("Birthdate must use the YYYY-MM-DD format", err)
	}

	digest, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Password:  digest,
		Gender:    in.Gender,
		Birthdate: birthdate,
	}

	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	observability.RecordUserRegistered()
	log.Printf("Registered user %d", user.ID)
	return user, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("find user by email: %w", err)
		}
		// Spend the same bcrypt work as a real comparison.
		s.auth.VerifyPassword(password, s.dummy())
		observability.RecordLogin(false)
		return "", ErrInvalidCredentials
	}

	if !s.auth.VerifyPassword(password, user.Password) {
		observability.RecordLogin(false)
		return "", ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return "", err
	}
	observability.RecordLogin(true)
	return token, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user together with its activities and returns the
// user's last state.
func (s *userService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	var deleted *models.User
	var removed int64

	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if removed, err = repos.Activities.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := repos.Users.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}

	log.Printf("Deleted user %d and %d activities", id, removed)
	return deleted, nil
}

func (s *userService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.auth.HashPassword("activitytracker-dummy-password")
		if err == nil {
			s.dummyDigest = digest
		}
	})
	return s.dummyDigest
}
