package users

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails. It does
// not distinguish an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidInput wraps validation failures on create.
var ErrInvalidInput = errors.New("invalid input")

// CreateInput carries the fields for registering a new account.
type CreateInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

func (in CreateInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 128)),
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Role, validation.Length(0, 64)),
	)
}

type Service struct {
	Repo        Repo
	DefaultRole string
}

func NewService(repo Repo, defaultRole string) *Service {
	if strings.TrimSpace(defaultRole) == "" {
		defaultRole = DefaultRole
	}
	return &Service{Repo: repo, DefaultRole: defaultRole}
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)
	if err := in.validate(); err != nil {
		return User{}, errors.Join(ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	role := in.Role
	if role == "" {
		role = s.DefaultRole
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// List returns all registered users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.List(ctx)
}

// Count returns the total number of users.
func (s *Service) Count(ctx context.Context) (int, error) {
	if s == nil || s.Repo == nil {
		return 0, errors.New("users service not configured")
	}
	return s.Repo.Count(ctx)
}
