package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/andriiBychkovskiy/proshop/internal/apperr"
	"github.com/andriiBychkovskiy/proshop/internal/auth"
)

// Service wraps the repository with registration, credential checks and the
// admin-only user management operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Authorization("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Authorization("invalid email or password")
	}
	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

// UpdateProfile lets a user change their own name, email or password. Empty
// fields keep the current value.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email, password string) (*User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, p auth.Principal) ([]User, error) {
	if !p.IsAdmin {
		return nil, apperr.Authorization("not authorized as admin")
	}
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, p auth.Principal, id string) (*User, error) {
	if !p.IsAdmin {
		return nil, apperr.Authorization("not authorized as admin")
	}
	return s.GetProfile(ctx, id)
}

// UpdateByID is the admin edit: name/email defaults keep current values and
// isAdmin is set unconditionally.
func (s *Service) UpdateByID(ctx context.Context, p auth.Principal, id, name, email string, isAdmin bool) (*User, error) {
	if !p.IsAdmin {
		return nil, apperr.Authorization("not authorized as admin")
	}

	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	u.IsAdmin = isAdmin

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.IsAdmin {
		return apperr.Authorization("not authorized as admin")
	}

	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		return apperr.Validation("cannot delete admin user")
	}
	return s.repo.Delete(ctx, id)
}
