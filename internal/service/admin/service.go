package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/repository"
)

// Service performs the one-time admin account bootstrap. The HTTP endpoint
// in front of it is guarded by the setup secret and meant to be retired
// after first use.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewService(users repository.UserRepository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Bootstrap creates the admin user, or promotes the existing account with
// that email. The password is always reset to the provided one.
func (s *Service) Bootstrap(ctx context.Context, input domain.BootstrapAdminInput) (*domain.User, error) {
	email := input.Email
	if email == "" {
		email = "admin@jobscaffold.com"
	}
	password := input.Password
	if password == "" {
		password = "Admin123!"
	}
	name := input.Name
	if name == "" {
		name = "Admin User"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		user.PasswordHash = string(hash)
		user.Name = name
		user.IsAdmin = true
		user.IsEmailVerified = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update admin user: %w", err)
		}
		s.logger.Info("existing user promoted to admin", "user_id", user.ID)
		return user, nil

	case errors.Is(err, sql.ErrNoRows):
		user = &domain.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
			// Admins start as contractors and switch roles in the app.
			Role:            string(domain.RoleContractor),
			IsAdmin:         true,
			IsEmailVerified: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create admin user: %w", err)
		}
		s.logger.Info("admin user created", "user_id", user.ID)
		return user, nil

	default:
		return nil, fmt.Errorf("lookup admin user: %w", err)
	}
}
