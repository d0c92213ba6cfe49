package service

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/ticketreport/backend/internal/auth"
	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/repository"
	apperrors "github.com/ticketreport/backend/pkg/util"
)

const (
	tempPasswordLen   = 12
	tempPasswordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// AdminService manages user accounts: listing, role changes and password
// resets.
type AdminService struct {
	users      repository.UserRepository
	random     io.Reader
	bcryptCost int
}

// NewAdminService constructs the service. random must be a
// cryptographically secure source (crypto/rand.Reader in production); it is
// injected so tests can pin the generated temp password.
func NewAdminService(users repository.UserRepository, random io.Reader, bcryptCost int) *AdminService {
	return &AdminService{users: users, random: random, bcryptCost: bcryptCost}
}

// ListUsers returns all users.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListResolvers returns users eligible for ticket assignment: resolvers and
// admins.
func (s *AdminService) ListResolvers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListByRoles(ctx, domain.RoleResolver, domain.RoleAdmin)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ApproveUser validates that the user exists. There is no persisted
// approval flag; the operation otherwise does nothing, matching the
// original behavior until an approval field lands.
func (s *AdminService) ApproveUser(ctx context.Context, userID string) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}
	return nil
}

// UpdateUserRole overwrites a user's role.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return apperrors.NewValidationError("unknown role value", nil)
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ResetPassword generates a random temporary password, stores its hash and
// returns the plaintext exactly once. The plaintext is never persisted or
// logged.
func (s *AdminService) ResetPassword(ctx context.Context, userID string) (string, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	tempPassword, err := generateTempPassword(s.random)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", apperrors.MapError(err)
	}
	return tempPassword, nil
}

func (s *AdminService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// generateTempPassword draws 12 alphanumeric characters from the random
// source, rejecting bytes outside the usable range to keep the distribution
// uniform.
func generateTempPassword(random io.Reader) (string, error) {
	const maxUsable = byte(len(tempPasswordChars)) * (255 / byte(len(tempPasswordChars)))

	password := make([]byte, 0, tempPasswordLen)
	buf := make([]byte, 1)
	for len(password) < tempPasswordLen {
		if _, err := io.ReadFull(random, buf); err != nil {
			return "", err
		}
		if buf[0] >= maxUsable {
			continue
		}
		password = append(password, tempPasswordChars[int(buf[0])%len(tempPasswordChars)])
	}
	return string(password), nil
}
