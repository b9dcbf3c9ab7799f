package ports

import (
	"context"
	"time"

	"github.com/siteledger/timesheets/internal/core/domain"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	SecurityAnswer string
}

// CreateAccountInput carries a manager-initiated account creation.
type CreateAccountInput struct {
	RegisterInput
	Role domain.Role
}

// TokenRevoker tracks access tokens that were logged out before expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	CreateAccount(ctx context.Context, actor domain.Actor, in CreateAccountInput) (*domain.Account, error)
	Login(ctx context.Context, identifier, password string) (string, *domain.Account, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, email, securityAnswer, newPassword string) error
	ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, id string) error
}
