package ports

import (
	"context"

	"github.com/siteledger/timesheets/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts the account. It returns domain.ErrAccountExists when the
	// username or email is already taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByUsernameOrEmail matches identifier against both username and email.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
