package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

// requireManager checks the token role and that the account behind it still
// exists as a manager. Tokens outlive deleted accounts until they expire.
func requireManager(ctx context.Context, accounts ports.AccountRepository, actor domain.Actor) error {
	if !actor.IsManager() {
		return domain.ErrPermissionDenied
	}
	account, err := accounts.FindByID(ctx, actor.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrPermissionDenied
		}
		return fmt.Errorf("resolve manager: %w", err)
	}
	if account.Role != domain.RoleManager {
		return domain.ErrPermissionDenied
	}
	return nil
}
