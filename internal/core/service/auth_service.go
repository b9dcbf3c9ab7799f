package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login and account administration.
type AuthService struct {
	repo      ports.AccountRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time

	// dummyHash is compared against on unknown identifiers so a failed login
	// costs the same whether or not the account exists.
	dummyHash []byte
}

func NewAuthService(repo ports.AccountRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return &AuthService{
		repo:      repo,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Register creates a contractor account. Self-registration never grants the
// manager role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.create(ctx, in, domain.RoleContractor)
}

// CreateAccount lets a manager create an account with any role.
func (s *AuthService) CreateAccount(ctx context.Context, actor domain.Actor, in ports.CreateAccountInput) (*domain.Account, error) {
	if err := requireManager(ctx, s.repo, actor); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, domain.InvalidInput("role must be %q or %q", domain.RoleContractor, domain.RoleManager)
	}
	created, err := s.create(ctx, in.RegisterInput, in.Role)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", created.ID).Str("role", string(created.Role)).Str("created_by", actor.AccountID).Msg("account created")
	return created, nil
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput, role domain.Role) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" {
		return nil, domain.InvalidInput("username and email are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.InvalidInput("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var answerHash string
	if answer := normalizeAnswer(in.SecurityAnswer); answer != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(answer), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash security answer: %w", err)
		}
		answerHash = string(h)
	}

	account := &domain.Account{
		ID:                 uuid.NewString(),
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		SecurityAnswerHash: answerHash,
		Role:               role,
		CreatedAt:          s.now().UTC(),
	}

	return s.repo.Create(ctx, account)
}

// Login authenticates by username or email and returns a signed JWT. An
// unknown identifier and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.InvalidInput("token has no id")
	}
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ResetPassword replaces the password when the security answer matches.
// Every failure reports ErrInvalidCredentials so callers cannot enumerate
// registered emails.
func (s *AuthService) ResetPassword(ctx context.Context, email, securityAnswer, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.InvalidInput("password must be at least %d characters", minPasswordLength)
	}

	account, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(securityAnswer))
			return domain.ErrInvalidCredentials
		}
		return err
	}

	answer := normalizeAnswer(securityAnswer)
	if account.SecurityAnswerHash == "" || answer == "" {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.SecurityAnswerHash), []byte(answer)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, account.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("account_id", account.ID).Msg("password reset")
	return nil
}

func (s *AuthService) ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error) {
	if err := requireManager(ctx, s.repo, actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// DeleteAccount removes an account. Managers cannot remove themselves.
func (s *AuthService) DeleteAccount(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireManager(ctx, s.repo, actor); err != nil {
		return err
	}
	if id == actor.AccountID {
		return domain.ErrCannotDeleteSelf
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Str("deleted_by", actor.AccountID).Msg("account deleted")
	return nil
}

// EnsureManager creates the given manager account unless a manager already
// exists. It reports whether an account was created.
func (s *AuthService) EnsureManager(ctx context.Context, username, email, password string) (bool, error) {
	n, err := s.repo.CountByRole(ctx, domain.RoleManager)
	if err != nil {
		return false, fmt.Errorf("count managers: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	created, err := s.create(ctx, ports.RegisterInput{Username: username, Email: email, Password: password}, domain.RoleManager)
	if err != nil {
		return false, fmt.Errorf("seed manager: %w", err)
	}
	s.log.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("seeded manager account")
	return true, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"role":     string(account.Role),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
