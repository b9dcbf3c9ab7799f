package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteledger/timesheets/internal/api/metrics"
	"github.com/siteledger/timesheets/internal/api/middleware"
	"github.com/siteledger/timesheets/internal/core/domain"
	"github.com/siteledger/timesheets/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	SecurityAnswer string `json:"security_answer" validate:"max=128"`
}

type createAccountRequest struct {
	registerRequest
	Role string `json:"role" validate:"required,oneof=contractor manager"`
}

type loginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type passwordResetRequest struct {
	Email          string `json:"email" validate:"required,email"`
	SecurityAnswer string `json:"security_answer" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required,min=8"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
}

type accountListResponse struct {
	Accounts []*domain.Account `json:"accounts"`
	Count    int               `json:"count"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		SecurityAnswer: r.SecurityAnswer,
	}
}

// Register creates a contractor account.
//
// @Summary      Register a contractor account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Account: account})
}

// Login authenticates by username or email and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: token, Account: account})
}

// Logout revokes the bearer token used for this request.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get(middleware.ContextTokenID).(string)
	if tokenID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	if err := h.authService.Logout(c.Request().Context(), tokenID, middleware.TokenExpiry(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword replaces a forgotten password using the security answer.
//
// @Summary      Reset a forgotten password
// @Tags         auth
// @Accept       json
// @Param        body  body      passwordResetRequest  true  "Reset details"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/password-reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req passwordResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.SecurityAnswer, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAccounts returns every account.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  accountListResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/accounts [get]
func (h *AuthHandler) ListAccounts(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	accounts, err := h.authService.ListAccounts(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}
	return c.JSON(http.StatusOK, accountListResponse{Accounts: accounts, Count: len(accounts)})
}

// CreateAccount lets a manager create an account with an explicit role.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accounts [post]
func (h *AuthHandler) CreateAccount(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.CreateAccount(c.Request().Context(), actor, ports.CreateAccountInput{
		RegisterInput: req.toInput(),
		Role:          domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Account: account})
}

// DeleteAccount removes an account. Its timesheets are kept.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/{id} [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
