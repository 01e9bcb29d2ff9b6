package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/auth"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/metrics"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInactiveAccount    = "Your account is inactive. Please contact an administrator."
)

type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on a successful login. IsWorking is set for
// employees only.
type LoginResult struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	IsWorking *bool  `json:"isWorking,omitempty"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Login verifies credentials and issues a token. An employee who is no
// longer working is refused with Forbidden.
func (s *AuthService) Login(ctx context.Context, in Credentials) (LoginResult, error) {
	if err := check(in, nil); err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !auth.CheckPassword(user.Password, in.Password)) {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return LoginResult{}, errs.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return LoginResult{}, err
	}

	employed := user.Role == models.RoleEmployee && user.Employee != nil
	if employed && !user.Employee.IsWorking {
		metrics.Logins.WithLabelValues("inactive").Inc()
		logger.WithCtx(ctx).Info("auth: inactive employee refused", "user_id", user.ID)
		return LoginResult{}, errs.Forbidden(msgInactiveAccount)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, errs.Internal(err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	result := LoginResult{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role, Token: token}
	if employed {
		working := user.Employee.IsWorking
		result.IsWorking = &working
	}
	return result, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	return user, notFound(err, "User not found")
}

// ResolveIdentity maps verified token claims onto the stored user, so a
// deleted account or a changed role takes effect immediately.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims *auth.Claims) (auth.Identity, bool, error) {
	user, err := s.users.FindByID(ctx, claims.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, err
	}
	return auth.Identity{ID: user.ID, Role: user.Role}, true, nil
}
