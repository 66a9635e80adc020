package service

import (
	"context"
	"fmt"
	"math"

	"github.com/deppfellow/dashboard-data/internal/errs"
	"github.com/deppfellow/dashboard-data/internal/lib/ratelimit"
	"github.com/deppfellow/dashboard-data/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid credentials."

// AuthService checks email/password credentials against the users table.
// Failed attempts are counted per email; once the limit is reached further
// attempts are refused until the window expires.
type AuthService struct {
	users   UserStore
	limiter *ratelimit.Limiter
	logger  *zerolog.Logger
}

func NewAuthService(users UserStore, limiter *ratelimit.Limiter, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		limiter: limiter,
		logger:  logger,
	}
}

func (s *AuthService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

// Authenticate returns the user owning email when password matches its
// hash. The returned user never carries the hash.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	allowed, retryAfter, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log(ctx).Warn().Err(err).Msg("login throttle unavailable")
	}
	if !allowed {
		return nil, errs.NewTooManyRequestsError(
			fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", int(math.Ceil(retryAfter.Minutes()))),
		)
	}

	user, err := s.users.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.log(ctx).Warn().Err(err).Msg("failed to record login failure")
		}
		return nil, errs.NewUnauthorizedError(invalidCredentials, false)
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log(ctx).Warn().Err(err).Msg("failed to reset login failures")
	}

	return &model.User{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
