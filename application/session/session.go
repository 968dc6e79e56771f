package session

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/model"
	sessionrepo "github.com/muhammadheryan/pos-terminal/repository/session"
	"github.com/muhammadheryan/pos-terminal/thirdparty/backend"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/muhammadheryan/pos-terminal/utils/logger"
	validatorx "github.com/muhammadheryan/pos-terminal/utils/validator"
	"go.uber.org/zap"
)

// Authenticator exchanges cashier credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.BackendLogin, error)
}

type SessionApp interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Resolve(ctx context.Context, sessionID string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// tokenClaims mirrors what the backend signs into its tokens.
type tokenClaims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type sessionAppImpl struct {
	config      *config.Config
	auth        Authenticator
	sessionRepo sessionrepo.SessionRepository
	now         func() time.Time
}

func NewSessionApp(config *config.Config, auth Authenticator, sessionRepo sessionrepo.SessionRepository) SessionApp {
	return &sessionAppImpl{
		config:      config,
		auth:        auth,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (s *sessionAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	login, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		var apiErr *backend.APIError
		if stderrors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			if apiErr.Message != "" {
				return nil, errors.SetCustomErrorMessage(constant.ErrInvalidCredential, apiErr.Message)
			}
			return nil, errors.SetCustomError(constant.ErrInvalidCredential)
		}
		logger.Error("[Login] err auth.Login", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	claims, err := s.parseToken(login.Token)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.SetCustomError(constant.ErrUnauthorize)
		}
		logger.Error("[Login] err parseToken", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	now := s.now()
	expiresAt := now.Add(s.config.Auth.SessionTTL)
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time
	}
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	sessionID, err := uuid.NewRandom()
	if err != nil {
		logger.Error("[Login] err uuid.NewRandom", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	session := &model.Session{
		ID:        sessionID.String(),
		Token:     login.Token,
		CashierID: firstNonZero(claims.UserID, login.User.ID),
		Username:  firstNonEmpty(login.User.Username, claims.Subject),
		Role:      firstNonEmpty(login.User.Role, claims.Role),
		ExpiresAt: expiresAt,
	}

	if err := s.sessionRepo.SetSession(ctx, session, ttl); err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[Login] cashier logged in", zap.String("session_id", session.ID), zap.Uint64("cashier_id", session.CashierID))
	return &model.LoginResponse{
		SessionID: session.ID,
		CashierID: session.CashierID,
		Username:  session.Username,
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// parseToken verifies the backend token when a shared secret is configured. Without
// one the claims are only read; the backend still checks the token on every call.
func (s *sessionAppImpl) parseToken(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if s.config.Auth.JWTSecret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		return claims, nil
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *sessionAppImpl) Resolve(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	session, err := s.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		logger.Error("[Resolve] err GetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if session == nil || !session.ExpiresAt.After(s.now()) {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return session, nil
}

func (s *sessionAppImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func firstNonZero(a, b uint64) uint64 {
	if a != 0 {
		return a
	}
	return b
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
