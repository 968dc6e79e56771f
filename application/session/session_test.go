package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	appsession "github.com/muhammadheryan/pos-terminal/application/session"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	"github.com/muhammadheryan/pos-terminal/constant"
	sessionappmocks "github.com/muhammadheryan/pos-terminal/mocks/application/session"
	sessionmocks "github.com/muhammadheryan/pos-terminal/mocks/repository/session"
	"github.com/muhammadheryan/pos-terminal/model"
	"github.com/muhammadheryan/pos-terminal/thirdparty/backend"
	cerr "github.com/muhammadheryan/pos-terminal/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uint64, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "kasir1",
		"user_id": userID,
		"role":    "Kasir",
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func backendLogin(token string) *model.BackendLogin {
	login := &model.BackendLogin{Token: token}
	login.User.ID = 3
	login.User.Username = "kasir1"
	login.User.Role = "kasir"
	return login
}

func TestSessionApp_Login(t *testing.T) {
	type fields struct {
		config      *config.Config
		auth        *sessionappmocks.Authenticator
		sessionRepo *sessionmocks.SessionRepository
	}
	type args struct {
		ctx context.Context
		req *model.LoginRequest
	}

	validToken := signToken(t, "test-secret", 3, time.Now().Add(2*time.Hour))
	expiredToken := signToken(t, "test-secret", 3, time.Now().Add(-time.Minute))
	foreignToken := signToken(t, "other-secret", 3, time.Now().Add(2*time.Hour))

	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
		errMsg   string
	}{
		{
			name: "success: verified token",
			fields: fields{
				config:      &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTTL: 24 * time.Hour}},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(backendLogin(validToken), nil).Once()
				f.sessionRepo.On("SetSession", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
					return s.ID != "" && s.Token == validToken && s.CashierID == 3 && s.Username == "kasir1" && s.Role == "kasir"
				}), mock.MatchedBy(func(ttl time.Duration) bool {
					// capped by the token expiry, not the 24h session TTL
					return ttl > time.Hour && ttl <= 2*time.Hour
				})).Return(nil).Once()
			},
		},
		{
			name: "success: unverified token when no secret configured",
			fields: fields{
				config:      &config.Config{Auth: config.AuthConfig{SessionTTL: time.Hour}},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(backendLogin(foreignToken), nil).Once()
				f.sessionRepo.On("SetSession", mock.Anything, mock.Anything, mock.MatchedBy(func(ttl time.Duration) bool {
					return ttl > 0 && ttl <= time.Hour
				})).Return(nil).Once()
			},
		},
		{
			name: "error: missing password",
			fields: fields{
				config:      &config.Config{},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args:    args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1"}},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: backend rejects credentials",
			fields: fields{
				config:      &config.Config{},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "salah"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "salah").
					Return(nil, &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidCredential,
			errMsg:  "Invalid credentials",
		},
		{
			name: "error: backend unreachable",
			fields: fields{
				config:      &config.Config{},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: token signed with another secret",
			fields: fields{
				config:      &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(backendLogin(foreignToken), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: expired token",
			fields: fields{
				config:      &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(backendLogin(expiredToken), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name: "error: session store down",
			fields: fields{
				config:      &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}},
				auth:        sessionappmocks.NewAuthenticator(t),
				sessionRepo: sessionmocks.NewSessionRepository(t),
			},
			args: args{ctx: context.Background(), req: &model.LoginRequest{Username: "kasir1", Password: "rahasia"}},
			mockCall: func(f fields) {
				f.auth.On("Login", mock.Anything, "kasir1", "rahasia").Return(backendLogin(validToken), nil).Once()
				f.sessionRepo.On("SetSession", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appsession.NewSessionApp(tt.fields.config, tt.fields.auth, tt.fields.sessionRepo)

			got, err := app.Login(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if tt.errMsg != "" {
					assert.Equal(t, tt.errMsg, ce.Error())
				}
				return
			}

			assert.NotEmpty(t, got.SessionID)
			assert.Equal(t, uint64(3), got.CashierID)
			assert.Equal(t, "kasir1", got.Username)
			assert.True(t, got.ExpiresAt.After(time.Now()))
		})
	}
}

func TestSessionApp_Resolve(t *testing.T) {
	cfg := &config.Config{}

	t.Run("success", func(t *testing.T) {
		repo := sessionmocks.NewSessionRepository(t)
		stored := &model.Session{ID: "abc", CashierID: 3, ExpiresAt: time.Now().Add(time.Hour)}
		repo.On("GetSession", mock.Anything, "abc").Return(stored, nil).Once()

		got, err := appsession.NewSessionApp(cfg, nil, repo).Resolve(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := sessionmocks.NewSessionRepository(t)
		repo.On("GetSession", mock.Anything, "abc").Return(nil, nil).Once()

		_, err := appsession.NewSessionApp(cfg, nil, repo).Resolve(context.Background(), "abc")
		assert.True(t, cerr.IsType(err, constant.ErrUnauthorize))
	})

	t.Run("expired session", func(t *testing.T) {
		repo := sessionmocks.NewSessionRepository(t)
		repo.On("GetSession", mock.Anything, "abc").
			Return(&model.Session{ID: "abc", ExpiresAt: time.Now().Add(-time.Second)}, nil).Once()

		_, err := appsession.NewSessionApp(cfg, nil, repo).Resolve(context.Background(), "abc")
		assert.True(t, cerr.IsType(err, constant.ErrUnauthorize))
	})

	t.Run("empty id", func(t *testing.T) {
		repo := sessionmocks.NewSessionRepository(t)

		_, err := appsession.NewSessionApp(cfg, nil, repo).Resolve(context.Background(), "")
		assert.True(t, cerr.IsType(err, constant.ErrUnauthorize))
	})

	t.Run("store error", func(t *testing.T) {
		repo := sessionmocks.NewSessionRepository(t)
		repo.On("GetSession", mock.Anything, "abc").Return(nil, errors.New("redis down")).Once()

		_, err := appsession.NewSessionApp(cfg, nil, repo).Resolve(context.Background(), "abc")
		assert.True(t, cerr.IsType(err, constant.ErrInternal))
	})
}

func TestSessionApp_Logout(t *testing.T) {
	repo := sessionmocks.NewSessionRepository(t)
	repo.On("DeleteSession", mock.Anything, "abc").Return(nil).Once()
	repo.On("DeleteSession", mock.Anything, "def").Return(errors.New("redis down")).Once()

	app := appsession.NewSessionApp(&config.Config{}, nil, repo)
	assert.NoError(t, app.Logout(context.Background(), "abc"))
	assert.True(t, cerr.IsType(app.Logout(context.Background(), "def"), constant.ErrInternal))
}
