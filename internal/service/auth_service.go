package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/circlecare/internal/auth"
	"github.com/mmynk/circlecare/internal/middleware"
	"github.com/mmynk/circlecare/pkg/api"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	owner         string
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, owner string, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		owner:         owner,
		logger:        logger,
	}
}

// Login exchanges a principal's API key for a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "principal", req.Msg.Principal)

	if req.Msg.Principal == "" || req.Msg.APIKey == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	if err := s.authenticator.Authenticate(ctx, req.Msg.Principal, req.Msg.APIKey); err != nil {
		s.logger.Warn("Login failed", "principal", req.Msg.Principal, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(req.Msg.Principal)
	if err != nil {
		s.logger.Error("Failed to generate token", "principal", req.Msg.Principal, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Principal logged in", "principal", req.Msg.Principal)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.TokenDuration()).Unix(),
	}), nil
}

// WhoAmI returns the principal the caller's token acts as.
func (s *AuthService) WhoAmI(ctx context.Context, req *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error) {
	principal := middleware.GetPrincipal(ctx)
	if principal == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return connect.NewResponse(&api.WhoAmIResponse{
		Principal: principal,
		IsOwner:   principal == s.owner,
	}), nil
}
