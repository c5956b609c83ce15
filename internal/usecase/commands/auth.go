package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/user"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/pkg/jwt"
	"crafty-kid/internal/pkg/password"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginResult struct {
	UserID    uuid.UUID
	Role      string
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error) {
	userReadModel, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userReadModel.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(userReadModel.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userReadModel.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), userReadModel.ID)
	})
	if err != nil {
		// Not critical: login succeeded, only the last_login stamp failed
		slog.Warn("failed to update last login", "user_id", userReadModel.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID: userReadModel.ID,
		Role:   userReadModel.Role,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	userReadModel, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, queries.ErrUserNotFound
	}
	if !userReadModel.IsActive {
		return nil, queries.ErrUserInactive
	}

	accessToken, err := a.jwtService.GenerateAccessToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	newRefreshToken, err := a.jwtService.GenerateRefreshToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userReadModel, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	if !userReadModel.IsActive {
		return nil, queries.ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userReadModel, nil
}
