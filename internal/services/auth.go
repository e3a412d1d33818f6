package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/types"
	"github.com/redcell/readiness-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// AuthService verifies credentials (local bcrypt hash first, directory
// fallback) and issues access tokens keyed by operator handle.
type AuthService interface {
	Login(ctx context.Context, handle, password string) (string, *types.Operator, error)
	ParseToken(tokenString string) (string, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	rosterRepo    repos.RosterRepo
	ldapService   LDAPService
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	rosterRepo repos.RosterRepo,
	ldapService LDAPService,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		rosterRepo:    rosterRepo,
		ldapService:   ldapService,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, handle, password string) (string, *types.Operator, error) {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" || password == "" {
		return "", nil, fmt.Errorf("handle and password are required")
	}

	operator, err := as.rosterRepo.GetByHandle(ctx, nil, handle)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("Error retrieving operator by handle: %w", err)
	}

	if operator != nil && operator.Password != "" && utils.VerifyPassword(password, operator.Password) {
		token, err := as.generateAccessToken(operator)
		if err != nil {
			return "", nil, fmt.Errorf("Generate access token error: %w", err)
		}
		return token, operator, nil
	}

	if !as.ldapService.Enabled() {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	directoryUser, err := as.ldapService.Authenticate(ctx, handle, password)
	if err != nil {
		as.log.Warn("Directory authentication failed", "handle", handle, "error", err)
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if operator == nil {
		operator, err = as.createFromDirectory(ctx, directoryUser)
		if err != nil {
			return "", nil, err
		}
	}

	token, err := as.generateAccessToken(operator)
	if err != nil {
		return "", nil, fmt.Errorf("Generate access token error: %w", err)
	}
	return token, operator, nil
}

// createFromDirectory provisions a roster entry the first time a directory
// account logs in. No local password is stored for these accounts.
func (as *authService) createFromDirectory(ctx context.Context, directoryUser *LDAPUser) (*types.Operator, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	operator := &types.Operator{
		ID:             uuid.New(),
		Name:           strings.ToLower(strings.TrimSpace(directoryUser.DisplayName)),
		OperatorHandle: strings.ToLower(strings.TrimSpace(directoryUser.Handle)),
		Email:          strings.ToLower(strings.TrimSpace(directoryUser.Email)),
		TeamRole:       "OPERATOR",
		OnboardingDate: &now,
		Active:         true,
	}
	if operator.Name == "" {
		operator.Name = operator.OperatorHandle
	}

	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.avatarService.CreateOperatorAvatar(ctx, operator); err != nil {
			return fmt.Errorf("Failed to create operator avatar: %w", err)
		}
		if _, err := as.rosterRepo.Create(ctx, tx, []*types.Operator{operator}); err != nil {
			return fmt.Errorf("Failed to create operator in postgres: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("Provisioned operator from directory", "handle", operator.OperatorHandle)
	return operator, nil
}

func (as *authService) generateAccessToken(operator *types.Operator) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator.OperatorHandle,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// ParseToken validates a token string and returns the operator handle it was
// issued for.
func (as *authService) ParseToken(tokenString string) (string, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("Failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return "", fmt.Errorf("Invalid or expired JWT token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("Token has no subject")
	}
	return claims.Subject, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
