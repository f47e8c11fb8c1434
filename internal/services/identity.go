package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// IdentityService verifies bearer tokens issued by the account service and
// attaches the caller to the request context.
type IdentityService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	IssueToken(userID string, ttl time.Duration) (string, error)
}

type identityService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewIdentityService(log *logger.Logger, jwtSecretKey string) IdentityService {
	return &identityService{
		log:          log.With("service", "IdentityService"),
		jwtSecretKey: jwtSecretKey,
	}
}

func (s *identityService) IssueToken(userID string, ttl time.Duration) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id required")
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

func (s *identityService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "Identity.SetContextFromToken"
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, aggregates.NewError(aggregates.CodeUnauthenticated, op, "missing token", nil)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, aggregates.NewError(aggregates.CodeUnauthenticated, op, "invalid or expired token", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return ctx, aggregates.NewError(aggregates.CodeUnauthenticated, op, "invalid or expired token", nil)
	}
	rd := &ctxutil.RequestData{
		UserID: claims.Subject,
		Token:  tokenString,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}
