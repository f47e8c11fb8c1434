package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/storefront-backend/internal/domain/aggregates"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func TestIdentityRoundTrip(t *testing.T) {
	svc := NewIdentityService(logger.Nop(), "secret")
	tok, err := svc.IssueToken("u1", time.Hour)
	require.NoError(t, err)

	ctx, err := svc.SetContextFromToken(context.Background(), tok)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(ctx)
	require.NotNil(t, rd)
	assert.Equal(t, "u1", rd.UserID)
	assert.Equal(t, tok, rd.Token)
}

func TestIdentityRejects(t *testing.T) {
	svc := NewIdentityService(logger.Nop(), "secret")
	other := NewIdentityService(logger.Nop(), "other-secret")

	expired, err := svc.IssueToken("u1", -time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueToken("u1", time.Hour)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":   "",
		"garbage": "not.a.jwt",
		"expired": expired,
		"foreign": foreign,
	} {
		ctx, err := svc.SetContextFromToken(context.Background(), tok)
		assert.True(t, aggregates.IsCode(err, aggregates.CodeUnauthenticated), "%s: got %v", name, err)
		assert.Empty(t, ctxutil.UserID(ctx), name)
	}

	_, err = svc.IssueToken(" ", time.Hour)
	assert.Error(t, err)
}
