package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/azanlabs/supplysync/pkg/errors"
)

func TestRotateStoresHashAndReturnsPlaintext(t *testing.T) {
	repos, tenants, _, _ := newFakeRepos()
	tenant := testTenant()
	tenants.byDomain[tenant.ShopDomain] = tenant

	svc := NewTokenService(repos, zap.NewNop())
	token, err := svc.Rotate(context.Background(), tenant.ShopDomain)
	require.NoError(t, err)

	assert.Len(t, token, 64)

	hash, ok := tenants.hashes[tenant.ShopDomain]
	require.True(t, ok)
	assert.NotEqual(t, token, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)))
}

func TestRotateUnknownShop(t *testing.T) {
	repos, _, _, _ := newFakeRepos()

	svc := NewTokenService(repos, zap.NewNop())
	_, err := svc.Rotate(context.Background(), "missing.myshopify.com")
	require.Error(t, err)

	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestRotateTokensAreUnique(t *testing.T) {
	repos, tenants, _, _ := newFakeRepos()
	tenant := testTenant()
	tenants.byDomain[tenant.ShopDomain] = tenant

	svc := NewTokenService(repos, zap.NewNop())
	first, err := svc.Rotate(context.Background(), tenant.ShopDomain)
	require.NoError(t, err)
	second, err := svc.Rotate(context.Background(), tenant.ShopDomain)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
