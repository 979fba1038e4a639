package stores

import (
	"context"
	"time"

	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
)

// TokenStore records admin tokens revoked by logout
type TokenStore struct {
	tokens collection[models.RevokedToken]
}

func NewTokenStore(gw gateway.Gateway) *TokenStore {
	return &TokenStore{
		tokens: newCollection(gw, models.RevokedTokensCollection,
			func(t *models.RevokedToken, id string) { t.ID = id },
			gateway.Query{}),
	}
}

// Revoke blacklists token until expiresAt
func (s *TokenStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.tokens.Create(ctx, models.RevokedToken{Token: token, ExpiresAt: expiresAt})
	return err
}

// IsRevoked reports whether token was revoked
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	found, err := s.tokens.List(ctx, gateway.Query{
		Where: map[string]interface{}{"token": token},
		Limit: 1,
	})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// PurgeExpired drops revocations whose token has expired anyway
func (s *TokenStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	all, err := s.tokens.List(ctx, gateway.Query{})
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, t := range all {
		if t.ExpiresAt.After(now) {
			continue
		}
		if err := s.tokens.Delete(ctx, t.ID); err != nil && !gateway.IsNotFound(err) {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
