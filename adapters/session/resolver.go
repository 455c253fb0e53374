// Package session resolves bearer credentials against the session store the
// external identity service writes to. Authentication decisions are never
// made locally: a token is valid exactly when the identity service has a
// live session for it.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ngoctranq/linkvault/internal/domain/identity"
	"github.com/ngoctranq/linkvault/pkg/apperror"
	"github.com/ngoctranq/linkvault/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisResolver struct {
	client *redis.Client
	prefix string
	logger logger.Logger
}

func NewRedisResolver(client *redis.Client, keyPrefix string, log logger.Logger) identity.Resolver {
	return &redisResolver{client: client, prefix: keyPrefix, logger: log}
}

func (r *redisResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	if token == "" {
		return nil, apperror.NewUnauthorized("empty bearer token", nil)
	}

	payload, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NewUnauthorized("unknown or expired session", nil)
		}
		// The auth contract is a uniform 401 regardless of the underlying
		// reason, identity-store trouble included. Keep the cause in the logs.
		r.logger.Error("session lookup failed", err)
		return nil, apperror.NewUnauthorized("session lookup failed", err)
	}

	var ident identity.Identity
	if err := json.Unmarshal([]byte(payload), &ident); err != nil {
		r.logger.Warn("malformed session payload", zap.String("key_prefix", r.prefix), zap.Error(err))
		return nil, apperror.NewUnauthorized("malformed session payload", err)
	}
	return &ident, nil
}
