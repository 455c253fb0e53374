package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the caller resolved from a bearer credential. Sessions are
// issued by the external identity service; this service only reads them.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
