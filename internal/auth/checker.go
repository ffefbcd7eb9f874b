package auth

import (
	"context"

	"github.com/google/uuid"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
	UserIDFromToken(ctx context.Context, token string) (uuid.UUID, error)
}
