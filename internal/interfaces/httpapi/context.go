package httpapi

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
)

const requestIDHeader = "X-Request-ID"

type (
	principalKey struct{}
	requestIDKey struct{}
)

// withPrincipal also tags later log lines with the acting organizer.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	ctx = context.WithValue(ctx, principalKey{}, p)
	return logging.ContextWith(ctx, "actor_id", p.UserID)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

// withRequestID keeps a caller supplied id when it looks sane and mints
// one otherwise.
func withRequestID(ctx context.Context, incoming string) (context.Context, string) {
	id := strings.TrimSpace(incoming)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return logging.ContextWith(ctx, "request_id", id), id
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
