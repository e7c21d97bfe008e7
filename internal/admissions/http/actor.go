package http

import (
	"context"

	"github.com/aussiebroadwan/admissions/internal/admissions/domain"
	"github.com/aussiebroadwan/admissions/pkg/httpx"
)

// actorFromContext builds the Actor from the verified claims injected by the
// authn middleware. This is the only place identity crosses from transport
// into the domain; nothing downstream re-reads the token.
//
// A missing tenant claim means the request cannot be scoped to any tenant,
// so ok is false even when the token itself verified.
func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok || claims.TenantID == "" {
		return domain.Actor{}, false
	}

	return domain.Actor{
		ID:       claims.Subject,
		Role:     domain.Role(claims.Role),
		TenantID: claims.TenantID,
		TeamIDs:  claims.TeamIDs,
	}, true
}
