package httpx

import (
	"net/http"

	"github.com/opsgarden/admind/pkg/apierr"
	"github.com/opsgarden/admind/pkg/jwtx"
	"github.com/opsgarden/admind/pkg/slogx"
)

// PermissionFunc decides whether the verified claims grant access. A denial
// is (false, nil); an error means the check itself was malformed and the
// request fails closed.
type PermissionFunc func(c jwtx.Claims) (bool, error)

// RequirePermission gates a route on a permission decision over the claims
// injected by AuthnMiddleware. Runs after AuthnMiddleware in the chain.
func RequirePermission(allow PermissionFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, ok := ClaimsFromContext(ctx)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			granted, err := allow(claims)
			if err != nil {
				slogx.FromContext(ctx).Warn("authorization check failed", "err", err)
				WriteError(w, apierr.Forbidden("access denied"))
				return
			}
			if !granted {
				WriteError(w, apierr.Forbidden("you don't have permission to access this resource"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
