package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/logger"
	"github.com/candlepilots/planguard/pkg/plan"
)

// Authenticator resolves a request to an authenticated user ID.
// Implemented by session.Manager.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (uuid.UUID, error)
}

// Checker is the entitlement decision surface the guard translates into
// HTTP outcomes. Implemented by entitlements.Service.
type Checker interface {
	CanCreate(ctx context.Context, userID uuid.UUID, res plan.Resource) (plan.LimitCheckResult, error)
	HasFeature(ctx context.Context, userID uuid.UUID, feature plan.Feature) bool
}

// Guard is the only component that touches the HTTP and session
// collaborators. Inner components never see status codes; all denial
// translation happens here.
type Guard struct {
	auth    Authenticator
	checker Checker
	log     *slog.Logger
}

// New creates a Guard. Panics on nil collaborators: the guard is useless
// without either.
func New(auth Authenticator, checker Checker, log *slog.Logger) *Guard {
	if auth == nil {
		panic("guard: authenticator is required")
	}
	if checker == nil {
		panic("guard: checker is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Guard{auth: auth, checker: checker, log: log}
}

// RequireAuth authenticates the request and injects the user ID into the
// context. Any authentication failure is a 401 denial; no limit or
// feature logic runs after a failed auth.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := g.auth.Authenticate(r.Context(), r)
		if err != nil {
			Unauthorized().Write(w)
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLimit denies the request when the caller's business may not
// create one more resource of the given kind. Assumes RequireAuth already
// ran; a missing user ID in context is treated as unauthenticated.
func (g *Guard) RequireLimit(res plan.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				Unauthorized().Write(w)
				return
			}

			result, err := g.checker.CanCreate(r.Context(), userID, res)
			if err != nil {
				g.log.LogAttrs(r.Context(), slog.LevelError, "limit check failed",
					logger.Error(err),
					logger.UserID(userID),
					slog.String("resource", string(res)),
					logger.Component("guard"),
				)
				serverError().Write(w)
				return
			}
			if !result.Allowed {
				LimitDenial(result).Write(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature denies the request when the caller's plan does not
// enable the given capability. Assumes RequireAuth already ran.
func (g *Guard) RequireFeature(feature plan.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				Unauthorized().Write(w)
				return
			}

			if !g.checker.HasFeature(r.Context(), userID, feature) {
				FeatureDenial(feature).Write(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithAuthAndLimit chains RequireAuth then RequireLimit. Ordering matters:
// an invalid session yields 401 even when the limit would also be
// exceeded.
func (g *Guard) WithAuthAndLimit(res plan.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.RequireAuth(g.RequireLimit(res)(next))
	}
}

// WithAuthAndFeature chains RequireAuth then RequireFeature.
func (g *Guard) WithAuthAndFeature(feature plan.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.RequireAuth(g.RequireFeature(feature)(next))
	}
}
