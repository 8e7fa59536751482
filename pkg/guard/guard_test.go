package guard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candlepilots/planguard/pkg/guard"
	"github.com/candlepilots/planguard/pkg/plan"
)

// Test helpers

type stubAuth struct {
	userID uuid.UUID
	err    error
}

func (s *stubAuth) Authenticate(_ context.Context, _ *http.Request) (uuid.UUID, error) {
	return s.userID, s.err
}

type stubChecker struct {
	result   plan.LimitCheckResult
	err      error
	features map[plan.Feature]bool
	calls    int
}

func (s *stubChecker) CanCreate(_ context.Context, _ uuid.UUID, _ plan.Resource) (plan.LimitCheckResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubChecker) HasFeature(_ context.Context, _ uuid.UUID, f plan.Feature) bool {
	s.calls++
	return s.features[f]
}

func okHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()

	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}), &called
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { guard.New(nil, &stubChecker{}, nil) })
	assert.Panics(t, func() { guard.New(&stubAuth{}, nil, nil) })
	assert.NotPanics(t, func() { guard.New(&stubAuth{}, &stubChecker{}, nil) })
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("injects user ID on success", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		g := guard.New(&stubAuth{userID: userID}, &stubChecker{}, nil)

		var got uuid.UUID
		var ok bool
		h := g.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = guard.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("denies with 401 on failure", func(t *testing.T) {
		t.Parallel()

		g := guard.New(&stubAuth{err: errors.New("no session")}, &stubChecker{}, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
		assert.Equal(t, "Authentication required", decodeBody(t, rec)["error"])
	})
}

func TestRequireLimit(t *testing.T) {
	t.Parallel()

	withUser := func(r *http.Request) *http.Request {
		return r.WithContext(guard.WithUserID(r.Context(), uuid.New()))
	}

	t.Run("passes through when allowed", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{result: plan.LimitCheckResult{Allowed: true, Current: 1, Limit: 3}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/recipes", nil))
		g.RequireLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, *called)
	})

	t.Run("denies with structured 403 body", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{result: plan.LimitCheckResult{
			Allowed: false,
			Current: 3,
			Limit:   3,
			Message: "You've reached your recipes limit (3). Please upgrade your plan.",
		}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/recipes", nil))
		g.RequireLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, *called)

		body := decodeBody(t, rec)
		assert.Equal(t, "You've reached your recipes limit (3). Please upgrade your plan.", body["error"])
		assert.Equal(t, float64(3), body["limit"])
		assert.Equal(t, float64(3), body["current"])
		assert.Equal(t, true, body["upgradeRequired"])
	})

	t.Run("missing user in context is 401", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{result: plan.LimitCheckResult{Allowed: true}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.RequireLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
		assert.Zero(t, checker.calls)
	})

	t.Run("checker failure is 500", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{err: errors.New("db down")}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/recipes", nil))
		g.RequireLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, *called)
	})
}

func TestRequireFeature(t *testing.T) {
	t.Parallel()

	withUser := func(r *http.Request) *http.Request {
		return r.WithContext(guard.WithUserID(r.Context(), uuid.New()))
	}

	t.Run("passes through when enabled", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{features: map[plan.Feature]bool{plan.FeatureAI: true}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodGet, "/ai", nil))
		g.RequireFeature(plan.FeatureAI)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, *called)
	})

	t.Run("denies with structured 403 body", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{features: map[plan.Feature]bool{}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodGet, "/analytics", nil))
		g.RequireFeature(plan.FeatureAdvancedAnalytics)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, *called)

		body := decodeBody(t, rec)
		assert.Equal(t, "This feature is not available on your current plan", body["error"])
		assert.Equal(t, "advanced_analytics", body["feature"])
		assert.Equal(t, true, body["upgradeRequired"])
		assert.NotContains(t, body, "limit")
	})

	t.Run("missing user in context is 401", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{features: map[plan.Feature]bool{plan.FeatureAI: true}}
		g := guard.New(&stubAuth{}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.RequireFeature(plan.FeatureAI)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})
}

func TestComposedOrdering(t *testing.T) {
	t.Parallel()

	t.Run("auth failure wins over exceeded limit", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{result: plan.LimitCheckResult{Allowed: false, Current: 3, Limit: 3}}
		g := guard.New(&stubAuth{err: errors.New("expired session")}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.WithAuthAndLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
		assert.Zero(t, checker.calls, "limit check must not run after failed auth")
	})

	t.Run("auth failure wins over missing feature", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{features: map[plan.Feature]bool{}}
		g := guard.New(&stubAuth{err: errors.New("expired session")}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.WithAuthAndFeature(plan.FeatureAI)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
		assert.Zero(t, checker.calls)
	})

	t.Run("authenticated request reaches the limit check", func(t *testing.T) {
		t.Parallel()

		checker := &stubChecker{result: plan.LimitCheckResult{Allowed: true, Current: 0, Limit: 3}}
		g := guard.New(&stubAuth{userID: uuid.New()}, checker, nil)
		next, called := okHandler(t)

		rec := httptest.NewRecorder()
		g.WithAuthAndLimit(plan.ResourceRecipes)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, *called)
		assert.Equal(t, 1, checker.calls)
	})
}
