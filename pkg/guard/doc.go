// Package guard translates entitlement decisions into HTTP outcomes.
//
// It is the boundary adapter between the gating engine and the HTTP
// layer: RequireAuth resolves the caller's identity via the session
// collaborator, RequireLimit and RequireFeature wrap the entitlement
// checks, and every refusal becomes a typed Denial with a
// JSON-serializable body (401 for auth, 403 with upgradeRequired metadata
// for limit and feature denials). Unexpected failures, such as the store
// being unreachable, are logged and answered with a generic 500.
package guard
