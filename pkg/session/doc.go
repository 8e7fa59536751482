// Package session is the identity collaborator for the gating engine:
// token-based authenticated sessions with pluggable storage.
//
// The Manager issues opaque random tokens and resolves inbound requests to
// a user ID, reading the token from a bearer header with a cookie
// fallback. Stores: in-memory (tests, single instance) and Redis
// (multi-instance, TTL-based expiry).
package session
