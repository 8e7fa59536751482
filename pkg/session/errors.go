package session

import "errors"

var (
	// ErrSessionNotFound indicates no session was found for a token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session.expired")

	// ErrNoToken indicates the request carried no session token.
	ErrNoToken = errors.New("session.no_token")

	// ErrInvalidSession indicates the session value is unusable.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
