package entitlements

import "errors"

var (
	ErrBusinessNotFound    = errors.New("business not found")
	ErrNoCounterRegistered = errors.New("no usage counter registered for resource")
	ErrDowngradeBlocked    = errors.New("downgrade not possible with current usage")

	ErrFailedToResolveSubscription = errors.New("failed to resolve subscription")
	ErrFailedToCountUsage          = errors.New("failed to count resource usage")
)
