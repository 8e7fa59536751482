// Package entitlements decides whether a business may create more of a
// quota-gated resource and whether a tier-gated feature is available.
//
// The Service combines three collaborators: the immutable plan catalog, a
// Resolver that maps a user to the owning business and its effective tier,
// and a CounterRegistry of per-resource usage counters. All operations are
// reads; CanCreate is an advisory pre-check, not an enforced invariant.
// Two concurrent requests can both pass the check and momentarily exceed
// the nominal quota by one. Closing that race would require counting inside
// the same transaction as the insert, which is out of scope for this
// package.
package entitlements
