// Package plan defines the CandlePilots subscription plan catalog: tiers,
// per-tier resource ceilings, feature flags, and pricing.
//
// The catalog is immutable after construction and validated to be total:
// every tier has a plan, every plan has a limit for every resource kind, and
// yearly pricing never exceeds twelve monthly payments. Callers inject a
// *Catalog instead of reading a package-level table, which keeps tests free
// of global state.
//
// Resource ceilings use the Limit type; the Unlimited sentinel serializes as
// -1 for wire and SQL compatibility.
package plan
