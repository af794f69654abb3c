// Package services provides domain services that work on orders without
// belonging to the Order aggregate itself.
//
// The package includes:
//   - OrderSynthesizer: derives placeholder orders to backfill short lists and
//     to answer detail lookups for ids the store does not hold
//
// Synthesized orders are read-only views. They are never written to a
// repository and carry order.ProvenanceSynthesized when returned to callers.
package services
