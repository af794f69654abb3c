// Package kernel provides the value objects shared by the order model and its
// adapters.
//
// The package includes:
//   - OrderID: the ORDER<millis><sequence> identity and its generator
//   - Money: an exact, non-negative amount backed by shopspring/decimal
//   - UUID: identifiers for notification events
//
// All types are immutable values and safe to share between goroutines.
package kernel
