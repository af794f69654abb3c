// Package order provides the Order aggregate and its fulfillment state machine.
//
// The package includes:
//   - Order: the aggregate root holding identity, line items, totals and lifecycle timestamps
//   - Status: the five-step lifecycle and the guards of each transition
//   - InvalidTransitionError: returned when an event does not apply to the current status
//   - Provenance: marks results as read from the store or synthesized
//
// Key business rules:
//   - Orders are created in PendingPayment with at least one line item and a recipient address
//   - PendingPayment -> PendingDispatch -> Dispatched -> PendingReceipt -> Completed
//   - Receipt may be confirmed straight from Dispatched
//   - Cancellation deletes the order, it is not a status
//   - A timestamp, once stamped, is never changed
package order
