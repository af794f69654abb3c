// Package guard enforces that commands, queries and value objects are only
// used after going through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose zero value must be rejected.
// Only NewConstructorGuard produces a guard that validates.
//
// Example:
//
//	type PayOrderCommand struct {
//	    orderID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c PayOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
