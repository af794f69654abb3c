package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type cancelCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	errNotConstructed := errors.New("cancelCommand must be created via newCancelCommand")

	newCancelCommand := func(orderID string) (cancelCommand, error) {
		if orderID == "" {
			return cancelCommand{}, errors.New("order id is required")
		}
		return cancelCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_output_validates", func(t *testing.T) {
		cmd, err := newCancelCommand("ORDER17000000000000001")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("literal_struct_is_rejected", func(t *testing.T) {
		cmd := cancelCommand{orderID: "ORDER17000000000000001"}

		assert.ErrorIs(t, cmd.guard.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		cmd, err := newCancelCommand("")

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})
}
