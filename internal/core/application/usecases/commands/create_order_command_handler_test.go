package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	fifty, thirty := decimal.NewFromInt(50), decimal.NewFromInt(30)
	cmd, err := commands.NewCreateOrderCommand(validAddress, []commands.OrderLine{
		{ProductID: 1, Price: &fifty, Count: 2},
		{ProductID: 2, Price: &thirty, Count: 1},
	}, order.Checkout{DeliveryType: "express", PaymentType: "wechat"})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, &sequenceIDs{at: baseTime})
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ORDER"+"1740823200000"+"0001", created.ID().String())
	assert.Equal(t, order.PendingPayment, created.Status())
	assert.True(t, created.TotalPrice().IsEqual(kernel.MoneyFromInt(130)))
	assert.True(t, created.CreateTime().Equal(baseTime))
	assert.Equal(t, "express", created.Checkout().DeliveryType)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, &sequenceIDs{at: baseTime})

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, &sequenceIDs{at: baseTime})
	_, err := h.Handle(ctx, newCreateCommand(t))

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, &sequenceIDs{at: baseTime})
	_, err := h.Handle(ctx, newCreateCommand(t))

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StoresOrder(t *testing.T) {
	f := newFixture(t)

	stored, err := f.store.Get(t.Context(), f.order.ID())

	require.NoError(t, err)
	assert.Equal(t, order.PendingPayment, stored.Status())
	assert.True(t, stored.TotalPrice().IsEqual(kernel.MoneyFromInt(20)))
	assert.WithinDuration(t, baseTime, stored.CreateTime(), time.Millisecond)
}
