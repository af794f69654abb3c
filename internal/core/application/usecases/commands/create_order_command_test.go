package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validAddress = order.Address{Name: "张三", Phone: "13800138000", Detail: "XX路XX号"}

func TestNewCreateOrderCommand_FillsLineDefaults(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(validAddress,
		[]commands.OrderLine{{ProductID: 7, Count: 1}}, order.Checkout{Remark: "r"})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	products := cmd.Products()
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.IsEqual(kernel.MoneyFromInt(70)))
	assert.Equal(t, "商品7", products[0].Title)
	assert.Equal(t, "https://picsum.photos/100/100?random=7", products[0].ImgURL)
	assert.Equal(t, "默认规格", products[0].Specs)
	assert.Equal(t, "r", cmd.Checkout().Remark)
}

func TestNewCreateOrderCommand_KeepsGivenValues(t *testing.T) {
	price := decimal.RequireFromString("19.90")

	cmd, err := commands.NewCreateOrderCommand(validAddress, []commands.OrderLine{{
		ProductID: 3, Title: "Kiwi", Price: &price, Count: 2, ImgURL: "https://img/kiwi.png", Specs: "green",
	}}, order.Checkout{})

	require.NoError(t, err)
	item := cmd.Products()[0]
	assert.Equal(t, "19.9", item.Price.String())
	assert.Equal(t, "Kiwi", item.Title)
	assert.Equal(t, "https://img/kiwi.png", item.ImgURL)
	assert.Equal(t, "green", item.Specs)
}

func TestNewCreateOrderCommand_ZeroPriceIsAllowed(t *testing.T) {
	zero := decimal.Zero

	cmd, err := commands.NewCreateOrderCommand(validAddress,
		[]commands.OrderLine{{ProductID: 3, Price: &zero, Count: 1}}, order.Checkout{})

	require.NoError(t, err)
	assert.True(t, cmd.Products()[0].Price.IsZero())
}

func TestNewCreateOrderCommand_Invalid(t *testing.T) {
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name     string
		address  order.Address
		lines    []commands.OrderLine
		contains []string
	}{
		{"missing address", order.Address{}, []commands.OrderLine{{ProductID: 1, Count: 1}},
			[]string{"address.name", "address.phone", "address.detail"}},
		{"no products", validAddress, nil, []string{"products"}},
		{"zero count", validAddress, []commands.OrderLine{{ProductID: 1, Count: 0}}, []string{"products[0]", "count"}},
		{"negative price", validAddress, []commands.OrderLine{{ProductID: 1, Count: 1}, {ProductID: 2, Price: &negative, Count: 1}},
			[]string{"products[1]", "negative"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tt.address, tt.lines, order.Checkout{})

			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
