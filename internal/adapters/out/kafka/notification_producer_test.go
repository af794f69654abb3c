package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/notification"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func testEvent() notification.Event {
	return notification.Event{
		ID:         kernel.NewUUID(),
		Type:       notification.TypeOrderDispatched,
		OrderID:    "ORDER17000000000000003",
		Status:     order.Dispatched,
		StatusText: order.Dispatched.Text(),
		OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Message:    "shipped",
	}
}

func TestNotificationProducer_Notify(t *testing.T) {
	// Given
	writer := new(mockWriter)
	producer := NewNotificationProducer(writer)
	event := testEvent()

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	// When
	err := producer.Notify(t.Context(), event)

	// Then
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, []byte(event.OrderID), sent[0].Key)
	assert.Equal(t, event.OccurredAt, sent[0].Time)
	assert.Equal(t, kafka.Header{Key: "event_type", Value: []byte("order.dispatched")}, sent[0].Headers[0])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(sent[0].Value, &decoded))
	assert.Equal(t, event.OrderID, decoded["orderId"])
	assert.Equal(t, "已发货", decoded["statusText"])
	writer.AssertExpectations(t)
}

func TestNotificationProducer_NotifyWrapsWriterError(t *testing.T) {
	writer := new(mockWriter)
	producer := NewNotificationProducer(writer)
	brokerErr := errors.New("leader not available")
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerErr).Once()

	err := producer.Notify(t.Context(), testEvent())

	require.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "ORDER17000000000000003")
}

func TestNotificationProducer_Close(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Close").Return(nil).Once()

	require.NoError(t, NewNotificationProducer(writer).Close())
	assert.Equal(t, "kafka", NewNotificationProducer(writer).Name())
	writer.AssertExpectations(t)
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("localhost:9092", "order.changed")

	assert.Equal(t, "order.changed", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
