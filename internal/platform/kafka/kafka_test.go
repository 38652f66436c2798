package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	messages []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestNewClient_ParsesBrokers(t *testing.T) {
	c := NewClient(" broker-1:9092, ,broker-2:9092 ")
	require.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, c.Brokers)
	require.True(t, c.Enabled())

	disabled := NewClient("")
	require.False(t, disabled.Enabled())
	_, err := disabled.NewWriter("kiosk.events")
	require.ErrorIs(t, err, ErrDisabled)
}

func TestNewWriter_UsesTopic(t *testing.T) {
	w, err := NewClient("localhost:9092").NewWriter("kiosk.events")
	require.NoError(t, err)
	require.Equal(t, "kiosk.events", w.Topic)
}

func TestPublishJSON(t *testing.T) {
	w := &captureWriter{}
	require.NoError(t, PublishJSON(context.Background(), w, "order-1", map[string]int{"sequence": 3}))
	require.Len(t, w.messages, 1)
	require.Equal(t, "order-1", string(w.messages[0].Key))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	require.Equal(t, 3, decoded["sequence"])
}
