package kafka

import (
	"encoding/json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
	"tower_backend/internal/events"
	"tower_backend/internal/model"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	ev := events.FromTransaction(&model.Transaction{
		ID:           1,
		UserID:       42,
		Type:         model.TransactionCashIn,
		Amount:       decimal.RequireFromString("10.50"),
		BalanceAfter: decimal.RequireFromString("10.50"),
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	msg, err := message(ev)
	require.NoError(t, err)
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "cash_movement", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "cash_movement", decoded["type"])
	movement := decoded["cash_movement"].(map[string]any)
	assert.Equal(t, "10.5", movement["amount"])
}

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	p := NewPublisher([]string{"localhost:9092"}, "tower_ledger")
	assert.Equal(t, "tower_ledger", p.writer.Topic)
	assert.Equal(t, batchTimeout, p.writer.BatchTimeout)
	assert.NoError(t, p.Close())
}
