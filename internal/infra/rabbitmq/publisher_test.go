package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope("order.created", map[string]any{"orderId": 7})

	assert.Equal(t, "order.created", env.Pattern)
	assert.NotEmpty(t, env.ID)
	assert.False(t, env.OccurredAt.IsZero())

	b, err := json.Marshal(env)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "order.created", decoded["pattern"])
	assert.Equal(t, float64(7), decoded["data"].(map[string]any)["orderId"])
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), "order.deleted", nil))
}
