package cache

import (
	"context"
	"testing"

	"career-guide/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_EmptyAddress(t *testing.T) {
	client, err := NewRedisClient(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{Address: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Nil(t, client)
}
