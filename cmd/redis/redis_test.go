package redisclient

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/pos-terminal/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	c, err := New(config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()
	mr.Close()

	_, err = New(config.RedisConfig{Host: host, Port: port})
	assert.ErrorContains(t, err, "unable to ping redis")
}
