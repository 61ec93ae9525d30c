package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_ADDR", "http://auth.local:9000")

	cfg, err := NewConfig("no-such-file.env")
	require.NoError(t, err)
	assert.Equal(t, "http://auth.local:9000", cfg.Addr)
}

func TestNewConfig_MissingAddr(t *testing.T) {
	t.Setenv("AUTH_ADDR", "")

	_, err := NewConfig("no-such-file.env")
	assert.Error(t, err)
}
