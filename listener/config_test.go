package listener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{}

		assert.True(t, cfg.SetDefaults())
		assert.Equal(t, DefaultAddress, cfg.Address)
		assert.Equal(t, DefaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
	})

	t.Run("does not override existing values", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Address: ":9090", ReadHeaderTimeout: time.Second}

		assert.False(t, cfg.SetDefaults())
		assert.Equal(t, ":9090", cfg.Address)
		assert.Equal(t, time.Second, cfg.ReadHeaderTimeout)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Address: ":8080"}
		require.NoError(t, cfg.Validate())
	})

	t.Run("empty address", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{}
		require.ErrorIs(t, cfg.Validate(), ErrEmptyAddress)
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Address: ":8080", ReadHeaderTimeout: -1}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
	})
}
