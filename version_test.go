package anyconf_test

import (
	"testing"

	"github.com/0xalexb/anyconf"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", anyconf.Version)
	require.Equal(t, "none", anyconf.Commit)
	require.Equal(t, "unknown", anyconf.CompiledAt)
}
