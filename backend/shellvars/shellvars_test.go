package shellvars

import (
	"bytes"
	"strings"
	"testing"

	"github.com/0xalexb/anyconf/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Load(t *testing.T) {
	t.Parallel()

	input := `
# database settings
DB_HOST=localhost
export DB_PORT=5432
DB_NAME="app db"
`

	var result map[string]string

	require.NoError(t, NewParser().Load(strings.NewReader(input), &result))
	assert.Equal(t, map[string]string{
		"DB_HOST": "localhost",
		"DB_PORT": "5432",
		"DB_NAME": "app db",
	}, result)
}

func TestParser_Load_UnsupportedTarget(t *testing.T) {
	t.Parallel()

	var result []string

	err := NewParser().Load(strings.NewReader("A=1\n"), &result)
	require.ErrorIs(t, err, backend.ErrUnsupportedTarget)
}

func TestParser_DumpRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewParser().Dump(&buf, map[string]any{"HOST": "example.com", "PORT": 8080}))

	var result map[string]any

	require.NoError(t, NewParser().Load(&buf, &result))
	assert.Equal(t, map[string]any{"HOST": "example.com", "PORT": "8080"}, result)
}

func TestParser_Dump_UnsupportedData(t *testing.T) {
	t.Parallel()

	err := NewParser().Dump(&bytes.Buffer{}, []string{"x"})
	require.ErrorIs(t, err, backend.ErrUnsupportedTarget)
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	desc := Descriptor()

	assert.Equal(t, "shellvars", desc.Type())
	assert.Equal(t, []string{"sh", "env"}, desc.Extensions())
	assert.Equal(t, Priority, desc.Priority())
}
