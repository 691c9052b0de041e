package yaml

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/0xalexb/anyconf/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `
api:
  host: localhost
  port: 8080
  permissions:
    admin:
      read: true
      write: true
  hosts:
    - a.example.com
    - b.example.com
ratio: 3.14159
`

func TestParser_Load_EntireDocument(t *testing.T) {
	t.Parallel()

	var result map[string]any

	err := NewParser().Load(strings.NewReader(document), &result)

	require.NoError(t, err)
	assert.Contains(t, result, "api")
	assert.Contains(t, result, "ratio")
}

func TestParser_LoadSection(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	t.Run("single level", func(t *testing.T) {
		t.Parallel()

		var result struct {
			Host string `yaml:"host"`
			Port int    `yaml:"port"`
		}

		require.NoError(t, parser.LoadSection(strings.NewReader(document), &result, "api"))
		assert.Equal(t, "localhost", result.Host)
		assert.Equal(t, 8080, result.Port)
	})

	t.Run("multi level", func(t *testing.T) {
		t.Parallel()

		var result struct {
			Read  bool `yaml:"read"`
			Write bool `yaml:"write"`
		}

		require.NoError(t, parser.LoadSection(strings.NewReader(document), &result, "api:permissions:admin"))
		assert.True(t, result.Read)
		assert.True(t, result.Write)
	})

	t.Run("scalar and sequence values", func(t *testing.T) {
		t.Parallel()

		var hosts []string

		require.NoError(t, parser.LoadSection(strings.NewReader(document), &hosts, "api:hosts"))
		assert.Equal(t, []string{"a.example.com", "b.example.com"}, hosts)

		var ratio float64

		require.NoError(t, parser.LoadSection(strings.NewReader(document), &ratio, "ratio"))
		assert.InDelta(t, 3.14159, ratio, 0.00001)
	})

	t.Run("missing section", func(t *testing.T) {
		t.Parallel()

		var result struct{}

		err := parser.LoadSection(strings.NewReader(document), &result, "nonexistent:path")
		require.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("section through scalar", func(t *testing.T) {
		t.Parallel()

		var result struct{}

		err := parser.LoadSection(strings.NewReader(document), &result, "api:host:invalid")
		require.Error(t, err)
	})
}

func TestParser_Load_Errors(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result map[string]any

	err := parser.Load(strings.NewReader(""), &result)
	require.ErrorIs(t, err, backend.ErrEmptyData)

	err = parser.Load(strings.NewReader("invalid: yaml: content: [\n"), &result)
	require.Error(t, err)

	readErr := errors.New("read failed")
	err = parser.Load(iotest.ErrReader(readErr), &result)
	require.ErrorIs(t, err, readErr)
}

func TestParser_DumpRoundTrip(t *testing.T) {
	t.Parallel()

	parser := NewParser()
	data := map[string]any{
		"name":  "app",
		"port":  8080,
		"hosts": []string{"a", "b"},
	}

	var buf bytes.Buffer

	require.NoError(t, parser.Dump(&buf, data))
	assert.Contains(t, buf.String(), "name: app")

	var result struct {
		Name  string   `yaml:"name"`
		Port  int      `yaml:"port"`
		Hosts []string `yaml:"hosts"`
	}

	require.NoError(t, parser.Load(&buf, &result))
	assert.Equal(t, "app", result.Name)
	assert.Equal(t, 8080, result.Port)
	assert.Equal(t, []string{"a", "b"}, result.Hosts)
}

func TestToYAMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single key", input: "key", expected: "$.key"},
		{name: "two levels", input: "api:permissions", expected: "$.api.permissions"},
		{name: "three levels", input: "database:connection:timeout", expected: "$.database.connection.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, toYAMLPath(tt.input))
		})
	}
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	desc := Descriptor()

	assert.Equal(t, "yaml", desc.Type())
	assert.Equal(t, []string{"yaml", "yml"}, desc.Extensions())
	assert.Equal(t, Priority, desc.Priority())
	assert.IsType(t, &Parser{}, desc.New())
}
