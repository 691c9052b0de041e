package builtin_test

import (
	"testing"

	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/backend/builtin"
	"github.com/0xalexb/anyconf/backend/yaml"
	"github.com/0xalexb/anyconf/ioinfo"
	"github.com/0xalexb/anyconf/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Types(t *testing.T) {
	t.Parallel()

	reg, err := registry.NewFromSources([]backend.Source{builtin.Source()})
	require.NoError(t, err)

	assert.Equal(t, []string{"ini", "json", "properties", "shellvars", "toml", "xml", "yaml"}, reg.ListTypes())
}

func TestSource_PreferredYAML(t *testing.T) {
	t.Parallel()

	reg := registry.New(builtin.Descriptors())

	for _, path := range []string{"a.yml", "b.yaml"} {
		parser, err := reg.Resolve(path, ioinfo.Forced{})
		require.NoError(t, err)
		assert.IsType(t, &yaml.Parser{}, parser, path)
	}

	parser, err := reg.FindParserByType("yaml")
	require.NoError(t, err)
	assert.IsType(t, &yaml.Parser{}, parser)
}

func TestSource_Extensions(t *testing.T) {
	t.Parallel()

	reg := registry.New(builtin.Descriptors())

	testCases := map[string]string{
		"app.json":        "json",
		"app.jsn":         "json",
		"app.js":          "json",
		"app.toml":        "toml",
		"app.ini":         "ini",
		"app.xml":         "xml",
		"app.properties":  "properties",
		"vars.sh":         "shellvars",
		"prod.env":        "shellvars",
		"/etc/app/c.yaml": "yaml",
	}

	for path, want := range testCases {
		parser, err := reg.Resolve(path, ioinfo.Forced{})
		require.NoError(t, err, path)
		assert.Equal(t, want, parser.Type(), path)
	}
}
