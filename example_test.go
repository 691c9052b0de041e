package anyconf_test

import (
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/config"
	"github.com/0xalexb/anyconf/ioinfo"

	"go.uber.org/fx"
)

// ServerConfig represents application server configuration.
// It implements both Defaulter and Validator interfaces from the config package.
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout"`
}

// SetDefaults sets default values for the configuration.
func (c *ServerConfig) SetDefaults() bool {
	changed := false

	if c.Host == "" {
		c.Host = "localhost"
		changed = true
	}

	if c.Port == 0 {
		c.Port = 8080
		changed = true
	}

	if c.Timeout == 0 {
		c.Timeout = 30
		changed = true
	}

	return changed
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Timeout < 1 {
		return errors.New("timeout must be positive")
	}

	return nil
}

// Example_appWithConfigProvider loads a section of a YAML file through the
// registry the App provides and injects it into Fx.
func Example_appWithConfigProvider() {
	var cfg *ServerConfig

	app := anyconf.NewApp(
		anyconf.WithLogLevel("error"),
		anyconf.WithModules(
			fx.Provide(config.Provider(new(ServerConfig), "testdata/config.yaml", "server")),
			fx.Populate(&cfg),
		),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("Server address: %s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("Timeout: %d\n", cfg.Timeout)
	// Output:
	// Server address: api.example.com:9000
	// Timeout: 30
}

// Example_manifestAliases registers alias types from a manifest file.
func Example_manifestAliases() {
	app := anyconf.NewApp(
		anyconf.WithLogLevel("error"),
		anyconf.WithManifest("testdata/aliases.yaml"),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	reg := app.Registry()
	fmt.Println(reg.ListTypes())

	parser, err := reg.FindParser("deploy/app.compose", ioinfo.Forced{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(parser.Type())
	// Output:
	// [compose ini json properties shellvars toml xml yaml]
	// yaml
}
