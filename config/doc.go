// Package config loads and dumps configuration through a parser registry.
//
// Inputs and outputs may be path strings, path-like objects (see package
// fspath), open streams, or already inspected *ioinfo.Input values. The parser
// is chosen from the file extension unless a type or parser is forced:
//
//	var cfg map[string]any
//	err := config.Load(reg, "conf/app.yaml", &cfg)
//	err = config.Load(reg, os.Stdin, &cfg, config.ForceType("json"))
//	out, err := config.Dumps(reg, cfg, "toml")
//
// # Sections
//
// Section selects a nested part of the document. Sections use colon (:) as the
// separator for nested keys:
//
//	"api:permissions"           -> config["api"]["permissions"]
//	"database:connection"       -> config["database"]["connection"]
//	""                          -> entire document
//
// Only parsers implementing backend.SectionLoader support sections.
//
// # Provider
//
// Provider wraps Load for dependency injection. After loading it applies
// defaults (Defaulter) and validates (Validator):
//
//	provider := config.Provider(&APIConfig{}, "config.yaml", "services:api")
//	cfg, err := provider(reg)
package config
