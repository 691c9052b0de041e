// Package yaml provides the preferred YAML backend.
//
// This package uses github.com/goccy/go-yaml. It supports section loading
// through native PathString support: colon-separated sections such as
// "api:permissions" are converted to YAML path format ("$.api.permissions").
//
// Usage:
//
//	parser := yaml.NewParser()
//	var cfg Config
//	err := parser.LoadSection(r, &cfg, "api:permissions")
//
// Section conversion:
//   - Empty section "" -> decode the entire document
//   - Single key "key" -> "$.key"
//   - Nested section "api:permissions" -> "$.api.permissions"
package yaml
