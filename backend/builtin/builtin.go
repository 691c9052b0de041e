// Package builtin lists the backends compiled into this module.
package builtin

import (
	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/backend/ini"
	"github.com/0xalexb/anyconf/backend/json"
	"github.com/0xalexb/anyconf/backend/properties"
	"github.com/0xalexb/anyconf/backend/shellvars"
	"github.com/0xalexb/anyconf/backend/toml"
	"github.com/0xalexb/anyconf/backend/xml"
	"github.com/0xalexb/anyconf/backend/yaml"
	"github.com/0xalexb/anyconf/backend/yamlv3"
)

// Descriptors returns a fresh list of the built-in backend descriptors.
func Descriptors() []backend.Descriptor {
	return []backend.Descriptor{
		json.Descriptor(),
		ini.Descriptor(),
		properties.Descriptor(),
		shellvars.Descriptor(),
		toml.Descriptor(),
		xml.Descriptor(),
		yamlv3.Descriptor(),
		yaml.Descriptor(),
	}
}

// Source returns a Source yielding the built-in descriptors.
//
//nolint:ireturn // Source is the registry contract
func Source() backend.Source {
	return backend.SourceFunc(func() ([]backend.Descriptor, error) {
		return Descriptors(), nil
	})
}
