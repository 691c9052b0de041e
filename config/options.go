package config

import (
	"github.com/0xalexb/anyconf/backend"
	"github.com/0xalexb/anyconf/ioinfo"
)

// Option configures Load and Dump.
type Option func(*options)

type options struct {
	forced  ioinfo.Forced
	section string
}

// ForceType selects the parser by type instead of by file extension.
func ForceType(typ string) Option {
	return func(o *options) {
		o.forced = ioinfo.ForceType(typ)
	}
}

// ForceParser uses parser as-is.
func ForceParser(parser backend.Parser) Option {
	return func(o *options) {
		o.forced = ioinfo.ForceParser(parser)
	}
}

// Section restricts Load to a nested section of the document.
func Section(section string) Option {
	return func(o *options) {
		o.section = section
	}
}

func collect(opts []Option) options {
	var o options

	for _, apply := range opts {
		apply(&o)
	}

	return o
}
