// Package fspath provides path-like configuration inputs backed by an
// afero filesystem.
//
// A *Path satisfies ioinfo.PathLike, so load and dump operations open it
// through its own filesystem instead of the operating system's. This makes it
// possible to read configuration from in-memory, read-only or base-path
// restricted filesystems:
//
//	fs := afero.NewBasePathFs(afero.NewOsFs(), "/etc/myapp")
//	p, err := fspath.Existing(fs, "config.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//
// Existing returns an Fx-friendly constructor that validates the path at
// construction time; New skips validation, which suits dump targets that do
// not exist yet.
package fspath
