package fspath

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrPathIsDirectory is returned when a path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// FilePerm is the permission used when Open creates a file.
const FilePerm = 0o600

// Path is a file path on an afero filesystem.
type Path struct {
	fs   afero.Fs
	name string
}

// New returns a Path for name on fs without touching the filesystem.
func New(fs afero.Fs, name string) *Path {
	return &Path{fs: fs, name: filepath.Clean(name)}
}

// OS returns a Path on the operating system filesystem.
func OS(name string) *Path {
	return New(afero.NewOsFs(), name)
}

// Existing returns a constructor that creates a Path for an existing regular
// file. It fails if the file cannot be stat'ed or is a directory.
func Existing(fs afero.Fs, name string) func() (*Path, error) {
	return func() (*Path, error) {
		path := New(fs, name)

		stat, err := fs.Stat(path.name)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", path.name, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", path.name, ErrPathIsDirectory)
		}

		return path, nil
	}
}

// Name returns the cleaned file name.
func (p *Path) Name() string {
	return p.name
}

// AsPosix returns the name with forward slashes.
func (p *Path) AsPosix() string {
	return filepath.ToSlash(p.name)
}

// Fs returns the filesystem the path lives on.
//
//nolint:ireturn // afero.Fs is the filesystem abstraction
func (p *Path) Fs() afero.Fs {
	return p.fs
}

// Open opens the file with the given os.O_* flags.
func (p *Path) Open(flag int) (io.ReadWriteCloser, error) {
	file, err := p.fs.OpenFile(p.name, flag, FilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", p.name, err)
	}

	return file, nil
}

// ReadAll returns the file contents.
func (p *Path) ReadAll() ([]byte, error) {
	file, err := p.Open(os.O_RDONLY)
	if err != nil {
		return nil, err
	}

	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", p.name, err)
	}

	return data, nil
}
