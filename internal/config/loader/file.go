package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

var unmarshalers = map[string]func([]byte, any) error{
	FormatTOML: toml.Unmarshal,
	FormatYAML: yaml.Unmarshal,
}

// FileSource loads configuration from a TOML or YAML file.
type FileSource struct {
	fs     FileSystem
	path   string
	format string
}

// NewTOMLLoader creates a TOML loader for path on the OS file system.
func NewTOMLLoader(path string) *FileSource {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader reading from fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *FileSource {
	return &FileSource{fs: fsys, path: path, format: FormatTOML}
}

// NewYAMLLoader creates a YAML loader for path on the OS file system.
func NewYAMLLoader(path string) *FileSource {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader reading from fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *FileSource {
	return &FileSource{fs: fsys, path: path, format: FormatYAML}
}

// Format returns FormatTOML or FormatYAML.
func (l *FileSource) Format() string {
	return l.format
}

// Load reads the configured path. A missing file yields nil, nil.
func (l *FileSource) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads path instead of the configured one.
func (l *FileSource) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader parses everything r yields.
func (l *FileSource) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *FileSource) parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := unmarshalers[l.format](data, &config); err != nil {
		return nil, &ParseError{
			Path:    source,
			Format:  l.format,
			Message: err.Error(),
			Err:     err,
		}
	}
	return config, nil
}
